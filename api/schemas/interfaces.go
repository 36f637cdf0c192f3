package schemas

import (
	"context"
	"encoding/json"
)

// -- Browser Abstraction --

// FrameInfo describes one navigable document of a loaded page.
type FrameInfo struct {
	ID   string `json:"id"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
	Main bool   `json:"main"`
}

// Page is the navigable page abstraction the autofill core runs against. The
// core never manages the browser process lifecycle; a Page is exclusively
// owned by one application session, and only one plan execution may run
// against it at a time.
type Page interface {
	// Frames enumerates the navigable frames of the page, main frame first.
	Frames(ctx context.Context) ([]FrameInfo, error)

	// EvaluateInFrame runs a script inside the given frame and returns its
	// JSON-serialized result.
	EvaluateInFrame(ctx context.Context, frameID string, script string) (json.RawMessage, error)

	// Fill sets the value of the control matching the selector.
	Fill(ctx context.Context, selector, value string) error

	// SelectByLabel chooses a <select> option by its visible label text.
	SelectByLabel(ctx context.Context, selector, label string) error

	// SetChecked toggles a checkbox or radio control.
	SetChecked(ctx context.Context, selector string, checked bool) error

	// Click clicks the element matching the selector.
	Click(ctx context.Context, selector string) error
}

// -- Collaborator Interfaces --

// AliasPair maps one site-specific alias phrase to a canonical field key.
type AliasPair struct {
	CanonicalKey string `json:"canonicalKey" yaml:"canonical_key"`
	Alias        string `json:"alias" yaml:"alias"`
}

// AliasStore supplies the full alias listing the matcher indexes once per
// request.
type AliasStore interface {
	ListAliases(ctx context.Context) ([]AliasPair, error)
}

// GenerativePlanner is the optional LLM-backed fill-plan provider used when
// the alias plan yields nothing. Its output is untrusted: the caller filters
// denylisted keys and skip entries before use, and bounds the call with its
// own timeout.
type GenerativePlanner interface {
	PlanActions(ctx context.Context, fields []FieldDescriptor, profile Profile, job JobContext) ([]FillAction, error)
}
