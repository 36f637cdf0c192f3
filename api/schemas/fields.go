package schemas

// -- Field Discovery Schemas --

// FieldKind classifies a discovered form control. Using a closed set instead of
// raw tag strings keeps downstream dispatch (plan building, execution) exhaustive.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldRadio    FieldKind = "radio"
	FieldFile     FieldKind = "file"
	FieldRichText FieldKind = "richtext"
)

// CandidateSource identifies where a prompt candidate's text was harvested from.
// The source feeds the scoring heuristic: explicit label associations outrank
// text that merely happens to sit near the control.
type CandidateSource string

const (
	SourceLabel       CandidateSource = "label"
	SourceAria        CandidateSource = "aria"
	SourcePlaceholder CandidateSource = "placeholder"
	SourceDescribedBy CandidateSource = "describedby"
	SourceLegend      CandidateSource = "legend"
	SourceNearby      CandidateSource = "nearby"
)

// QuestionCandidate is one scored piece of text that may be the human-facing
// question for a field.
type QuestionCandidate struct {
	Source CandidateSource `json:"source"`
	Text   string          `json:"text"`
	Score  int             `json:"score"`
}

// Constraints holds length limits parsed from HTML attributes and from free
// text surrounding the field ("max 200 words", "minimum 50 characters").
// Zero means no constraint was found.
type Constraints struct {
	MaxLength int `json:"maxLength,omitempty"`
	MinLength int `json:"minLength,omitempty"`
	MaxWords  int `json:"maxWords,omitempty"`
	MaxChars  int `json:"maxChars,omitempty"`
}

// Locator pairs a structural CSS selector with a human-readable accessor
// description used for diagnostics and LLM prompts.
type Locator struct {
	Selector    string `json:"selector"`
	Description string `json:"description"`
}

// FieldDescriptor is one discovered, fillable control. It is created fresh on
// every scan, never persisted, and treated as immutable once produced.
type FieldDescriptor struct {
	// FieldID is a stable identifier derived from the DOM id or name, or a
	// slug of the best available label when neither exists.
	FieldID string `json:"fieldId"`

	Tag       string    `json:"tag"`
	Kind      FieldKind `json:"kind"`
	InputType string    `json:"inputType,omitempty"`

	Name  string `json:"name,omitempty"`
	DOMID string `json:"domId,omitempty"`

	Label       string `json:"label,omitempty"`
	AriaName    string `json:"ariaName,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	DescribedBy string `json:"describedBy,omitempty"`

	Required    bool        `json:"required"`
	Constraints Constraints `json:"constraints"`

	// Candidates is the ordered list of scored prompt candidates; QuestionText
	// is the winner (ties default to the label-sourced candidate).
	Candidates   []QuestionCandidate `json:"questionCandidates,omitempty"`
	QuestionText string              `json:"questionText,omitempty"`

	// Options holds the visible labels of <select> options, used by the
	// executor to choose by label text.
	Options []string `json:"options,omitempty"`

	// LikelyEssay marks long free-text answers that need generated prose
	// rather than a profile lookup.
	LikelyEssay bool `json:"likelyEssay"`

	Locator Locator `json:"locator"`

	FrameURL  string `json:"frameUrl,omitempty"`
	FrameName string `json:"frameName,omitempty"`
}

// BestCandidate returns the highest-scored prompt candidate, preferring a
// label-sourced candidate on ties. Returns false when no candidates exist.
func (f *FieldDescriptor) BestCandidate() (QuestionCandidate, bool) {
	if len(f.Candidates) == 0 {
		return QuestionCandidate{}, false
	}
	best := f.Candidates[0]
	for _, c := range f.Candidates[1:] {
		if c.Score > best.Score {
			best = c
			continue
		}
		if c.Score == best.Score && best.Source != SourceLabel && c.Source == SourceLabel {
			best = c
		}
	}
	return best, true
}
