// File: internal/scanner/scanner_test.go
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/config"
)

// fakePage serves canned scan payloads per frame id.
type fakePage struct {
	mu       sync.Mutex
	frames   []schemas.FrameInfo
	frameErr error
	payloads map[string][]string // frameID -> payload per call, last repeats
	errs     map[string]error
	calls    map[string]int
}

func newFakePage(frames []schemas.FrameInfo) *fakePage {
	return &fakePage{
		frames:   frames,
		payloads: make(map[string][]string),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (p *fakePage) Frames(ctx context.Context) ([]schemas.FrameInfo, error) {
	return p.frames, p.frameErr
}

func (p *fakePage) EvaluateInFrame(ctx context.Context, frameID, script string) (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.errs[frameID]; err != nil {
		return nil, err
	}
	call := p.calls[frameID]
	p.calls[frameID]++
	payloads := p.payloads[frameID]
	if len(payloads) == 0 {
		return json.RawMessage("[]"), nil
	}
	if call >= len(payloads) {
		call = len(payloads) - 1
	}
	return json.RawMessage(payloads[call]), nil
}

func (p *fakePage) Fill(ctx context.Context, selector, value string) error          { return nil }
func (p *fakePage) SelectByLabel(ctx context.Context, selector, label string) error { return nil }
func (p *fakePage) SetChecked(ctx context.Context, selector string, checked bool) error {
	return nil
}
func (p *fakePage) Click(ctx context.Context, selector string) error { return nil }

func controlJSON(id, label string) string {
	return fmt.Sprintf(`{"tag":"input","type":"text","id":%q,"label":%q}`, id, label)
}

func TestScanMergesFramesInOrder(t *testing.T) {
	frames := []schemas.FrameInfo{
		{ID: "main", URL: "https://jobs.example.com", Main: true},
		{ID: "child", URL: "https://ats.example.com/embed"},
	}
	page := newFakePage(frames)
	page.payloads["main"] = []string{"[" + controlJSON("email", "Email") + "]"}
	page.payloads["child"] = []string{"[" + controlJSON("phone", "Phone") + "]"}

	s := New(config.ScannerConfig{}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	// Frame order is preserved regardless of completion order.
	assert.Equal(t, "email", fields[0].FieldID)
	assert.Equal(t, "phone", fields[1].FieldID)
	assert.Equal(t, "https://jobs.example.com", fields[0].FrameURL)
	assert.Equal(t, "https://ats.example.com/embed", fields[1].FrameURL)
}

func TestScanSkipsFailingFrames(t *testing.T) {
	frames := []schemas.FrameInfo{
		{ID: "main", Main: true},
		{ID: "broken"},
	}
	page := newFakePage(frames)
	page.payloads["main"] = []string{"[" + controlJSON("email", "Email") + "]"}
	page.errs["broken"] = fmt.Errorf("cross-origin frame detached")

	s := New(config.ScannerConfig{}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err, "a failing frame must not abort the scan")
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].FieldID)
}

func TestScanDeduplicatesAcrossFrames(t *testing.T) {
	frames := []schemas.FrameInfo{
		{ID: "main", Main: true},
		{ID: "child"},
	}
	page := newFakePage(frames)
	page.payloads["main"] = []string{"[" + controlJSON("email", "Email") + "]"}
	page.payloads["child"] = []string{"[" + controlJSON("email", "Email") + "," + controlJSON("city", "City") + "]"}

	s := New(config.ScannerConfig{}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].FieldID)
	assert.Equal(t, "city", fields[1].FieldID)
}

func TestScanAppliesTotalCap(t *testing.T) {
	var sb []byte
	sb = append(sb, '[')
	for i := 0; i < 10; i++ {
		if i > 0 {
			sb = append(sb, ',')
		}
		sb = append(sb, controlJSON(fmt.Sprintf("f%d", i), "Field")...)
	}
	sb = append(sb, ']')

	page := newFakePage([]schemas.FrameInfo{{ID: "main", Main: true}})
	page.payloads["main"] = []string{string(sb)}

	s := New(config.ScannerConfig{MaxFields: 3}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, fields, 3)
}

func TestScanFallsBackToMainFrameWhenAllEmpty(t *testing.T) {
	frames := []schemas.FrameInfo{
		{ID: "main", Main: true},
		{ID: "child"},
	}
	page := newFakePage(frames)
	// First pass over the main frame is empty; the lone retry finds the form
	// (late-hydrating pages do exactly this).
	page.payloads["main"] = []string{"[]", "[" + controlJSON("email", "Email") + "]"}
	page.payloads["child"] = []string{"[]"}

	s := New(config.ScannerConfig{}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].FieldID)
}

func TestScanFrameEnumerationFailureUsesMainDocument(t *testing.T) {
	page := newFakePage(nil)
	page.frameErr = fmt.Errorf("target crashed")
	page.payloads[""] = []string{"[" + controlJSON("email", "Email") + "]"}

	s := New(config.ScannerConfig{}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, fields, 1)
}

func TestFieldScanScriptBoundsTheWalk(t *testing.T) {
	script := fmt.Sprintf(fieldScanScript, 80)
	assert.Contains(t, script, "const MAX = 80;")
	// The cap limits how many controls are looked at, not how many survive
	// filtering, so invisible-input farms cannot stall the frame scan.
	assert.Contains(t, script, "Math.min(controls.length, MAX)")
	assert.NotContains(t, script, "%!")
}

func TestScanFrameBadPayload(t *testing.T) {
	page := newFakePage([]schemas.FrameInfo{{ID: "main", Main: true}})
	page.payloads["main"] = []string{`{"not":"an array"}`}

	s := New(config.ScannerConfig{}, nil)
	fields, err := s.Scan(context.Background(), page)
	require.NoError(t, err, "a malformed frame payload is a per-frame failure, not a scan failure")
	assert.Empty(t, fields)
}
