// File: internal/scanner/types.go
package scanner

// rawControl is the wire shape produced by the in-page extraction script for
// one surviving form control. All text is already trimmed and whitespace
// collapsed on the page side; the Go side only scores and classifies.
type rawControl struct {
	Tag         string   `json:"tag"`
	Type        string   `json:"type"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Required    bool     `json:"required"`
	Label       string   `json:"label"`
	AriaName    string   `json:"ariaName"`
	Placeholder string   `json:"placeholder"`
	DescribedBy string   `json:"describedBy"`
	Legend      string   `json:"legend"`
	Nearby      []string `json:"nearby"`
	MaxLength   int      `json:"maxLength"`
	MinLength   int      `json:"minLength"`
	Options     []string `json:"options"`
	Editable    bool     `json:"editable"`
}
