// File: internal/profile/loader.go
package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/hireloop/autopilot/api/schemas"
	"gopkg.in/yaml.v3"
)

// LoadProfile reads the applicant profile from a yaml file and validates it at
// the boundary, so the rest of the engine never has to defend against a
// profile with no usable identity.
func LoadProfile(path string) (schemas.Profile, error) {
	var p schemas.Profile

	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("failed to parse profile %q: %w", path, err)
	}
	if err := Validate(p); err != nil {
		return p, fmt.Errorf("invalid profile %q: %w", path, err)
	}
	return p, nil
}

// Validate checks that the profile carries the minimum identity needed for
// any fill to make sense.
func Validate(p schemas.Profile) error {
	if strings.TrimSpace(p.Name.First) == "" && strings.TrimSpace(p.Name.Last) == "" {
		return fmt.Errorf("profile has no name")
	}
	if strings.TrimSpace(p.Contact.Email) == "" {
		return fmt.Errorf("profile has no contact email")
	}
	return nil
}
