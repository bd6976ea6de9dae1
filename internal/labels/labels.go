package labels

import (
	"fmt"
	"strings"
)

// Label is an issue label to create or overwrite by name on the target
// repository. Color is a 6-hex-digit string without a leading '#'.
type Label struct {
	Name        string
	Description string
	Color       string
}

// DefaultSet returns the template's fixed label set. Order is the creation
// order; labels are independent, so the order carries no semantics.
func DefaultSet() []Label {
	return []Label{
		{Name: "bug", Description: "Something isn't working", Color: "d73a4a"},
		{Name: "enhancement", Description: "New feature or request", Color: "a2eeef"},
		{Name: "documentation", Description: "Improvements or additions to documentation", Color: "0075ca"},
		{Name: "dependencies", Description: "Dependency updates", Color: "0366d6"},
		{Name: "maintenance", Description: "Refactoring, tooling, and chores", Color: "fbca04"},
		{Name: "question", Description: "Further information is requested", Color: "d876e3"},
	}
}

// Validate checks a label for the constraints the API enforces up front, so a
// bad entry fails locally instead of as a rejected call.
func (l Label) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("label name must not be empty")
	}
	if len(l.Color) != 6 {
		return fmt.Errorf("label %q: color must be 6 hex digits, got %q", l.Name, l.Color)
	}
	for _, r := range strings.ToLower(l.Color) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return fmt.Errorf("label %q: color must be 6 hex digits, got %q", l.Name, l.Color)
		}
	}
	return nil
}
