package labels

import "testing"

func TestDefaultSet(t *testing.T) {
	set := DefaultSet()
	if len(set) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(set))
	}

	seen := make(map[string]struct{})
	for _, l := range set {
		if err := l.Validate(); err != nil {
			t.Errorf("default label invalid: %v", err)
		}
		if _, dup := seen[l.Name]; dup {
			t.Errorf("duplicate label name %q", l.Name)
		}
		seen[l.Name] = struct{}{}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		label   Label
		wantErr bool
	}{
		{"valid", Label{Name: "bug", Color: "d73a4a"}, false},
		{"valid uppercase hex", Label{Name: "bug", Color: "D73A4A"}, false},
		{"empty name", Label{Name: "  ", Color: "d73a4a"}, true},
		{"short color", Label{Name: "bug", Color: "d73"}, true},
		{"leading hash", Label{Name: "bug", Color: "#d73a4"}, true},
		{"non-hex color", Label{Name: "bug", Color: "zzzzzz"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.label.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
