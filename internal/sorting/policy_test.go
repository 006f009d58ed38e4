package sorting

import (
	"testing"
)

func TestNewSpec(t *testing.T) {
	tests := []struct {
		name           string
		specName       string
		column         string
		directions     []string
		wantColumn     string
		wantDirections []string
	}{
		{
			name:           "Explicit column and directions",
			specName:       "price",
			column:         "unit_price",
			directions:     []string{Asc},
			wantColumn:     "unit_price",
			wantDirections: []string{Asc},
		},
		{
			name:           "Column defaults to name",
			specName:       "name",
			column:         "",
			wantColumn:     "name",
			wantDirections: []string{Asc, Desc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewSpec(tt.specName, tt.column, tt.directions...)

			if spec.Column != tt.wantColumn {
				t.Errorf("Expected column %q, got %q", tt.wantColumn, spec.Column)
			}
			if len(spec.Directions) != len(tt.wantDirections) {
				t.Fatalf("Expected %d directions, got %d", len(tt.wantDirections), len(spec.Directions))
			}
			for i, d := range tt.wantDirections {
				if spec.Directions[i] != d {
					t.Errorf("Direction %d: expected %q, got %q", i, d, spec.Directions[i])
				}
			}
		})
	}
}

func TestSpec_Allows(t *testing.T) {
	spec := NewSpec("price", "price", Asc)

	if !spec.Allows(Asc) {
		t.Error("Expected asc to be allowed")
	}
	if spec.Allows(Desc) {
		t.Error("Expected desc to be rejected")
	}
	if spec.Allows("ASC") {
		t.Error("Expected comparison to be case-sensitive")
	}
}

func TestPolicy_Find(t *testing.T) {
	policy := Policy{
		NewSpec("price", "price", Asc),
		NewSpec("name", "name", Asc, Desc),
		NewSpec("price", "unit_price", Desc),
	}

	tests := []struct {
		name       string
		field      string
		wantFound  bool
		wantColumn string
	}{
		{"Duplicate name resolves last-wins", "price", true, "unit_price"},
		{"Unique name", "name", true, "name"},
		{"Undeclared name", "stock", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, found := policy.Find(tt.field)
			if found != tt.wantFound {
				t.Fatalf("Find(%q) found = %v, expected %v", tt.field, found, tt.wantFound)
			}
			if found && spec.Column != tt.wantColumn {
				t.Errorf("Find(%q) column = %q, expected %q", tt.field, spec.Column, tt.wantColumn)
			}
		})
	}
}

func TestPolicy_Describe(t *testing.T) {
	policy := Policy{
		NewSpec("price", "price", Asc, Desc),
		NewSpec("name", "name", Asc),
	}

	expected := "price (asc, desc), name (asc)"
	if got := policy.Describe(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestPolicy_Columns(t *testing.T) {
	policy := Policy{
		NewSpec("price", "unit_price", Asc),
		NewSpec("created", "created_at", Desc),
	}

	cols := policy.Columns()
	if len(cols) != 2 || cols[0] != "unit_price" || cols[1] != "created_at" {
		t.Errorf("Expected [unit_price created_at], got %v", cols)
	}
}
