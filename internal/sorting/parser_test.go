package sorting

import (
	"testing"
)

func TestQueryParser_Parse(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		expected []Field
	}{
		{
			name:     "Single field",
			rawQuery: "sort[price]=asc",
			expected: []Field{{Name: "price", Direction: "asc"}},
		},
		{
			name:     "Multiple fields keep request order",
			rawQuery: "sort[b]=asc&sort[a]=desc",
			expected: []Field{
				{Name: "b", Direction: "asc"},
				{Name: "a", Direction: "desc"},
			},
		},
		{
			name:     "Sort mixed with other parameters",
			rawQuery: "page=2&sort[name]=desc&limit=10",
			expected: []Field{{Name: "name", Direction: "desc"}},
		},
		{
			name:     "Percent-encoded brackets",
			rawQuery: "sort%5Bprice%5D=asc",
			expected: []Field{{Name: "price", Direction: "asc"}},
		},
		{
			name:     "Direction token passed through verbatim",
			rawQuery: "sort[price]=ASCENDING",
			expected: []Field{{Name: "price", Direction: "ASCENDING"}},
		},
		{
			name:     "Duplicate field kept per occurrence",
			rawQuery: "sort[price]=asc&sort[price]=desc",
			expected: []Field{
				{Name: "price", Direction: "asc"},
				{Name: "price", Direction: "desc"},
			},
		},
		{
			name:     "Empty query",
			rawQuery: "",
			expected: nil,
		},
		{
			name:     "Flat sort value is not a mapping",
			rawQuery: "sort=price",
			expected: nil,
		},
		{
			name:     "Unclosed bracket ignored",
			rawQuery: "sort[price=asc",
			expected: nil,
		},
		{
			name:     "Empty field name ignored",
			rawQuery: "sort[]=asc",
			expected: nil,
		},
		{
			name:     "Missing direction yields empty token",
			rawQuery: "sort[price]",
			expected: []Field{{Name: "price", Direction: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QueryParser{}.Parse(tt.rawQuery)

			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d fields, got %d (%v)", len(tt.expected), len(got), got)
			}

			for i, want := range tt.expected {
				if got[i].Name != want.Name {
					t.Errorf("Field %d: expected name %q, got %q", i, want.Name, got[i].Name)
				}
				if got[i].Direction != want.Direction {
					t.Errorf("Field %d: expected direction %q, got %q", i, want.Direction, got[i].Direction)
				}
			}
		})
	}
}

func TestQueryParser_ParseIsSideEffectFree(t *testing.T) {
	parser := QueryParser{}
	raw := "sort[price]=asc&sort[name]=desc"

	first := parser.Parse(raw)
	second := parser.Parse(raw)

	if len(first) != len(second) {
		t.Fatalf("Expected identical results, got %d and %d fields", len(first), len(second))
	}

	for i := range first {
		if first[i].Name != second[i].Name || first[i].Direction != second[i].Direction {
			t.Errorf("Field %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}
