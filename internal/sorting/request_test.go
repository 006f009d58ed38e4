package sorting

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
)

// countingParser wraps QueryParser and records how often Parse runs.
type countingParser struct {
	calls int
}

func (p *countingParser) Parse(rawQuery string) []Field {
	p.calls++
	return QueryParser{}.Parse(rawQuery)
}

func TestRequest_AllSortedFieldsParsesOnce(t *testing.T) {
	parser := &countingParser{}
	req := NewRequestWithParser("sort[price]=asc&sort[name]=desc", parser)

	first := req.AllSortedFields()
	second := req.AllSortedFields()

	if parser.calls != 1 {
		t.Errorf("Expected exactly 1 parse call, got %d", parser.calls)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("Expected 2 fields on both reads, got %d and %d", len(first), len(second))
	}

	for i := range first {
		if first[i].Name != second[i].Name || first[i].Direction != second[i].Direction {
			t.Errorf("Field %d differs between reads: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRequest_AccessorsConsistent(t *testing.T) {
	req := NewRequest("sort[price]=asc&sort[name]=desc&sort[price]=desc")

	tests := []struct {
		name      string
		field     string
		has       bool
		direction string
	}{
		{"First occurrence wins for duplicates", "price", true, "asc"},
		{"Second declared field", "name", true, "desc"},
		{"Unrequested field", "stock", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := req.HasSortedField(tt.field); got != tt.has {
				t.Errorf("HasSortedField(%q) = %v, expected %v", tt.field, got, tt.has)
			}

			f, ok := req.GetSortedField(tt.field)
			if ok != tt.has {
				t.Fatalf("GetSortedField(%q) ok = %v, expected %v", tt.field, ok, tt.has)
			}
			if ok && f.Direction != tt.direction {
				t.Errorf("GetSortedField(%q) direction = %q, expected %q", tt.field, f.Direction, tt.direction)
			}
		})
	}
}

func TestRequest_Validate(t *testing.T) {
	policy := Policy{
		NewSpec("price", "price", Asc, Desc),
		NewSpec("name", "name", Asc),
	}

	tests := []struct {
		name     string
		rawQuery string
		wantErr  bool
	}{
		{
			name:     "Permitted field and direction",
			rawQuery: "sort[price]=asc",
			wantErr:  false,
		},
		{
			name:     "Both fields permitted",
			rawQuery: "sort[name]=asc&sort[price]=desc",
			wantErr:  false,
		},
		{
			name:     "No sorts requested",
			rawQuery: "page=3&limit=20",
			wantErr:  false,
		},
		{
			name:     "Direction not in spec",
			rawQuery: "sort[name]=desc",
			wantErr:  true,
		},
		{
			name:     "Unknown direction token",
			rawQuery: "sort[price]=invalid",
			wantErr:  true,
		},
		{
			name:     "Case-sensitive direction comparison",
			rawQuery: "sort[price]=ASC",
			wantErr:  true,
		},
		{
			name:     "Field not declared by policy",
			rawQuery: "sort[stock]=asc",
			wantErr:  true,
		},
		{
			name:     "Duplicate occurrences validated independently",
			rawQuery: "sort[price]=asc&sort[price]=invalid",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.rawQuery)
			req.SetPolicy(policy)

			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr && !errors.Is(err, apperrors.ErrSortNotAllowed) {
				t.Errorf("Expected ErrSortNotAllowed, got %v", err)
			}
		})
	}
}

func TestRequest_ValidateFailsOnFirstViolation(t *testing.T) {
	policy := Policy{NewSpec("price", "price", Asc, Desc)}

	req := NewRequest("sort[stock]=asc&sort[weight]=desc")
	req.SetPolicy(policy)

	err := req.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	if !strings.Contains(err.Error(), `"stock"`) {
		t.Errorf("Expected error to name the first offending field, got %q", err.Error())
	}
	if strings.Contains(err.Error(), `"weight"`) {
		t.Errorf("Expected fail-fast on first violation, but error mentions later field: %q", err.Error())
	}
}

func TestRequest_ValidateErrorListsPolicy(t *testing.T) {
	policy := Policy{NewSpec("price", "price", Asc, Desc)}

	req := NewRequest("sort[price]=invalid")
	req.SetPolicy(policy)

	err := req.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	msg := err.Error()
	for _, want := range []string{"price", "invalid", "price (asc, desc)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error message to contain %q, got %q", want, msg)
		}
	}
}

func TestRequest_ValidateLinksSpecs(t *testing.T) {
	policy := Policy{NewSpec("price", "unit_price", Asc, Desc)}

	req := NewRequest("sort[price]=desc")
	req.SetPolicy(policy)

	if f, ok := req.GetSortedField("price"); ok {
		if _, matched := f.Spec(); matched {
			t.Error("Expected field to be unlinked before validation")
		}
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	f, ok := req.GetSortedField("price")
	if !ok {
		t.Fatal("Expected price field after validation")
	}

	spec, matched := f.Spec()
	if !matched {
		t.Fatal("Expected field to be linked to its spec")
	}
	if spec.Column != "unit_price" {
		t.Errorf("Expected linked column %q, got %q", "unit_price", spec.Column)
	}
	if f.Column() != "unit_price" {
		t.Errorf("Expected Column() to map through the spec, got %q", f.Column())
	}
	if !f.Descending() {
		t.Error("Expected descending field")
	}
}

func TestRequest_ValidateEmptyPolicy(t *testing.T) {
	req := NewRequest("sort[price]=asc")
	req.SetPolicy(nil)

	if err := req.Validate(); err == nil {
		t.Error("Expected any requested sort to fail against an empty policy")
	}
}
