package sorting

import (
	"errors"
	"testing"

	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
)

type recordedOrder struct {
	column     string
	descending bool
}

type fakeOrderer struct {
	orders []recordedOrder
}

func (f *fakeOrderer) OrderBy(column string, descending bool) {
	f.orders = append(f.orders, recordedOrder{column: column, descending: descending})
}

func TestApply_RequestOrderPreserved(t *testing.T) {
	policy := Policy{
		NewSpec("a", "col_a", Asc, Desc),
		NewSpec("b", "col_b", Asc, Desc),
	}

	req := NewRequest("sort[b]=asc&sort[a]=desc")
	req.SetPolicy(policy)
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	orderer := &fakeOrderer{}
	if err := Apply(orderer, req.AllSortedFields()); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	expected := []recordedOrder{
		{column: "col_b", descending: false},
		{column: "col_a", descending: true},
	}

	if len(orderer.orders) != len(expected) {
		t.Fatalf("Expected %d ordering calls, got %d", len(expected), len(orderer.orders))
	}

	for i, want := range expected {
		if orderer.orders[i] != want {
			t.Errorf("Order %d: expected %v, got %v", i, want, orderer.orders[i])
		}
	}
}

func TestApply_EmptyFields(t *testing.T) {
	orderer := &fakeOrderer{}

	if err := Apply(orderer, nil); err != nil {
		t.Fatalf("Apply() with no fields failed: %v", err)
	}

	if len(orderer.orders) != 0 {
		t.Errorf("Expected no ordering calls, got %d", len(orderer.orders))
	}
}

func TestApply_MissingBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder any
	}{
		{"Nil builder", nil},
		{"Builder without ordering support", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Apply(tt.builder, []Field{{Name: "price", Direction: Asc}})
			if err == nil {
				t.Fatal("Expected an error")
			}

			if !errors.Is(err, apperrors.ErrOrderingUnavailable) {
				t.Errorf("Expected ErrOrderingUnavailable, got %v", err)
			}

			// Configuration failures must stay distinguishable from
			// client sort violations.
			if errors.Is(err, apperrors.ErrSortNotAllowed) {
				t.Error("Configuration error must not match ErrSortNotAllowed")
			}
		})
	}
}

func TestApply_UnvalidatedFieldFallsBackToName(t *testing.T) {
	orderer := &fakeOrderer{}

	if err := Apply(orderer, []Field{{Name: "price", Direction: Desc}}); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if len(orderer.orders) != 1 {
		t.Fatalf("Expected 1 ordering call, got %d", len(orderer.orders))
	}
	if orderer.orders[0].column != "price" || !orderer.orders[0].descending {
		t.Errorf("Expected price desc, got %v", orderer.orders[0])
	}
}
