package validation

import "testing"

func TestCustomMessage(t *testing.T) {
	tests := []struct {
		field string
		tag   string
		want  string
	}{
		{"Email", "required", "email is required"},
		{"Email", "email", "email must be a valid address"},
		{"Password", "min", "password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.tag, func(t *testing.T) {
			msgs := CustomMessage(tt.field)
			if msgs == nil {
				t.Fatalf("Expected overrides for field %s", tt.field)
			}
			if got := msgs[tt.tag]; got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	if msgs := CustomMessage("Unknown"); msgs != nil {
		t.Errorf("Expected nil for unknown field, got %v", msgs)
	}
}

func TestDefaultMessage(t *testing.T) {
	if got := DefaultMessage("Stock", "gte"); got != "stock must be greater than or equal to the minimum" {
		t.Errorf("Unexpected message: %q", got)
	}
	if got := DefaultMessage("Name", "bogus"); got != "name is invalid" {
		t.Errorf("Unexpected fallback message: %q", got)
	}
}
