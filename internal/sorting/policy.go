package sorting

import (
	"strings"

	"github.com/samber/lo"
)

// Direction tokens compared case-sensitively against client input
const (
	Asc  = "asc"
	Desc = "desc"
)

// Spec declares one sortable field for an endpoint: the name clients use,
// the column the ORM orders by, and the permitted direction tokens.
// Immutable once constructed.
type Spec struct {
	Name       string
	Column     string
	Directions []string
}

// NewSpec creates a sort specification. An empty column defaults to the
// field name; no directions defaults to both asc and desc.
func NewSpec(name, column string, directions ...string) Spec {
	if column == "" {
		column = name
	}
	if len(directions) == 0 {
		directions = []string{Asc, Desc}
	}
	return Spec{
		Name:       name,
		Column:     column,
		Directions: directions,
	}
}

// Allows reports whether the direction token is permitted by this spec.
func (s Spec) Allows(direction string) bool {
	for _, d := range s.Directions {
		if d == direction {
			return true
		}
	}
	return false
}

func (s Spec) describe() string {
	return s.Name + " (" + strings.Join(s.Directions, ", ") + ")"
}

// Policy is the ordered set of sort specifications an endpoint permits.
// Duplicate names are a policy-author error; lookup resolves last-wins.
type Policy []Spec

// Find returns the spec declared for name. With duplicate names the last
// declaration wins.
func (p Policy) Find(name string) (Spec, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Name == name {
			return p[i], true
		}
	}
	return Spec{}, false
}

// Columns lists every column the policy may order by, in declaration order.
func (p Policy) Columns() []string {
	return lo.Map(p, func(s Spec, _ int) string {
		return s.Column
	})
}

// Describe renders the full policy for diagnostics, e.g.
// "price (asc, desc), name (asc)".
func (p Policy) Describe() string {
	parts := lo.Map(p, func(s Spec, _ int) string {
		return s.describe()
	})
	return strings.Join(parts, ", ")
}
