package sorting

// Field is one client-requested sort: the field name and the direction
// token exactly as they appeared in the query string. Validation links a
// Field to the policy spec it matched; the link is a value copy of the
// immutable Spec, not a shared pointer.
type Field struct {
	Name      string
	Direction string

	spec    Spec
	matched bool
}

// Spec returns the policy spec this field matched during validation.
// The second return is false for fields that have not been validated.
func (f Field) Spec() (Spec, bool) {
	return f.spec, f.matched
}

// Column returns the column the ORM should order by: the matched spec's
// column, or the raw field name when no spec has been linked.
func (f Field) Column() string {
	if f.matched {
		return f.spec.Column
	}
	return f.Name
}

// Descending reports whether this field requests descending order.
func (f Field) Descending() bool {
	return f.Direction == Desc
}
