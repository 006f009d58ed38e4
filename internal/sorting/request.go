package sorting

import (
	"fmt"

	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
)

// Request owns the sort negotiation for one request handling cycle:
// the raw query to parse, the endpoint's policy, and the memoized parsed
// fields. Handlers hold one Request per inbound request; instances must
// not be shared across requests.
//
// Lifecycle: SetPolicy, then Validate, then consume via AllSortedFields,
// GetSortedField or Apply. Parsing happens lazily on first access.
// Reading fields before Validate is permitted but yields unvalidated
// fields; that risk belongs to the caller.
type Request struct {
	rawQuery string
	parser   Parser
	policy   Policy

	fields []Field
	parsed bool
}

// NewRequest creates a sort request over the raw query string of one
// inbound HTTP request.
func NewRequest(rawQuery string) *Request {
	return NewRequestWithParser(rawQuery, QueryParser{})
}

// NewRequestWithParser creates a sort request with a custom parser.
// Used by tests to observe parse calls.
func NewRequestWithParser(rawQuery string, parser Parser) *Request {
	return &Request{
		rawQuery: rawQuery,
		parser:   parser,
	}
}

// SetPolicy declares the sorts this endpoint permits. Must be called
// before Validate.
func (r *Request) SetPolicy(policy Policy) {
	r.policy = policy
}

// Policy returns the declared policy.
func (r *Request) Policy() Policy {
	return r.policy
}

// AllSortedFields returns every requested sort in request order, parsing
// the query on first access and caching the result for the rest of the
// request cycle.
func (r *Request) AllSortedFields() []Field {
	if !r.parsed {
		r.fields = r.parser.Parse(r.rawQuery)
		r.parsed = true
	}
	return r.fields
}

// HasSortedField reports whether the client requested a sort by name.
func (r *Request) HasSortedField(name string) bool {
	_, ok := r.GetSortedField(name)
	return ok
}

// GetSortedField returns the first requested sort for name in request
// order, or false if the client did not sort by it.
func (r *Request) GetSortedField(name string) (Field, bool) {
	for _, f := range r.AllSortedFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks every requested sort against the policy and links each
// field to its matching spec. It fails fast on the first field whose name
// is not declared or whose direction the spec does not allow; the error
// names the offending field and echoes the full policy for diagnostics.
//
// An empty request validates trivially. Duplicate requests for the same
// field are each validated independently.
func (r *Request) Validate() error {
	fields := r.AllSortedFields()

	for i, f := range fields {
		spec, ok := r.policy.Find(f.Name)
		if !ok {
			return newSortError(f, r.policy)
		}
		if !spec.Allows(f.Direction) {
			return newSortError(f, r.policy)
		}
		fields[i].spec = spec
		fields[i].matched = true
	}

	return nil
}

func newSortError(f Field, p Policy) error {
	return apperrors.WrapError(apperrors.ErrSortNotAllowed, fmt.Errorf(
		"sort by %q with direction %q is not permitted; allowed sorts: %s",
		f.Name, f.Direction, p.Describe(),
	))
}
