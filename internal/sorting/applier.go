package sorting

import (
	"fmt"

	apperrors "github.com/Payphone-Digital/catalog-api/internal/errors"
)

// QueryOrderer is the ordering capability the applier needs from a query
// builder: append one ORDER BY-equivalent clause.
type QueryOrderer interface {
	OrderBy(column string, descending bool)
}

// Apply pushes each validated field onto the query builder in request
// order. Fields are trusted to have passed Validate; directions are not
// re-checked here.
//
// A builder that is absent or does not expose ordering is a deployment
// problem, not a client one: Apply reports it as ErrOrderingUnavailable
// so callers can tell it apart from a sort validation failure.
func Apply(builder any, fields []Field) error {
	if builder == nil {
		return apperrors.WrapError(apperrors.ErrOrderingUnavailable,
			fmt.Errorf("no query builder supplied"))
	}

	orderer, ok := builder.(QueryOrderer)
	if !ok {
		return apperrors.WrapError(apperrors.ErrOrderingUnavailable,
			fmt.Errorf("query builder %T does not support ordering", builder))
	}

	for _, f := range fields {
		orderer.OrderBy(f.Column(), f.Descending())
	}

	return nil
}
