package queries

import (
	"errors"

	"uidkit/internal/pkg/errs"
	"uidkit/internal/pkg/guard"
)

const (
	MinRecentLimit     = 1
	MaxRecentLimit     = 100
	DefaultRecentLimit = 20
)

var ErrGetRecentIssuancesQueryIsNotConstructed = errors.New(
	"GetRecentIssuancesQuery must be created via NewGetRecentIssuancesQuery constructor",
)

// GetRecentIssuancesQuery lists the most recently issued identifiers, newest first.
//
// Example:
//
//	query, err := NewGetRecentIssuancesQuery(20)
//	if err != nil {
//	    return err
//	}
//	records, err := handler.Handle(ctx, query)
//	for _, r := range records {
//	    fmt.Printf("%s %s %s\n", r.IssuedAt.Format(time.RFC3339), r.Scheme, r.Value)
//	}
type GetRecentIssuancesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetRecentIssuancesQuery(limit int) (GetRecentIssuancesQuery, error) {
	if limit < MinRecentLimit || limit > MaxRecentLimit {
		return GetRecentIssuancesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, MinRecentLimit, MaxRecentLimit)
	}

	return GetRecentIssuancesQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetRecentIssuancesQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentIssuancesQueryIsNotConstructed)
}

func (q GetRecentIssuancesQuery) Limit() int {
	return q.limit
}
