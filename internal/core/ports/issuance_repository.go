// Package ports defines the contracts between the identifier service core and its
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
)

// IssuanceRepository defines the persistence contract for issuance records.
// Records are append-only: there is no Update.
type IssuanceRepository interface {
	// Add persists a new issuance. The record must be valid and its identifier unused.
	Add(ctx context.Context, record *issuance.Issuance) error

	// Get retrieves an issuance by identifier.
	// Returns *errs.ObjectNotFoundError when the identifier was never issued.
	Get(ctx context.Context, id uid.UUID) (*issuance.Issuance, error)

	// ListRecent returns at most limit records, most recently issued first.
	//
	// Example:
	//   records, err := repo.ListRecent(ctx, 20)
	//   if err != nil {
	//       return fmt.Errorf("failed to list issuances: %w", err)
	//   }
	ListRecent(ctx context.Context, limit int) ([]*issuance.Issuance, error)

	// Count returns the number of recorded issuances.
	Count(ctx context.Context) (int64, error)
}
