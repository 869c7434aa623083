// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"uidkit/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// IssuanceRepoFactory provides access to the issuance registry within a transaction.
	IssuanceRepoFactory interface {
		IssuanceRepository() ports.IssuanceRepository
	}

	// IssuanceUoW manages transactions for commands that record issuances.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.IssuanceRepository()
	//   // ... add records
	//
	//   err = uow.Commit(ctx)
	IssuanceUoW interface {
		TxManager
		IssuanceRepoFactory
	}

	// IssuanceUoWFactory creates new issuance unit of work instances.
	IssuanceUoWFactory interface {
		Create() IssuanceUoW
	}
)
