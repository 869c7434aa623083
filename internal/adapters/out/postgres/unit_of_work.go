// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	for _, record := range records {
//	    if err := uow.IssuanceRepository().Add(ctx, record); err != nil {
//	        _ = uow.Rollback(ctx)
//	        return err
//	    }
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction; goroutines must not share one.
// Repositories obtained outside Begin/Commit run on the plain connection.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"uidkit/internal/adapters/out/postgres/issuancerepo"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/core/ports"
)

// trackedAggregate represents an aggregate added during the unit of work.
type trackedAggregate struct {
	ID        uid.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction if none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction and forgets the aggregates tracked in it.
// Returns gorm.ErrInvalidTransaction if none is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// IssuanceRepository returns a repository bound to the active transaction, or to the plain
// connection when there is none.
func (uow *GormUnitOfWork) IssuanceRepository() ports.IssuanceRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return issuancerepo.NewGormIssuanceRepository(db, uow)
}

// TrackAggregate registers an aggregate written within this unit of work. Repositories call it.
func (uow *GormUnitOfWork) TrackAggregate(id uid.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs returns the identifiers of the aggregates tracked so far, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []uid.UUID {
	ids := make([]uid.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}
