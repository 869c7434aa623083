package issuancerepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"uidkit/internal/adapters/out/uidtype"
	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

// GormIssuanceRepository implements ports.IssuanceRepository using GORM.
type GormIssuanceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id uid.UUID, aggregate any)
}

// NewGormIssuanceRepository creates a new GORM issuance repository.
func NewGormIssuanceRepository(db *gorm.DB, tracker aggregateTracker) *GormIssuanceRepository {
	return &GormIssuanceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new issuance. Recording the same identifier twice fails with
// *errs.ValueIsInvalidError when the connection translates driver errors.
func (r *GormIssuanceRepository) Add(ctx context.Context, record *issuance.Issuance) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("id",
				fmt.Errorf("%s is already recorded: %w", record.ID(), err))
		}
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves an issuance by identifier.
func (r *GormIssuanceRepository) Get(ctx context.Context, id uid.UUID) (*issuance.Issuance, error) {
	var dto IssuanceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", uidtype.UUID(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("issuance", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListRecent returns at most limit issuances, newest first.
func (r *GormIssuanceRepository) ListRecent(ctx context.Context, limit int) ([]*issuance.Issuance, error) {
	if limit <= 0 {
		return []*issuance.Issuance{}, nil
	}

	var dtos []IssuanceDTO
	if err := r.db.WithContext(ctx).
		Order("issued_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*issuance.Issuance, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// Count returns the number of recorded issuances.
func (r *GormIssuanceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&IssuanceDTO{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
