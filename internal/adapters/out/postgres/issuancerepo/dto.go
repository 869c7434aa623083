// Package issuancerepo persists issuance records with GORM. Identifier columns use the
// uidtype column types, so the same DTO maps to a native UUID column on PostgreSQL and to
// a 16-byte binary column elsewhere.
package issuancerepo

import (
	"time"

	"uidkit/internal/adapters/out/uidtype"
	"uidkit/internal/core/domain/model/issuance"
)

// IssuanceDTO is the database structure of an issuance record.
type IssuanceDTO struct {
	ID        uidtype.UUID     `gorm:"primaryKey"`
	Scheme    string           `gorm:"type:varchar(8);not null;index"`
	IssuedAt  time.Time        `gorm:"not null;index"`
	Namespace uidtype.NullUUID `gorm:"index"`
	Name      string           `gorm:"type:text;not null;default:''"`
}

// TableName overrides GORM's default naming convention.
func (IssuanceDTO) TableName() string {
	return "issuances"
}

func fromDomain(record *issuance.Issuance) IssuanceDTO {
	return IssuanceDTO{
		ID:        uidtype.UUID(record.ID()),
		Scheme:    record.Scheme().String(),
		IssuedAt:  record.IssuedAt(),
		Namespace: uidtype.NewNullUUID(record.Namespace()),
		Name:      record.Name(),
	}
}

func toDomain(dto IssuanceDTO) (*issuance.Issuance, error) {
	return issuance.RestoreIssuance(
		dto.ID.ID(),
		issuance.Scheme(dto.Scheme),
		dto.IssuedAt,
		dto.Namespace.Ptr(),
		dto.Name,
	)
}
