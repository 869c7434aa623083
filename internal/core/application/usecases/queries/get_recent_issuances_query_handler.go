package queries

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
)

// GetRecentIssuancesQueryHandler reads the issuance registry directly with SQL.
type GetRecentIssuancesQueryHandler struct {
	db *gorm.DB
}

func NewGetRecentIssuancesQueryHandler(db *gorm.DB) GetRecentIssuancesQueryHandler {
	return GetRecentIssuancesQueryHandler{db: db}
}

// Handle returns at most query.Limit() records ordered by issue time, newest first. Records
// issued at the same instant are ordered by identifier, highest first.
func (h GetRecentIssuancesQueryHandler) Handle(
	ctx context.Context,
	query GetRecentIssuancesQuery,
) ([]IssuanceRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]IssuanceRecord, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			scheme,
			issued_at,
			namespace,
			name
		FROM issuances
		ORDER BY issued_at DESC, id DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawID     string
			scheme    string
			issuedAt  time.Time
			namespace sql.NullString
			name      string
		)
		if err = rows.Scan(&rawID, &scheme, &issuedAt, &namespace, &name); err != nil {
			return nil, err
		}

		// Native UUID columns come back as text, binary columns as 16 raw bytes; Parse takes both.
		id, parseErr := uid.Parse(rawID)
		if parseErr != nil {
			return nil, parseErr
		}
		var ns *uid.UUID
		if namespace.Valid {
			parsed, nsErr := uid.Parse(namespace.String)
			if nsErr != nil {
				return nil, nsErr
			}
			ns = &parsed
		}

		record, restoreErr := issuance.RestoreIssuance(id, issuance.Scheme(scheme), issuedAt, ns, name)
		if restoreErr != nil {
			return nil, restoreErr
		}
		records = append(records, *newIssuanceRecord(record))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
