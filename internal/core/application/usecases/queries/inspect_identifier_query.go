// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
	"uidkit/internal/pkg/guard"
)

var ErrInspectIdentifierQueryIsNotConstructed = errors.New(
	"InspectIdentifierQuery must be created via NewInspectIdentifierQuery constructor",
)

// InspectIdentifierQuery describes an identifier given in any supported encoding.
//
// Example:
//
//	query, err := NewInspectIdentifierQuery("01EEDQEK6ZAZE93J8KG5B4MBJC")
//	if err != nil {
//	    return fmt.Errorf("invalid identifier: %w", err)
//	}
//	info, err := handler.Handle(ctx, query)
//	fmt.Println(info.Kind, info.RFC4122)
type InspectIdentifierQuery struct {
	id       uid.UUID
	encoding uid.Encoding

	guard guard.ConstructorGuard
}

// NewInspectIdentifierQuery decodes value, detecting its encoding from its length.
func NewInspectIdentifierQuery(value string) (InspectIdentifierQuery, error) {
	if value == "" {
		return InspectIdentifierQuery{}, errs.NewValueIsRequiredError("value")
	}

	id, err := uid.Parse(value)
	if err != nil {
		return InspectIdentifierQuery{}, err
	}

	return InspectIdentifierQuery{
		id:       id,
		encoding: uid.DetectEncoding(value),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q InspectIdentifierQuery) Validate() error {
	return q.guard.Validate(ErrInspectIdentifierQueryIsNotConstructed)
}

func (q InspectIdentifierQuery) ID() uid.UUID {
	return q.id
}

// Encoding is the encoding the value was given in.
func (q InspectIdentifierQuery) Encoding() uid.Encoding {
	return q.encoding
}

// InspectIdentifierQueryResponse is the description of one identifier. Fields a kind does
// not carry are left nil or empty: Time for v1, v6 and v7; Node and ClockSequence for v1
// and v6; Counter for v7.
type InspectIdentifierQueryResponse struct {
	ID            uid.UUID
	InputEncoding uid.Encoding
	Kind          uid.Kind
	Version       int
	RFC4122       string
	Base32        string
	Base58        string
	Hex           string
	Time          *time.Time
	Node          string
	ClockSequence *uint16
	Counter       *uint16

	// Issuance is set when the identifier was handed out by this service.
	Issuance *IssuanceRecord
}

// IssuanceRecord is the registry entry of an identifier.
type IssuanceRecord struct {
	ID        uid.UUID
	Value     string
	Scheme    issuance.Scheme
	IssuedAt  time.Time
	Namespace *uid.UUID
	Name      string
}

func newIssuanceRecord(record *issuance.Issuance) *IssuanceRecord {
	return &IssuanceRecord{
		ID:        record.ID(),
		Value:     record.Value(),
		Scheme:    record.Scheme(),
		IssuedAt:  record.IssuedAt(),
		Namespace: record.Namespace(),
		Name:      record.Name(),
	}
}
