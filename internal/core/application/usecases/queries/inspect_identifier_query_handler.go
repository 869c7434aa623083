package queries

import (
	"context"
	"errors"

	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

// IssuanceReader looks up registry records. ports.IssuanceRepository satisfies it.
type IssuanceReader interface {
	Get(ctx context.Context, id uid.UUID) (*issuance.Issuance, error)
}

// InspectIdentifierQueryHandler decodes the layout of an identifier and, when a registry is
// configured, attaches its issuance record.
type InspectIdentifierQueryHandler struct {
	registry IssuanceReader
}

// NewInspectIdentifierQueryHandler creates the handler. registry may be nil, in which case
// the response never carries an issuance record.
func NewInspectIdentifierQueryHandler(registry IssuanceReader) InspectIdentifierQueryHandler {
	return InspectIdentifierQueryHandler{registry: registry}
}

func (h InspectIdentifierQueryHandler) Handle(
	ctx context.Context,
	query InspectIdentifierQuery,
) (InspectIdentifierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return InspectIdentifierQueryResponse{}, err
	}

	id := query.ID()
	info := InspectIdentifierQueryResponse{
		ID:            id,
		InputEncoding: query.Encoding(),
		Kind:          id.Kind(),
		Version:       id.Version(),
		RFC4122:       id.ToRFC4122(),
		Base32:        id.ToBase32(),
		Base58:        id.ToBase58(),
		Hex:           id.ToHex(),
	}

	if t, err := id.Time(); err == nil {
		info.Time = &t
	}
	if node, err := id.Node(); err == nil {
		info.Node = node
	}
	if cs, err := id.ClockSequence(); err == nil {
		info.ClockSequence = &cs
	}
	if counter, err := id.Counter(); err == nil {
		info.Counter = &counter
	}

	if h.registry == nil {
		return info, nil
	}

	record, err := h.registry.Get(ctx, id)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return info, nil
		}
		return InspectIdentifierQueryResponse{}, err
	}

	info.Issuance = newIssuanceRecord(record)
	if info.Time == nil && record.Scheme() == issuance.SchemeULID {
		t := id.ToULID().Time()
		info.Time = &t
	}

	return info, nil
}
