package queries

import (
	"context"

	"uidkit/internal/core/domain/model/uid"
)

// ConvertIdentifierQueryHandler converts between time-based layouts. Conversions are pure;
// nothing is read from or written to the registry.
type ConvertIdentifierQueryHandler struct{}

func NewConvertIdentifierQueryHandler() ConvertIdentifierQueryHandler {
	return ConvertIdentifierQueryHandler{}
}

// Handle returns *errs.InvalidArgumentError when the source kind cannot be converted, or
// when a v7 target is requested for a timestamp before the Unix epoch.
func (h ConvertIdentifierQueryHandler) Handle(
	_ context.Context,
	query ConvertIdentifierQuery,
) (ConvertIdentifierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ConvertIdentifierQueryResponse{}, err
	}

	source := query.ID()
	target, err := source.ConvertTo(query.Target())
	if err != nil {
		return ConvertIdentifierQueryResponse{}, err
	}

	return newConvertResponse(source, target), nil
}

func newConvertResponse(source, target uid.UUID) ConvertIdentifierQueryResponse {
	return ConvertIdentifierQueryResponse{
		Source:     source,
		SourceKind: source.Kind(),
		Target:     target,
		TargetKind: target.Kind(),
		RFC4122:    target.ToRFC4122(),
		Base32:     target.ToBase32(),
		Base58:     target.ToBase58(),
	}
}
