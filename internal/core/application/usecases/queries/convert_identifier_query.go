package queries

import (
	"errors"
	"fmt"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
	"uidkit/internal/pkg/guard"
)

var ErrConvertIdentifierQueryIsNotConstructed = errors.New(
	"ConvertIdentifierQuery must be created via NewConvertIdentifierQuery constructor",
)

// ConvertIdentifierQuery asks for the equivalent of a time-based identifier in another
// time-based layout: v1 to v6 or v7, v6 to v1 or v7.
type ConvertIdentifierQuery struct {
	id     uid.UUID
	target uid.Kind

	guard guard.ConstructorGuard
}

// NewConvertIdentifierQuery decodes value and resolves the target version ("v1", "v6", "v7"
// or the bare digit).
func NewConvertIdentifierQuery(value, to string) (ConvertIdentifierQuery, error) {
	q := ConvertIdentifierQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setID(value),
		q.setTarget(to),
	); err != nil {
		return ConvertIdentifierQuery{}, err
	}

	return q, nil
}

func (q ConvertIdentifierQuery) Validate() error {
	return q.guard.Validate(ErrConvertIdentifierQueryIsNotConstructed)
}

func (q ConvertIdentifierQuery) ID() uid.UUID {
	return q.id
}

func (q ConvertIdentifierQuery) Target() uid.Kind {
	return q.target
}

func (q *ConvertIdentifierQuery) setID(value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError("value")
	}

	id, err := uid.Parse(value)
	if err != nil {
		return err
	}

	q.id = id
	return nil
}

func (q *ConvertIdentifierQuery) setTarget(to string) error {
	if to == "" {
		return errs.NewValueIsRequiredError("to")
	}

	kind, err := uid.ParseKindName(to)
	if err != nil {
		return err
	}
	if kind != uid.KindV1 && kind != uid.KindV6 && kind != uid.KindV7 {
		return errs.NewVersionIsInvalidErrorWithCause("to",
			fmt.Errorf("cannot convert to %s, expected v1, v6 or v7", kind))
	}

	q.target = kind
	return nil
}

// ConvertIdentifierQueryResponse pairs the source identifier with its conversion.
type ConvertIdentifierQueryResponse struct {
	Source     uid.UUID
	SourceKind uid.Kind
	Target     uid.UUID
	TargetKind uid.Kind
	RFC4122    string
	Base32     string
	Base58     string
}
