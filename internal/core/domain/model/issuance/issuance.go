package issuance

import (
	"errors"
	"fmt"
	"time"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
	"uidkit/internal/pkg/guard"
)

// ErrIssuanceIsNotConstructed is returned when an Issuance was not created through
// NewIssuance or RestoreIssuance.
var ErrIssuanceIsNotConstructed = errors.New("Issuance must be created via NewIssuance constructor")

// Issuance is the registry record of an identifier produced by this service.
//
// Invariants:
//   - the identifier is neither the nil nor the max sentinel
//   - the scheme is one of the generated schemes, and a UUID scheme matches the identifier's kind
//   - name-based schemes carry a namespace, other schemes do not
//   - the issue time is set
type Issuance struct {
	id        uid.UUID
	scheme    Scheme
	issuedAt  time.Time
	namespace *uid.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewIssuance validates and creates an issuance record. All violated invariants are
// reported at once.
//
// Example:
//
//	id := generator.V7()
//	record, err := issuance.NewIssuance(id, issuance.SchemeV7, time.Now(), nil, "")
//	if err != nil {
//	    return fmt.Errorf("record issuance: %w", err)
//	}
func NewIssuance(id uid.UUID, scheme Scheme, issuedAt time.Time, namespace *uid.UUID, name string) (*Issuance, error) {
	i := &Issuance{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		i.setID(id),
		i.setScheme(scheme, id),
		i.setIssuedAt(issuedAt),
		i.setSource(scheme, namespace, name),
	); err != nil {
		return nil, err
	}

	return i, nil
}

// RestoreIssuance rebuilds a persisted issuance. It applies the same validation as NewIssuance.
func RestoreIssuance(id uid.UUID, scheme Scheme, issuedAt time.Time, namespace *uid.UUID, name string) (*Issuance, error) {
	return NewIssuance(id, scheme, issuedAt, namespace, name)
}

func (i *Issuance) Validate() error {
	if i == nil {
		return ErrIssuanceIsNotConstructed
	}
	return i.guard.Validate(ErrIssuanceIsNotConstructed)
}

func (i *Issuance) ID() uid.UUID {
	return i.id
}

func (i *Issuance) Scheme() Scheme {
	return i.scheme
}

func (i *Issuance) IssuedAt() time.Time {
	return i.issuedAt
}

// Namespace returns the namespace of a name-based issuance, nil otherwise.
func (i *Issuance) Namespace() *uid.UUID {
	if i.namespace == nil {
		return nil
	}
	ns := *i.namespace
	return &ns
}

func (i *Issuance) Name() string {
	return i.name
}

// Value renders the identifier in the scheme's canonical text form: Base32 for ULIDs,
// RFC 4122 for everything else.
func (i *Issuance) Value() string {
	if i.scheme == SchemeULID {
		return i.id.ToBase32()
	}
	return i.id.ToRFC4122()
}

func (i *Issuance) IsEqual(other *Issuance) bool {
	return other != nil && i.id == other.id
}

func (i *Issuance) setID(id uid.UUID) error {
	if id.IsNil() || id.IsMax() {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%s sentinel is never issued", id.Kind()))
	}
	i.id = id
	return nil
}

func (i *Issuance) setScheme(scheme Scheme, id uid.UUID) error {
	if !scheme.IsValid() {
		return errs.NewVersionIsInvalidErrorWithCause("scheme", fmt.Errorf("unknown scheme %q", scheme))
	}
	if kind, ok := scheme.Kind(); ok && id.Kind() != kind && !id.IsNil() && !id.IsMax() {
		return errs.NewValueIsInvalidErrorWithCause("scheme",
			fmt.Errorf("identifier %s is %s, not %s", id, id.Kind(), scheme))
	}
	i.scheme = scheme
	return nil
}

func (i *Issuance) setIssuedAt(issuedAt time.Time) error {
	if issuedAt.IsZero() {
		return errs.NewValueIsRequiredError("issuedAt")
	}
	i.issuedAt = issuedAt.UTC()
	return nil
}

func (i *Issuance) setSource(scheme Scheme, namespace *uid.UUID, name string) error {
	switch {
	case scheme.IsNameBased() && namespace == nil:
		return errs.NewValueIsRequiredError("namespace")
	case !scheme.IsNameBased() && namespace != nil:
		return errs.NewValueIsInvalidErrorWithCause("namespace",
			fmt.Errorf("%s identifiers are not name-based", scheme))
	case !scheme.IsNameBased() && name != "":
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("%s identifiers are not name-based", scheme))
	}

	if namespace != nil {
		ns := *namespace
		i.namespace = &ns
	}
	i.name = name
	return nil
}
