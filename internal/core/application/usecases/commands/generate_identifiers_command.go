package commands

import (
	"errors"
	"fmt"

	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
	"uidkit/internal/pkg/guard"
)

const (
	MinGenerateCount = 1
	MaxGenerateCount = 1000
)

var ErrGenerateIdentifiersCommandIsNotConstructed = errors.New(
	"GenerateIdentifiersCommand must be created via NewGenerateIdentifiersCommand constructor",
)

// GenerateIdentifiersCommand represents a request to issue a batch of identifiers of one scheme.
//
// Name-based schemes (v3, v5) are deterministic, so they take a namespace and a name and
// always produce exactly one identifier. The namespace is "dns", "url", "oid", "x500" or an
// identifier in any textual encoding.
//
// Example:
//
//	cmd, err := NewGenerateIdentifiersCommand("v7", 10, "", "", "base58")
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	handler := NewGenerateIdentifiersCommandHandler(uowFactory, generator, time.Now)
//	ids, err := handler.Handle(ctx, cmd)
type GenerateIdentifiersCommand struct { //nolint:recvcheck //using for validation
	scheme    issuance.Scheme
	count     int
	namespace *uid.UUID
	name      string
	format    uid.Encoding

	guard guard.ConstructorGuard
}

// NewGenerateIdentifiersCommand validates the request. An empty scheme selects v7; an empty
// format selects the scheme's canonical text form (Base32 for ULIDs, RFC 4122 otherwise).
// All violations are reported together.
func NewGenerateIdentifiersCommand(
	scheme string,
	count int,
	namespace, name, format string,
) (GenerateIdentifiersCommand, error) {
	cmd := GenerateIdentifiersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setScheme(scheme),
		cmd.setCount(count),
		cmd.setSource(namespace, name),
		cmd.setFormat(format),
	); err != nil {
		return GenerateIdentifiersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateIdentifiersCommand) Validate() error {
	return c.guard.Validate(ErrGenerateIdentifiersCommandIsNotConstructed)
}

func (c GenerateIdentifiersCommand) Scheme() issuance.Scheme {
	return c.scheme
}

func (c GenerateIdentifiersCommand) Count() int {
	return c.count
}

// Namespace returns a copy of the namespace, or nil for schemes that do not use one.
func (c GenerateIdentifiersCommand) Namespace() *uid.UUID {
	if c.namespace == nil {
		return nil
	}
	ns := *c.namespace
	return &ns
}

func (c GenerateIdentifiersCommand) Name() string {
	return c.name
}

// Format returns the requested output encoding; 0 means the scheme's canonical form.
func (c GenerateIdentifiersCommand) Format() uid.Encoding {
	return c.format
}

func (c *GenerateIdentifiersCommand) setScheme(scheme string) error {
	parsed, err := issuance.ParseScheme(scheme)
	if err != nil {
		return err
	}

	c.scheme = parsed
	return nil
}

func (c *GenerateIdentifiersCommand) setCount(count int) error {
	maxCount := MaxGenerateCount
	if c.scheme.IsNameBased() {
		maxCount = 1
	}
	if count < MinGenerateCount || count > maxCount {
		return errs.NewValueIsOutOfRangeError("count", count, MinGenerateCount, maxCount)
	}

	c.count = count
	return nil
}

func (c *GenerateIdentifiersCommand) setSource(namespace, name string) error {
	if c.scheme == "" {
		return nil
	}

	if !c.scheme.IsNameBased() {
		if namespace != "" || name != "" {
			return errs.NewValueIsInvalidErrorWithCause("namespace",
				fmt.Errorf("%s identifiers are not derived from a name", c.scheme))
		}
		return nil
	}

	if namespace == "" {
		return errs.NewValueIsRequiredError("namespace")
	}
	ns, err := uid.LookupNamespace(namespace)
	if err != nil {
		return err
	}

	c.namespace = &ns
	c.name = name
	return nil
}

func (c *GenerateIdentifiersCommand) setFormat(format string) error {
	if format == "" {
		return nil
	}

	enc, err := uid.ParseEncodingName(format)
	if err != nil {
		return err
	}
	if enc == uid.EncodingBinary {
		return errs.NewValueIsInvalidErrorWithCause("format",
			errors.New("binary output is not available as text"))
	}

	c.format = enc
	return nil
}
