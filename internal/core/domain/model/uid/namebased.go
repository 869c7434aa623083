package uid

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"uidkit/internal/pkg/errs"
)

// Predefined namespaces from RFC 4122 appendix C.
var (
	NamespaceDNS  = UUID(uuid.NameSpaceDNS)
	NamespaceURL  = UUID(uuid.NameSpaceURL)
	NamespaceOID  = UUID(uuid.NameSpaceOID)
	NamespaceX500 = UUID(uuid.NameSpaceX500)
)

// NewV3 derives a name-based identifier from the MD5 digest of namespace || name.
// MD5 is mandated by the v3 layout; it is not used for any security property.
func NewV3(namespace UUID, name string) UUID {
	return UUID(uuid.NewMD5(uuid.UUID(namespace), []byte(name)))
}

// NewV5 derives a name-based identifier from the SHA-1 digest of namespace || name.
func NewV5(namespace UUID, name string) UUID {
	return UUID(uuid.NewSHA1(uuid.UUID(namespace), []byte(name)))
}

// NewV4FromReader builds a random identifier from 16 bytes of r.
func NewV4FromReader(r io.Reader) (UUID, error) {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return Nil, fmt.Errorf("read random bytes: %w", err)
	}
	return UUID(u), nil
}

// LookupNamespace resolves the well-known names "dns", "url", "oid" and "x500" or parses
// namespace as an identifier in any textual encoding.
func LookupNamespace(namespace string) (UUID, error) {
	switch namespace {
	case "dns":
		return NamespaceDNS, nil
	case "url":
		return NamespaceURL, nil
	case "oid":
		return NamespaceOID, nil
	case "x500":
		return NamespaceX500, nil
	}

	ns, err := ParseEncoding(namespace, EncodingBase32|EncodingBase58|EncodingRFC4122)
	if err != nil {
		return Nil, errs.NewInvalidArgumentErrorWithCause("namespace",
			fmt.Sprintf("%q is not a valid namespace", namespace), err)
	}
	return ns, nil
}

// NameBased derives a v3 or v5 identifier from a textual namespace and a name.
func NameBased(kind Kind, namespace, name string) (UUID, error) {
	if kind != KindV3 && kind != KindV5 {
		return Nil, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%s is not a name-based version", kind))
	}

	ns, err := LookupNamespace(namespace)
	if err != nil {
		return Nil, err
	}

	if kind == KindV3 {
		return NewV3(ns, name), nil
	}
	return NewV5(ns, name), nil
}
