package uid

import (
	"bytes"
	"fmt"
	"hash/fnv"

	"uidkit/internal/pkg/errs"
)

// Size is the length in bytes of the binary form of every identifier.
const Size = 16

// UUID is an immutable 128-bit identifier stored as 16 big-endian bytes.
//
// UUID is a value type: it is comparable with ==, usable as a map key, and safe for
// concurrent use. The version-specific behavior (timestamp layout, node, clock sequence,
// counter) is selected from the bits themselves, see Kind.
//
// Example usage:
//
//	id, err := uid.Parse("01EEDQEK6ZAZE93J8KG5B4MBJC")
//	if err != nil {
//	    return fmt.Errorf("invalid identifier: %w", err)
//	}
//	fmt.Println(id.ToRFC4122()) // 01739b77-4cdf-57dc-91c9-1381564a2e4c
//	fmt.Println(id.Kind())      // v5
type UUID [Size]byte

var (
	// Nil is the all-zero sentinel.
	Nil UUID
	// Max is the all-one sentinel.
	Max = UUID{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
)

// Kind is the discriminant selecting per-version behavior.
type Kind int

const (
	// KindGeneric covers 128-bit values that are neither sentinels nor RFC-variant
	// identifiers of a known version.
	KindGeneric Kind = iota
	KindNil
	KindMax
	KindV1
	KindV3
	KindV4
	KindV5
	KindV6
	KindV7
	KindV8
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindMax:
		return "max"
	case KindV1:
		return "v1"
	case KindV3:
		return "v3"
	case KindV4:
		return "v4"
	case KindV5:
		return "v5"
	case KindV6:
		return "v6"
	case KindV7:
		return "v7"
	case KindV8:
		return "v8"
	default:
		return "generic"
	}
}

// Version returns the version nibble the kind is stored with, or 0 for kinds without one.
func (k Kind) Version() int {
	switch k {
	case KindV1:
		return 1
	case KindV3:
		return 3
	case KindV4:
		return 4
	case KindV5:
		return 5
	case KindV6:
		return 6
	case KindV7:
		return 7
	case KindV8:
		return 8
	default:
		return 0
	}
}

// ParseKindName maps "v1".."v8", "nil" and "max" (as returned by Kind.String) back to a Kind.
// A bare version digit such as "7" is accepted as well.
func ParseKindName(name string) (Kind, error) {
	switch name {
	case "nil":
		return KindNil, nil
	case "max":
		return KindMax, nil
	case "v1", "1":
		return KindV1, nil
	case "v3", "3":
		return KindV3, nil
	case "v4", "4":
		return KindV4, nil
	case "v5", "5":
		return KindV5, nil
	case "v6", "6":
		return KindV6, nil
	case "v7", "7":
		return KindV7, nil
	case "v8", "8":
		return KindV8, nil
	default:
		return KindGeneric, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("unknown identifier version %q", name))
	}
}

// Kind classifies u by its sentinel value, variant bits and version nibble.
func (u UUID) Kind() Kind {
	switch u {
	case Nil:
		return KindNil
	case Max:
		return KindMax
	}
	if !u.IsRFCVariant() {
		return KindGeneric
	}

	switch u.Version() {
	case 1:
		return KindV1
	case 3:
		return KindV3
	case 4:
		return KindV4
	case 5:
		return KindV5
	case 6:
		return KindV6
	case 7:
		return KindV7
	case 8:
		return KindV8
	default:
		return KindGeneric
	}
}

// Version returns the raw version nibble (bits 48-51).
func (u UUID) Version() int {
	return int(u[6] >> 4)
}

// IsRFCVariant reports whether bits 64-65 hold the RFC 4122 variant `10`.
func (u UUID) IsRFCVariant() bool {
	return u[8]&0xc0 == 0x80
}

// IsNil reports whether u is the all-zero sentinel.
func (u UUID) IsNil() bool {
	return u == Nil
}

// IsMax reports whether u is the all-one sentinel.
func (u UUID) IsMax() bool {
	return u == Max
}

// Bytes returns a fresh copy of the 16-byte binary form.
func (u UUID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, u[:])
	return b
}

// FromBinary reconstructs an identifier from its 16-byte binary form.
// Any other length fails with *errs.FormatError.
func FromBinary(b []byte) (UUID, error) {
	if len(b) != Size {
		return Nil, errs.NewFormatError(string(b), "16-byte binary identifier")
	}
	var u UUID
	copy(u[:], b)
	return u, nil
}

// Compare orders identifiers by unsigned big-endian byte comparison and returns -1, 0 or 1.
// For v6, v7 and ULID values this is also generation order.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u[:], other[:])
}

// Less reports whether u sorts before other.
func (u UUID) Less(other UUID) bool {
	return u.Compare(other) < 0
}

// Equal reports bit-exact equality.
func (u UUID) Equal(other UUID) bool {
	return u == other
}

// Hash returns the FNV-1a hash of the 16 bytes. It is stable across process runs.
func (u UUID) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write(u[:])
	return h.Sum64()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (u UUID) MarshalBinary() ([]byte, error) {
	return u.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (u *UUID) UnmarshalBinary(data []byte) error {
	parsed, err := FromBinary(data)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
