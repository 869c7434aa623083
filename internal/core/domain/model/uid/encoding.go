package uid

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"uidkit/internal/pkg/errs"
)

// Encoding is a set of textual/binary representations accepted by ParseEncoding and IsValid.
type Encoding uint8

const (
	EncodingBinary Encoding = 1 << iota
	EncodingBase32
	EncodingBase58
	EncodingRFC4122

	EncodingAll = EncodingBinary | EncodingBase32 | EncodingBase58 | EncodingRFC4122
)

const (
	rfc4122Len = 36
	base32Len  = ulid.EncodedSize
	base58Len  = 22
)

func (e Encoding) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	if e&EncodingBinary != 0 {
		names = append(names, "binary")
	}
	if e&EncodingBase32 != 0 {
		names = append(names, "base32")
	}
	if e&EncodingBase58 != 0 {
		names = append(names, "base58")
	}
	if e&EncodingRFC4122 != 0 {
		names = append(names, "rfc4122")
	}
	return strings.Join(names, "|")
}

// Has reports whether every encoding in other is part of e.
func (e Encoding) Has(other Encoding) bool {
	return e&other == other
}

// ParseEncodingName maps "binary", "base32", "base58" and "rfc4122" to their Encoding.
// An empty name selects EncodingRFC4122.
func ParseEncodingName(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", "rfc4122":
		return EncodingRFC4122, nil
	case "base32":
		return EncodingBase32, nil
	case "base58":
		return EncodingBase58, nil
	case "binary":
		return EncodingBinary, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("format",
			fmt.Errorf("unknown encoding %q", name))
	}
}

// Parse decodes s in any supported encoding. The encoding is detected by length:
// 16 bytes is binary, 36 chars RFC 4122, 26 chars Base32, 22 chars Base58.
func Parse(s string) (UUID, error) {
	return ParseEncoding(s, EncodingAll)
}

// ParseEncoding decodes s, considering only the encodings in enc.
func ParseEncoding(s string, enc Encoding) (UUID, error) {
	switch {
	case len(s) == Size && enc&EncodingBinary != 0:
		return FromBinary([]byte(s))
	case len(s) == rfc4122Len && enc&EncodingRFC4122 != 0:
		return decodeRFC4122(s)
	case len(s) == base32Len && enc&EncodingBase32 != 0:
		return decodeBase32(s)
	case len(s) == base58Len && enc&EncodingBase58 != 0:
		return decodeBase58(s)
	default:
		return Nil, errs.NewFormatError(s, "identifier ("+enc.String()+")")
	}
}

// DetectEncoding returns the encoding Parse selects for s from its length, or 0 when
// the length matches none.
func DetectEncoding(s string) Encoding {
	switch len(s) {
	case Size:
		return EncodingBinary
	case rfc4122Len:
		return EncodingRFC4122
	case base32Len:
		return EncodingBase32
	case base58Len:
		return EncodingBase58
	default:
		return 0
	}
}

// MustParse is like Parse but panics on malformed input. Intended for constants and tests.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsValid reports whether s decodes with one of the encodings in enc.
func IsValid(s string, enc Encoding) bool {
	_, err := ParseEncoding(s, enc)
	return err == nil
}

// ParseKind decodes s and checks that the result is of the given kind.
func ParseKind(s string, kind Kind) (UUID, error) {
	u, err := Parse(s)
	if err != nil {
		return Nil, err
	}
	if u.Kind() != kind {
		return Nil, errs.NewInvalidArgumentError("uuid", fmt.Sprintf("invalid %s: %q", kindLabel(kind), s))
	}
	return u, nil
}

func kindLabel(k Kind) string {
	if v := k.Version(); v != 0 {
		return fmt.Sprintf("UUIDv%d", v)
	}
	return k.String() + " UUID"
}

// Encode renders u in a single encoding. Binary yields the raw 16 bytes as a string.
func (u UUID) Encode(enc Encoding) (string, error) {
	switch enc {
	case EncodingRFC4122:
		return u.ToRFC4122(), nil
	case EncodingBase32:
		return u.ToBase32(), nil
	case EncodingBase58:
		return u.ToBase58(), nil
	case EncodingBinary:
		return string(u[:]), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("format",
			fmt.Errorf("cannot encode with %s", enc))
	}
}

// ToRFC4122 returns the canonical lowercase hyphenated form.
func (u UUID) ToRFC4122() string {
	return uuid.UUID(u).String()
}

// String implements fmt.Stringer with the RFC 4122 form.
func (u UUID) String() string {
	return u.ToRFC4122()
}

// ToBase32 returns the 26-character Crockford form used by ULIDs.
func (u UUID) ToBase32() string {
	return ulid.ULID(u).String()
}

// ToBase58 returns the 22-character Bitcoin-alphabet form, left-padded with '1'.
func (u UUID) ToBase58() string {
	return encodeBase58(u)
}

// ToHex returns "0x" followed by 32 lowercase hex digits.
func (u UUID) ToHex() string {
	return "0x" + hex.EncodeToString(u[:])
}

// MarshalText implements encoding.TextMarshaler with the RFC 4122 form.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.ToRFC4122()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; any textual encoding is accepted.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := ParseEncoding(string(text), EncodingBase32|EncodingBase58|EncodingRFC4122)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func decodeRFC4122(s string) (UUID, error) {
	if len(s) != rfc4122Len {
		return Nil, errs.NewFormatError(s, "RFC 4122 identifier")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return Nil, errs.NewFormatErrorWithCause(s, "RFC 4122 identifier", err)
	}
	return UUID(parsed), nil
}

func decodeBase32(s string) (UUID, error) {
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return Nil, errs.NewFormatErrorWithCause(s, "base32 identifier", err)
	}
	return UUID(parsed), nil
}
