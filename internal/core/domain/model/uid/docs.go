// Package uid implements 128-bit universal identifiers: UUID versions 1, 3, 4, 5, 6 and 7,
// the nil and max sentinels, and ULIDs.
//
// Every identifier is a [16]byte value. The package covers the binary form, four textual
// encodings (RFC 4122, Base32, Base58 and a 0x-prefixed hex rendering), per-version field
// accessors and builders, cross-version conversion and ordering. Stateful generation (clock
// sequence, monotonic v7 counter, node id) lives in the services package.
//
// Encodings
//
//	RFC 4122  d6b3345b-2905-4048-a83c-b5988e765d98  36 chars, lowercase hex with hyphens
//	Base32    6PPCT5PA85814AGF5NK277CQCR            26 chars, Crockford alphabet (ULID)
//	Base58    TWhcgeDe3hfcGzdHS12pKZ                22 chars, Bitcoin alphabet, '1'-padded
//	Binary    16 raw bytes
//
// Parse detects the encoding from the input length. ParseEncoding restricts detection to a
// set of encodings, and ParseKind additionally checks the version.
//
// Errors
//
// Malformed input fails with *errs.FormatError. Well-formed input that does not fit the
// operation (a v4 passed to a v1 accessor, a pre-1970 v1 converted to v7) fails with
// *errs.InvalidArgumentError.
package uid
