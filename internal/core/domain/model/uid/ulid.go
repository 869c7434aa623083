package uid

import (
	"bytes"
	"hash/fnv"
	"time"

	"github.com/oklog/ulid/v2"

	"uidkit/internal/pkg/errs"
)

// ULID is a 48-bit Unix millisecond timestamp followed by 80 random bits. It shares the
// 128-bit space with UUID; its canonical text form is Base32.
type ULID [Size]byte

// ParseULID decodes s in any supported encoding. Every 128-bit value is a valid ULID.
func ParseULID(s string) (ULID, error) {
	u, err := Parse(s)
	if err != nil {
		return ULID{}, err
	}
	return ULID(u), nil
}

// NewULIDFromFields builds a ULID from a Unix millisecond timestamp and 10 entropy bytes.
func NewULIDFromFields(ms uint64, entropy [10]byte) (ULID, error) {
	var id ulid.ULID
	if err := id.SetTime(ms); err != nil {
		return ULID{}, errs.NewValueIsOutOfRangeErrorWithCause("ms", ms, 0, uint64(MaxMillis), err)
	}
	_ = id.SetEntropy(entropy[:])
	return ULID(id), nil
}

// ToULID relabels the 128 bits of u as a ULID.
func (u UUID) ToULID() ULID {
	return ULID(u)
}

// ToUUID relabels the 128 bits of l as a UUID.
func (l ULID) ToUUID() UUID {
	return UUID(l)
}

func (l ULID) String() string {
	return ulid.ULID(l).String()
}

func (l ULID) ToBase32() string  { return l.String() }
func (l ULID) ToBase58() string  { return UUID(l).ToBase58() }
func (l ULID) ToRFC4122() string { return UUID(l).ToRFC4122() }

// Millis returns the 48-bit Unix millisecond timestamp.
func (l ULID) Millis() uint64 {
	return ulid.ULID(l).Time()
}

// Time returns the timestamp at millisecond resolution.
func (l ULID) Time() time.Time {
	return ulid.Time(l.Millis()).UTC()
}

func (l ULID) Bytes() []byte {
	return UUID(l).Bytes()
}

func (l ULID) Compare(other ULID) int {
	return bytes.Compare(l[:], other[:])
}

func (l ULID) Less(other ULID) bool {
	return l.Compare(other) < 0
}

func (l ULID) Equal(other ULID) bool {
	return l == other
}

func (l ULID) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write(l[:])
	return h.Sum64()
}

// MarshalText implements encoding.TextMarshaler with the Base32 form.
func (l ULID) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; any textual encoding is accepted.
func (l *ULID) UnmarshalText(text []byte) error {
	u, err := ParseEncoding(string(text), EncodingBase32|EncodingBase58|EncodingRFC4122)
	if err != nil {
		return err
	}
	*l = ULID(u)
	return nil
}
