package uid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"uidkit/internal/pkg/errs"
)

const (
	// GregorianOffset is the number of 100 ns ticks between 1582-10-15 and 1970-01-01.
	GregorianOffset = 0x01B21DD213814000

	ticksPerSecond = 10_000_000
	ticksPerMilli  = 10_000

	// MaxTicks is the largest 60-bit timestamp a v1 or v6 identifier can hold.
	MaxTicks = 1<<60 - 1
	// MaxClockSequence is the largest 14-bit clock sequence.
	MaxClockSequence = 1<<14 - 1
	// MaxCounter is the largest 12-bit v7 counter (rand_a).
	MaxCounter = 1<<12 - 1
	// MaxMillis is the largest 48-bit Unix millisecond timestamp.
	MaxMillis = 1<<48 - 1
	// MaxTail is the largest 62-bit v7 random tail (rand_b).
	MaxTail = 1<<62 - 1
)

// Node is the 48-bit spatial identifier carried by v1 and v6 identifiers.
type Node [6]byte

func (n Node) String() string {
	return hex.EncodeToString(n[:])
}

// ParseNode decodes 12 hex digits into a Node.
func ParseNode(s string) (Node, error) {
	var n Node
	if len(s) != 2*len(n) {
		return n, errs.NewFormatError(s, "48-bit node (12 hex digits)")
	}
	if _, err := hex.Decode(n[:], []byte(s)); err != nil {
		return Node{}, errs.NewFormatErrorWithCause(s, "48-bit node (12 hex digits)", err)
	}
	return n, nil
}

// TicksFromTime converts t to the 60-bit count of 100 ns intervals since 1582-10-15.
// Times outside the representable range wrap.
func TicksFromTime(t time.Time) uint64 {
	ticks := t.Unix()*ticksPerSecond + int64(t.Nanosecond()/100) + GregorianOffset
	return uint64(ticks) & MaxTicks
}

// TimeFromTicks is the inverse of TicksFromTime. Values before 1970 yield negative Unix times.
func TimeFromTicks(ticks uint64) time.Time {
	sinceUnix := int64(ticks&MaxTicks) - GregorianOffset
	sec := sinceUnix / ticksPerSecond
	rem := sinceUnix % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*100).UTC()
}

// NewV1FromFields lays out a v1 identifier: time_low, time_mid, version|time_high,
// variant|clock_seq, node.
func NewV1FromFields(ticks uint64, clockSeq uint16, node Node) UUID {
	var u UUID
	binary.BigEndian.PutUint32(u[0:4], uint32(ticks))
	binary.BigEndian.PutUint16(u[4:6], uint16(ticks>>32))
	binary.BigEndian.PutUint16(u[6:8], 0x1000|uint16(ticks>>48)&0x0fff)
	putClockAndNode(&u, clockSeq, node)
	return u
}

// NewV6FromFields lays out a v6 identifier: the 60-bit timestamp most significant bits
// first, so that byte order matches time order.
func NewV6FromFields(ticks uint64, clockSeq uint16, node Node) UUID {
	var u UUID
	putUint48(u[0:6], ticks>>12)
	binary.BigEndian.PutUint16(u[6:8], 0x6000|uint16(ticks)&0x0fff)
	putClockAndNode(&u, clockSeq, node)
	return u
}

// NewV7FromFields lays out a v7 identifier from a Unix millisecond timestamp, the 12-bit
// counter (rand_a) and the 62-bit random tail (rand_b). Excess high bits are discarded.
func NewV7FromFields(ms uint64, counter uint16, tail uint64) UUID {
	var u UUID
	putUint48(u[0:6], ms)
	binary.BigEndian.PutUint16(u[6:8], 0x7000|counter&MaxCounter)
	binary.BigEndian.PutUint64(u[8:16], 0x8000000000000000|tail&MaxTail)
	return u
}

func putClockAndNode(u *UUID, clockSeq uint16, node Node) {
	binary.BigEndian.PutUint16(u[8:10], 0x8000|clockSeq&MaxClockSequence)
	copy(u[10:16], node[:])
}

func putUint48(b []byte, v uint64) {
	_ = b[5]
	b[0] = byte(v >> 40)
	b[1] = byte(v >> 32)
	b[2] = byte(v >> 24)
	b[3] = byte(v >> 16)
	b[4] = byte(v >> 8)
	b[5] = byte(v)
}

func uint48(b []byte) uint64 {
	_ = b[5]
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

func (u UUID) isTimeBased() bool {
	k := u.Kind()
	return k == KindV1 || k == KindV6
}

// Ticks returns the 60-bit Gregorian timestamp of a v1 or v6 identifier.
func (u UUID) Ticks() (uint64, error) {
	switch u.Kind() {
	case KindV1:
		return uint64(binary.BigEndian.Uint16(u[6:8])&0x0fff)<<48 |
			uint64(binary.BigEndian.Uint16(u[4:6]))<<32 |
			uint64(binary.BigEndian.Uint32(u[0:4])), nil
	case KindV6:
		return uint48(u[0:6])<<12 | uint64(binary.BigEndian.Uint16(u[6:8])&0x0fff), nil
	default:
		return 0, u.missingField("a Gregorian timestamp")
	}
}

// Time returns the embedded timestamp: 100 ns resolution for v1 and v6, millisecond
// resolution for v7. Other kinds carry no time.
func (u UUID) Time() (time.Time, error) {
	switch u.Kind() {
	case KindV1, KindV6:
		ticks, _ := u.Ticks()
		return TimeFromTicks(ticks), nil
	case KindV7:
		return time.UnixMilli(int64(uint48(u[0:6]))).UTC(), nil
	default:
		return time.Time{}, u.missingField("a timestamp")
	}
}

// ClockSequence returns the 14-bit clock sequence of a v1 or v6 identifier.
func (u UUID) ClockSequence() (uint16, error) {
	if !u.isTimeBased() {
		return 0, u.missingField("a clock sequence")
	}
	return binary.BigEndian.Uint16(u[8:10]) & MaxClockSequence, nil
}

// Node returns the node of a v1 or v6 identifier as 12 lowercase hex digits.
func (u UUID) Node() (string, error) {
	n, err := u.NodeID()
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// NodeID returns the raw 48-bit node of a v1 or v6 identifier.
func (u UUID) NodeID() (Node, error) {
	var n Node
	if !u.isTimeBased() {
		return n, u.missingField("a node")
	}
	copy(n[:], u[10:16])
	return n, nil
}

// Counter returns the 12-bit rand_a field of a v7 identifier.
func (u UUID) Counter() (uint16, error) {
	if u.Kind() != KindV7 {
		return 0, u.missingField("a counter")
	}
	return binary.BigEndian.Uint16(u[6:8]) & MaxCounter, nil
}

func (u UUID) missingField(field string) error {
	return errs.NewInvalidArgumentError("uuid",
		fmt.Sprintf("%s identifier %s does not carry %s", u.Kind(), u.ToRFC4122(), field))
}
