package uid

import (
	"fmt"

	"uidkit/internal/pkg/errs"
)

const (
	nodeFoldMask = 1<<46 - 1
	subMilliBits = 14
)

// ToV6 reorders the timestamp of a v1 identifier so that it sorts by time. Clock sequence
// and node are preserved. A v6 identifier is returned unchanged.
func (u UUID) ToV6() (UUID, error) {
	switch u.Kind() {
	case KindV6:
		return u, nil
	case KindV1:
		ticks, cs, node := u.timeFields()
		return NewV6FromFields(ticks, cs, node), nil
	default:
		return Nil, u.conversionError(KindV6)
	}
}

// ToV1 is the inverse of ToV6. A v1 identifier is returned unchanged.
func (u UUID) ToV1() (UUID, error) {
	switch u.Kind() {
	case KindV1:
		return u, nil
	case KindV6:
		ticks, cs, node := u.timeFields()
		return NewV1FromFields(ticks, cs, node), nil
	default:
		return Nil, u.conversionError(KindV1)
	}
}

// ToV7 converts a v1 or v6 identifier to v7. The Unix millisecond becomes the v7 timestamp.
// The remaining 74 bits hold, most significant first, the 14-bit clock sequence, the node
// folded to 46 bits (its two top bits XORed into the two low ones) and the 14-bit
// sub-millisecond tick count. Identifiers one tick apart within a millisecond therefore
// differ by exactly 1 in their trailing bits and keep their order. A v7 identifier is
// returned unchanged.
func (u UUID) ToV7() (UUID, error) {
	switch u.Kind() {
	case KindV7:
		return u, nil
	case KindV1, KindV6:
	default:
		return Nil, u.conversionError(KindV7)
	}

	ticks, cs, node := u.timeFields()
	if ticks < GregorianOffset {
		return Nil, errs.NewInvalidArgumentError("uuid",
			"cannot convert UUID to v7: its timestamp is before the Unix epoch")
	}

	sinceUnix := ticks - GregorianOffset
	ms := sinceUnix / ticksPerMilli
	sub := sinceUnix % ticksPerMilli

	n := uint48(node[:])
	folded := n&nodeFoldMask ^ n>>46

	// rand_a takes the top 12 bits of the clock sequence, rand_b the rest.
	counter := cs >> 2
	tail := uint64(cs&0x3)<<60 | folded<<subMilliBits | sub

	return NewV7FromFields(ms, counter, tail), nil
}

func (u UUID) timeFields() (uint64, uint16, Node) {
	ticks, _ := u.Ticks()
	cs, _ := u.ClockSequence()
	node, _ := u.NodeID()
	return ticks, cs, node
}

func (u UUID) conversionError(target Kind) error {
	return errs.NewInvalidArgumentError("uuid",
		fmt.Sprintf("cannot convert %s identifier %s to %s", u.Kind(), u.ToRFC4122(), target))
}

// ConvertTo dispatches to ToV1, ToV6 or ToV7.
func (u UUID) ConvertTo(target Kind) (UUID, error) {
	switch target {
	case KindV1:
		return u.ToV1()
	case KindV6:
		return u.ToV6()
	case KindV7:
		return u.ToV7()
	default:
		return Nil, errs.NewVersionIsInvalidErrorWithCause("to",
			fmt.Errorf("conversion to %s is not supported", target))
	}
}
