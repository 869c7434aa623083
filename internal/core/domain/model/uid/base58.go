package uid

import (
	"errors"

	"uidkit/internal/pkg/errs"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	errBase58Alphabet = errors.New("character outside the base58 alphabet")
	errBase58Overflow = errors.New("value exceeds 128 bits")
)

var base58Decode = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = 0xff
	}
	for i := 0; i < len(base58Alphabet); i++ {
		table[base58Alphabet[i]] = byte(i)
	}
	return table
}()

// encodeBase58 treats u as a 128-bit big-endian number and emits it in radix 58,
// most significant digit first, padded to base58Len.
func encodeBase58(u UUID) string {
	var out [base58Len]byte
	for i := range out {
		out[i] = base58Alphabet[0]
	}

	num := u
	start := 0
	for start < Size && num[start] == 0 {
		start++
	}

	for i := base58Len - 1; start < Size; i-- {
		var rem uint
		for j := start; j < Size; j++ {
			acc := rem<<8 | uint(num[j])
			num[j] = byte(acc / 58)
			rem = acc % 58
		}
		out[i] = base58Alphabet[rem]
		for start < Size && num[start] == 0 {
			start++
		}
	}

	return string(out[:])
}

func decodeBase58(s string) (UUID, error) {
	if len(s) != base58Len {
		return Nil, errs.NewFormatError(s, "base58 identifier")
	}

	var num UUID
	for i := 0; i < len(s); i++ {
		digit := base58Decode[s[i]]
		if digit == 0xff {
			return Nil, errs.NewFormatErrorWithCause(s, "base58 identifier", errBase58Alphabet)
		}

		carry := uint(digit)
		for j := Size - 1; j >= 0; j-- {
			acc := uint(num[j])*58 + carry
			num[j] = byte(acc)
			carry = acc >> 8
		}
		if carry != 0 {
			return Nil, errs.NewFormatErrorWithCause(s, "base58 identifier", errBase58Overflow)
		}
	}

	return num, nil
}
