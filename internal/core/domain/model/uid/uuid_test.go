package uid_test

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

func TestUUID_Kind(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uid.Kind
	}{
		{"nil", "00000000-0000-0000-0000-000000000000", uid.KindNil},
		{"max", "ffffffff-ffff-ffff-ffff-ffffffffffff", uid.KindMax},
		{"v1", "d9e7a184-5d5b-11ea-a62a-3499710062d0", uid.KindV1},
		{"v3", "8dac64d3-937a-3e7c-aa1d-d5d6c06a61f5", uid.KindV3},
		{"v4", "d6b3345b-2905-4048-a83c-b5988e765d98", uid.KindV4},
		{"v5", "851def0c-b9c7-55aa-a991-130e769ec0a9", uid.KindV5},
		{"v6", "1ea5d5bd-9e7a-6184-a62a-3499710062d0", uid.KindV6},
		{"v7", "017f22e2-79b0-7cc3-98c4-dc0c0c07398f", uid.KindV7},
		{"v8", "017f22e2-79b0-8cc3-98c4-dc0c0c07398f", uid.KindV8},
		{"non-RFC variant", "d6b3345b-2905-4048-283c-b5988e765d98", uid.KindGeneric},
		{"unknown version", "d6b3345b-2905-f048-a83c-b5988e765d98", uid.KindGeneric},
		{"DCE security version", "d6b3345b-2905-2048-a83c-b5988e765d98", uid.KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uid.MustParse(tt.input).Kind())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "v7", uid.KindV7.String())
	assert.Equal(t, "nil", uid.KindNil.String())
	assert.Equal(t, "generic", uid.KindGeneric.String())
	assert.Equal(t, 7, uid.KindV7.Version())
	assert.Equal(t, 0, uid.KindMax.Version())
}

func TestParseKindName(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		for _, k := range []uid.Kind{uid.KindNil, uid.KindMax, uid.KindV1, uid.KindV3, uid.KindV4,
			uid.KindV5, uid.KindV6, uid.KindV7, uid.KindV8} {
			got, err := uid.ParseKindName(k.String())
			require.NoError(t, err)
			assert.Equal(t, k, got)
		}
	})

	t.Run("bare digit", func(t *testing.T) {
		got, err := uid.ParseKindName("6")
		require.NoError(t, err)
		assert.Equal(t, uid.KindV6, got)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := uid.ParseKindName("v2")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrVersionIsInvalid))
	})
}

func TestUUID_Sentinels(t *testing.T) {
	assert.True(t, uid.Nil.IsNil())
	assert.False(t, uid.Nil.IsMax())
	assert.True(t, uid.Max.IsMax())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", uid.Nil.String())
	assert.Equal(t, "ffffffff-ffff-ffff-ffff-ffffffffffff", uid.Max.String())
}

func TestBinaryCodec(t *testing.T) {
	id := uid.MustParse("d6b3345b-2905-4048-a83c-b5988e765d98")

	t.Run("bytes round trip", func(t *testing.T) {
		b := id.Bytes()
		require.Len(t, b, 16)
		assert.Equal(t, byte(0xd6), b[0])
		assert.Equal(t, byte(0x98), b[15])

		back, err := uid.FromBinary(b)
		require.NoError(t, err)
		assert.Equal(t, id, back)
	})

	t.Run("bytes returns a copy", func(t *testing.T) {
		b := id.Bytes()
		b[0] = 0x00
		assert.Equal(t, byte(0xd6), id.Bytes()[0])
	})

	t.Run("wrong length", func(t *testing.T) {
		for _, n := range []int{0, 15, 17} {
			_, err := uid.FromBinary(make([]byte, n))
			require.Error(t, err)
			var formatErr *errs.FormatError
			assert.True(t, errors.As(err, &formatErr))
		}
	})

	t.Run("binary marshaler", func(t *testing.T) {
		data, err := id.MarshalBinary()
		require.NoError(t, err)

		var decoded uid.UUID
		require.NoError(t, decoded.UnmarshalBinary(data))
		assert.Equal(t, id, decoded)

		assert.Error(t, decoded.UnmarshalBinary([]byte("short")))
		assert.Equal(t, id, decoded)
	})
}

func TestUUID_Compare(t *testing.T) {
	a := uid.MustParse("017f22e2-79b0-7cc3-98c4-dc0c0c07398f")
	b := uid.MustParse("017f22e2-79b0-7cc3-98c4-dc0c0c073990")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Equal(uid.MustParse("017F22E2-79B0-7CC3-98C4-DC0C0C07398F")))
	assert.False(t, a.Equal(b))

	t.Run("unsigned byte order", func(t *testing.T) {
		low := uid.MustParse("7fffffff-ffff-4fff-bfff-ffffffffffff")
		high := uid.MustParse("80000000-0000-4000-8000-000000000000")
		assert.True(t, low.Less(high))
	})

	t.Run("sortable", func(t *testing.T) {
		ids := []uid.UUID{uid.Max, b, uid.Nil, a}
		sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
		assert.Equal(t, []uid.UUID{uid.Nil, a, b, uid.Max}, ids)
	})

	t.Run("sorts by trailing byte", func(t *testing.T) {
		ids := []uid.UUID{
			uid.MustParse("00000000-0000-0000-0000-00000000000b"),
			uid.MustParse("00000000-0000-0000-0000-00000000000a"),
			uid.MustParse("00000000-0000-0000-0000-00000000000d"),
			uid.MustParse("00000000-0000-0000-0000-00000000000c"),
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

		got := make([]string, 0, len(ids))
		for _, id := range ids {
			got = append(got, id.String())
		}
		assert.Equal(t, []string{
			"00000000-0000-0000-0000-00000000000a",
			"00000000-0000-0000-0000-00000000000b",
			"00000000-0000-0000-0000-00000000000c",
			"00000000-0000-0000-0000-00000000000d",
		}, got)
	})

	t.Run("total order over random identifiers", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		// few distinct byte values, so that equal values and long common prefixes occur
		alphabet := []byte{0x00, 0x01, 0x7f, 0x80, 0xff}
		random := func() uid.UUID {
			var id uid.UUID
			for i := range id {
				if i < 12 {
					id[i] = alphabet[r.Intn(2)]
				} else {
					id[i] = alphabet[r.Intn(len(alphabet))]
				}
			}
			return id
		}

		for i := 0; i < 2000; i++ {
			x, y, z := random(), random(), random()

			require.Equal(t, x.Compare(y), -y.Compare(x), "antisymmetry for %s and %s", x, y)
			require.Contains(t, []int{-1, 0, 1}, x.Compare(y))
			require.Equal(t, x.Compare(y) == 0, x.Equal(y), "totality for %s and %s", x, y)

			triple := []uid.UUID{x, y, z}
			r.Shuffle(len(triple), func(i, j int) { triple[i], triple[j] = triple[j], triple[i] })
			p, q, s := triple[0], triple[1], triple[2]
			if p.Compare(q) <= 0 && q.Compare(s) <= 0 {
				require.LessOrEqual(t, p.Compare(s), 0, "transitivity for %s, %s, %s", p, q, s)
			}
			if p.Compare(q) >= 0 && q.Compare(s) >= 0 {
				require.GreaterOrEqual(t, p.Compare(s), 0, "transitivity for %s, %s, %s", p, q, s)
			}
		}
	})
}

func TestUUID_Hash(t *testing.T) {
	a := uid.MustParse("d6b3345b-2905-4048-a83c-b5988e765d98")
	sameAsA := uid.MustParse("6PPCT5PA85814AGF5NK277CQCR")
	b := uid.MustParse("d6b3345b-2905-4048-a83c-b5988e765d99")

	assert.Equal(t, a.Hash(), sameAsA.Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), uid.MustParse(a.String()).Hash(), "stable for equal values")

	set := map[uid.UUID]struct{}{a: {}, sameAsA: {}, b: {}}
	assert.Len(t, set, 2)
}
