package uid_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

func TestUUID_Time(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSec int64
		wantNs  int
	}{
		{"v1", "d9e7a184-5d5b-11ea-a62a-3499710062d0", 1583245966, 746458000},
		{"v1 later", "8189d3de-9670-11ee-b9d1-0242ac120002", 1702112044, 886115000},
		{"v1 Gregorian epoch", "00000000-0000-1000-a456-426655440000", -12219292800, 0},
		{"v1 largest timestamp", "ffffffff-ffff-1fff-a456-426655440000", 103072857660, 684697500},
		{"v1 one tick before Unix epoch", "13813ff6-1dd2-11b2-a456-426655440000", -1, 999999000},
		{"v1 ten ticks after Unix epoch", "1381400a-1dd2-11b2-a456-426655440000", 0, 1000},
		{"v1 in 1969", "9aba8000-ff00-11b0-b3db-3b3fc83afdfc", -31536000, 0},
		{"v6", "1ea5d5bd-9e7a-6184-a62a-3499710062d0", 1583245966, 746458000},
		{"v6 far future", "d9e7a184-5d5b-61ea-a62a-3499710062d0", 85916308548, 278321000},
		{"v7", "017f22e2-79b0-7cc3-98c4-dc0c0c07398f", 1645557742, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uid.MustParse(tt.input).Time()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSec, got.Unix())
			assert.Equal(t, tt.wantNs, got.Nanosecond())
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestUUID_AccessorsRejectOtherKinds(t *testing.T) {
	v4 := uid.MustParse("d6b3345b-2905-4048-a83c-b5988e765d98")
	v7 := uid.MustParse("017f22e2-79b0-7cc3-98c4-dc0c0c07398f")
	v1 := uid.MustParse("d9e7a184-5d5b-11ea-a62a-3499710062d0")

	checks := map[string]error{}
	_, checks["time of v4"] = v4.Time()
	_, checks["time of nil"] = uid.Nil.Time()
	_, checks["ticks of v7"] = v7.Ticks()
	_, checks["clock sequence of v7"] = v7.ClockSequence()
	_, checks["node of v4"] = v4.Node()
	_, checks["counter of v1"] = v1.Counter()

	for name, err := range checks {
		t.Run(name, func(t *testing.T) {
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
		})
	}
}

func TestUUID_V1Fields(t *testing.T) {
	id := uid.MustParse("d9e7a184-5d5b-11ea-a62a-3499710062d0")

	ticks, err := id.Ticks()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1ea5d5bd9e7a184), ticks)

	cs, err := id.ClockSequence()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x262a), cs)

	node, err := id.Node()
	require.NoError(t, err)
	assert.Equal(t, "3499710062d0", node)
}

func TestUUID_V7Counter(t *testing.T) {
	counter, err := uid.MustParse("017f22e2-79b0-7cc3-98c4-dc0c0c07398f").Counter()
	require.NoError(t, err)
	assert.Equal(t, uint16(3267), counter)
}

func TestBuilders(t *testing.T) {
	node, err := uid.ParseNode("3499710062d0")
	require.NoError(t, err)

	t.Run("v1", func(t *testing.T) {
		id := uid.NewV1FromFields(0x1ea5d5bd9e7a184, 0x262a, node)
		assert.Equal(t, "d9e7a184-5d5b-11ea-a62a-3499710062d0", id.String())
	})

	t.Run("v6", func(t *testing.T) {
		id := uid.NewV6FromFields(0x1ea5d5bd9e7a184, 0x262a, node)
		assert.Equal(t, "1ea5d5bd-9e7a-6184-a62a-3499710062d0", id.String())
	})

	t.Run("v7", func(t *testing.T) {
		id := uid.NewV7FromFields(1645557742000, 3267, 0x18c4dc0c0c07398f)
		assert.Equal(t, "017f22e2-79b0-7cc3-98c4-dc0c0c07398f", id.String())
	})

	t.Run("excess bits are masked", func(t *testing.T) {
		id := uid.NewV7FromFields(0, 0xffff, ^uint64(0))
		assert.Equal(t, uid.KindV7, id.Kind())
		counter, err := id.Counter()
		require.NoError(t, err)
		assert.Equal(t, uint16(uid.MaxCounter), counter)

		v1 := uid.NewV1FromFields(^uint64(0), 0xffff, node)
		assert.Equal(t, uid.KindV1, v1.Kind())
		cs, err := v1.ClockSequence()
		require.NoError(t, err)
		assert.Equal(t, uint16(uid.MaxClockSequence), cs)
	})
}

func TestTicks(t *testing.T) {
	t.Run("Unix epoch", func(t *testing.T) {
		assert.Equal(t, uint64(uid.GregorianOffset), uid.TicksFromTime(time.Unix(0, 0)))
	})

	t.Run("round trip at tick resolution", func(t *testing.T) {
		at := time.Date(2020, 3, 3, 14, 32, 46, 746458300, time.UTC)
		assert.True(t, at.Equal(uid.TimeFromTicks(uid.TicksFromTime(at))))
	})

	t.Run("sub-tick precision is truncated", func(t *testing.T) {
		at := time.Unix(10, 199)
		assert.Equal(t, time.Unix(10, 100).UTC(), uid.TimeFromTicks(uid.TicksFromTime(at)))
	})

	t.Run("before Unix epoch", func(t *testing.T) {
		assert.Equal(t, int64(-12219292800), uid.TimeFromTicks(0).Unix())
	})
}

func TestParseNode(t *testing.T) {
	node, err := uid.ParseNode("0242AC120002")
	require.NoError(t, err)
	assert.Equal(t, "0242ac120002", node.String())

	for _, s := range []string{"", "0242ac12000", "0242ac1200zz", "0242ac12000200"} {
		_, err := uid.ParseNode(s)
		assert.True(t, errors.Is(err, errs.ErrInvalidFormat), s)
	}
}
