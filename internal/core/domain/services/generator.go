package services

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

// Generator produces identifiers of every generated kind and owns the state time-based
// versions need: the node id, the v1/v6 clock sequence, the v7 counter and the monotonic
// ULID entropy. All state is guarded by a single mutex, so one Generator can be shared by
// any number of goroutines.
//
// Guarantees, per Generator:
//   - v1/v6: if the clock does not advance (or goes backwards) between two calls, the clock
//     sequence is incremented so (timestamp, clock sequence, node) never repeats until the
//     sequence wraps within a single tick. A wrap is logged and counted as a collision.
//   - v7: identifiers are strictly increasing. The 12-bit counter starts at a random value
//     below 2048 on each new millisecond and increments within it; when it is exhausted the
//     generator waits for the next millisecond. A clock that goes backwards is pinned to the
//     last millisecond used.
//   - ULID: strictly increasing, with the same pinning and waiting rules.
//
// A failure of the random source is unrecoverable and panics.
//
// Example usage:
//
//	gen := services.NewGenerator(services.WithLogger(logger))
//	id := gen.V7()
//	named, err := gen.Generate(uid.KindV5, &uid.NamespaceDNS, "example.com")
type Generator struct {
	mu sync.Mutex

	now    func() time.Time
	random io.Reader
	node   uid.Node
	logger *slog.Logger

	hasNode   bool
	lastTicks uint64
	clockSeq  uint16
	tickBumps int

	lastMillis uint64
	counter    uint16

	lastULIDMillis uint64
	ulidEntropy    *ulid.MonotonicEntropy

	stats GeneratorStats
}

// GeneratorStats is a snapshot of what a Generator has produced.
type GeneratorStats struct {
	Generated          map[uid.Kind]uint64
	ULIDs              uint64
	ClockSequenceBumps uint64
	ClockRegressions   uint64
	Collisions         uint64
	OverflowWaits      uint64
}

// Total is the number of identifiers of any kind.
func (s GeneratorStats) Total() uint64 {
	total := s.ULIDs
	for _, n := range s.Generated {
		total += n
	}
	return total
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithNode fixes the 48-bit node of v1/v6 identifiers. Without it a random node with the
// multicast bit set is used.
func WithNode(node uid.Node) GeneratorOption {
	return func(g *Generator) {
		g.node = node
		g.hasNode = true
	}
}

// WithRandom replaces crypto/rand as the source of random bits.
func WithRandom(r io.Reader) GeneratorOption {
	return func(g *Generator) {
		g.random = r
	}
}

func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator. The node and the initial clock sequence are drawn from
// the random source at construction.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		now:    time.Now,
		random: rand.Reader,
		logger: slog.Default(),
		stats: GeneratorStats{
			Generated: make(map[uid.Kind]uint64),
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "uid_generator")

	if !g.hasNode {
		g.readRandom(g.node[:])
		// multicast bit marks a random node (RFC 4122 section 4.5)
		g.node[0] |= 0x01
	}

	var seq [2]byte
	g.readRandom(seq[:])
	g.clockSeq = binary.BigEndian.Uint16(seq[:]) & uid.MaxClockSequence

	g.ulidEntropy = ulid.Monotonic(g.random, 0)

	return g
}

// Node returns the node embedded in v1 and v6 identifiers.
func (g *Generator) Node() uid.Node {
	return g.node
}

// V1 returns a time-based identifier with the Gregorian timestamp split low field first.
func (g *Generator) V1() uid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ticks, seq := g.nextTimeFields()
	g.stats.Generated[uid.KindV1]++
	return uid.NewV1FromFields(ticks, seq, g.node)
}

// V6 returns a time-based identifier that sorts by generation time.
func (g *Generator) V6() uid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ticks, seq := g.nextTimeFields()
	g.stats.Generated[uid.KindV6]++
	return uid.NewV6FromFields(ticks, seq, g.node)
}

// V3 derives a name-based identifier with MD5.
func (g *Generator) V3(namespace uid.UUID, name string) uid.UUID {
	g.count(uid.KindV3)
	return uid.NewV3(namespace, name)
}

// V5 derives a name-based identifier with SHA-1.
func (g *Generator) V5(namespace uid.UUID, name string) uid.UUID {
	g.count(uid.KindV5)
	return uid.NewV5(namespace, name)
}

// V4 returns 122 random bits.
func (g *Generator) V4() uid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uid.NewV4FromReader(g.random)
	if err != nil {
		panic(fmt.Errorf("uid generator: %w", err))
	}
	g.stats.Generated[uid.KindV4]++
	return id
}

// V7 returns a Unix-millisecond identifier, strictly greater than the previous one.
func (g *Generator) V7() uid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.pinnedMillis(g.lastMillis)
	switch {
	case ms > g.lastMillis:
		g.counter = g.seedCounter()
	case g.counter < uid.MaxCounter:
		g.counter++
	default:
		g.stats.OverflowWaits++
		ms = g.waitNextMillis(g.lastMillis)
		g.counter = g.seedCounter()
	}
	g.lastMillis = ms

	var tail [8]byte
	g.readRandom(tail[:])

	g.stats.Generated[uid.KindV7]++
	return uid.NewV7FromFields(ms, g.counter, binary.BigEndian.Uint64(tail[:]))
}

// ULID returns a monotonic ULID: within a millisecond the random part is incremented.
func (g *Generator) ULID() uid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.pinnedMillis(g.lastULIDMillis)
	id, err := ulid.New(ms, g.ulidEntropy)
	if errors.Is(err, ulid.ErrMonotonicOverflow) {
		g.stats.OverflowWaits++
		ms = g.waitNextMillis(ms)
		id, err = ulid.New(ms, g.ulidEntropy)
	}
	if err != nil {
		panic(fmt.Errorf("uid generator: generate ULID: %w", err))
	}
	g.lastULIDMillis = ms

	g.stats.ULIDs++
	return uid.ULID(id)
}

// Generate dispatches on kind. Name-based kinds require a namespace.
func (g *Generator) Generate(kind uid.Kind, namespace *uid.UUID, name string) (uid.UUID, error) {
	switch kind {
	case uid.KindV1:
		return g.V1(), nil
	case uid.KindV4:
		return g.V4(), nil
	case uid.KindV6:
		return g.V6(), nil
	case uid.KindV7:
		return g.V7(), nil
	case uid.KindV3, uid.KindV5:
		if namespace == nil {
			return uid.Nil, errs.NewValueIsRequiredError("namespace")
		}
		if kind == uid.KindV3 {
			return g.V3(*namespace, name), nil
		}
		return g.V5(*namespace, name), nil
	case uid.KindNil:
		return uid.Nil, nil
	case uid.KindMax:
		return uid.Max, nil
	default:
		return uid.Nil, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%s identifiers cannot be generated", kind))
	}
}

// Stats returns a copy of the generator counters.
func (g *Generator) Stats() GeneratorStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapshot := g.stats
	snapshot.Generated = make(map[uid.Kind]uint64, len(g.stats.Generated))
	for k, n := range g.stats.Generated {
		snapshot.Generated[k] = n
	}
	return snapshot
}

func (g *Generator) count(kind uid.Kind) {
	g.mu.Lock()
	g.stats.Generated[kind]++
	g.mu.Unlock()
}

// nextTimeFields must be called with g.mu held.
func (g *Generator) nextTimeFields() (uint64, uint16) {
	ticks := uid.TicksFromTime(g.now())

	if ticks > g.lastTicks {
		g.tickBumps = 0
	} else {
		if ticks < g.lastTicks {
			g.stats.ClockRegressions++
		}
		g.clockSeq = (g.clockSeq + 1) & uid.MaxClockSequence
		g.stats.ClockSequenceBumps++
		g.tickBumps++
		if g.tickBumps > uid.MaxClockSequence {
			g.stats.Collisions++
			g.logger.Warn("clock sequence wrapped within one tick, identifiers may repeat",
				"ticks", ticks, "clock_seq", g.clockSeq)
			g.tickBumps = 0
		}
	}
	g.lastTicks = ticks

	return ticks, g.clockSeq
}

// pinnedMillis returns the current Unix millisecond, never less than last.
func (g *Generator) pinnedMillis(last uint64) uint64 {
	ms := ulid.Timestamp(g.now())
	if ms < last {
		g.stats.ClockRegressions++
		return last
	}
	return ms
}

func (g *Generator) waitNextMillis(last uint64) uint64 {
	for {
		if ms := ulid.Timestamp(g.now()); ms > last {
			return ms
		}
		time.Sleep(time.Millisecond / 8)
	}
}

func (g *Generator) seedCounter() uint16 {
	var b [2]byte
	g.readRandom(b[:])
	return binary.BigEndian.Uint16(b[:]) & 0x07ff
}

func (g *Generator) readRandom(b []byte) {
	if _, err := io.ReadFull(g.random, b); err != nil {
		panic(fmt.Errorf("uid generator: read randomness: %w", err))
	}
}
