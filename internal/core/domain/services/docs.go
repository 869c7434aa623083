// Package services provides domain services holding state that no single identifier
// value can own.
//
// The package includes:
//   - Generator: produces v1, v3, v4, v5, v6 and v7 identifiers and ULIDs, tracking the node
//     id, the clock sequence, the v7 counter and the monotonic ULID entropy.
//
// Codecs, accessors and conversions are pure and live in the uid model package.
package services
