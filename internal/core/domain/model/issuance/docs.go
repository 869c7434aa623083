// Package issuance provides the Issuance aggregate: the registry record kept for every
// identifier the service hands out.
//
// The package includes:
//   - Issuance: identifier, scheme, issue time and, for name-based schemes, namespace and name
//   - Scheme: the generation algorithms the service offers (v1, v3, v4, v5, v6, v7, ulid)
//
// Records are immutable once created; the registry only ever adds and lists them.
package issuance
