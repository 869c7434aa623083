package issuance

import (
	"fmt"
	"strings"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

// Scheme names the generation algorithm an identifier was issued with.
type Scheme string

const (
	SchemeV1   Scheme = "v1"
	SchemeV3   Scheme = "v3"
	SchemeV4   Scheme = "v4"
	SchemeV5   Scheme = "v5"
	SchemeV6   Scheme = "v6"
	SchemeV7   Scheme = "v7"
	SchemeULID Scheme = "ulid"
)

var schemeKinds = map[Scheme]uid.Kind{
	SchemeV1: uid.KindV1,
	SchemeV3: uid.KindV3,
	SchemeV4: uid.KindV4,
	SchemeV5: uid.KindV5,
	SchemeV6: uid.KindV6,
	SchemeV7: uid.KindV7,
}

// ParseScheme accepts the scheme names case-insensitively; an empty string selects v7.
func ParseScheme(s string) (Scheme, error) {
	if s == "" {
		return SchemeV7, nil
	}
	scheme := Scheme(strings.ToLower(s))
	if !scheme.IsValid() {
		return "", errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%q cannot be generated, expected one of v1, v3, v4, v5, v6, v7, ulid", s))
	}
	return scheme, nil
}

func (s Scheme) String() string {
	return string(s)
}

func (s Scheme) IsValid() bool {
	if s == SchemeULID {
		return true
	}
	_, ok := schemeKinds[s]
	return ok
}

// IsNameBased reports whether identifiers of this scheme are derived from a namespace and a name.
func (s Scheme) IsNameBased() bool {
	return s == SchemeV3 || s == SchemeV5
}

// IsTimeOrdered reports whether byte order of the identifiers follows issue order.
func (s Scheme) IsTimeOrdered() bool {
	return s == SchemeV6 || s == SchemeV7 || s == SchemeULID
}

// Kind returns the UUID kind of the scheme; ok is false for ULID.
func (s Scheme) Kind() (uid.Kind, bool) {
	k, ok := schemeKinds[s]
	return k, ok
}
