package http

import (
	"time"

	"uidkit/internal/core/application/usecases/commands"
	"uidkit/internal/core/application/usecases/queries"
	"uidkit/internal/core/domain/model/uid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewIdentifiers is the body of POST /api/v1/identifiers.
type NewIdentifiers struct {
	Version   string `json:"version"`
	Count     *int   `json:"count,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name,omitempty"`
	Format    string `json:"format,omitempty"`
}

type Identifier struct {
	ID       uid.UUID  `json:"id"`
	Value    string    `json:"value"`
	Version  string    `json:"version"`
	IssuedAt time.Time `json:"issued_at"`
}

type Identifiers struct {
	Identifiers []Identifier `json:"identifiers"`
}

type Issuance struct {
	ID        uid.UUID  `json:"id"`
	Value     string    `json:"value"`
	Version   string    `json:"version"`
	IssuedAt  time.Time `json:"issued_at"`
	Namespace *uid.UUID `json:"namespace,omitempty"`
	Name      string    `json:"name,omitempty"`
}

type Issuances struct {
	Issuances []Issuance `json:"issuances"`
}

type Inspection struct {
	Kind          string     `json:"kind"`
	Version       int        `json:"version,omitempty"`
	InputEncoding string     `json:"input_encoding"`
	RFC4122       string     `json:"rfc4122"`
	Base32        string     `json:"base32"`
	Base58        string     `json:"base58"`
	Hex           string     `json:"hex"`
	Time          *time.Time `json:"time,omitempty"`
	Node          string     `json:"node,omitempty"`
	ClockSequence *uint16    `json:"clock_sequence,omitempty"`
	Counter       *uint16    `json:"counter,omitempty"`
	Issuance      *Issuance  `json:"issuance,omitempty"`
}

type Conversion struct {
	Source     uid.UUID `json:"source"`
	SourceKind string   `json:"source_kind"`
	Target     uid.UUID `json:"target"`
	TargetKind string   `json:"target_kind"`
	RFC4122    string   `json:"rfc4122"`
	Base32     string   `json:"base32"`
	Base58     string   `json:"base58"`
}

func toIdentifiers(generated []commands.GeneratedIdentifier) Identifiers {
	out := Identifiers{Identifiers: make([]Identifier, len(generated))}
	for i, g := range generated {
		out.Identifiers[i] = Identifier{
			ID:       g.ID,
			Value:    g.Value,
			Version:  g.Scheme.String(),
			IssuedAt: g.IssuedAt,
		}
	}
	return out
}

func toIssuance(r queries.IssuanceRecord) Issuance {
	return Issuance{
		ID:        r.ID,
		Value:     r.Value,
		Version:   r.Scheme.String(),
		IssuedAt:  r.IssuedAt,
		Namespace: r.Namespace,
		Name:      r.Name,
	}
}

func toIssuances(records []queries.IssuanceRecord) Issuances {
	out := Issuances{Issuances: make([]Issuance, len(records))}
	for i, r := range records {
		out.Issuances[i] = toIssuance(r)
	}
	return out
}

func toInspection(info queries.InspectIdentifierQueryResponse) Inspection {
	out := Inspection{
		Kind:          info.Kind.String(),
		Version:       info.Version,
		InputEncoding: info.InputEncoding.String(),
		RFC4122:       info.RFC4122,
		Base32:        info.Base32,
		Base58:        info.Base58,
		Hex:           info.Hex,
		Time:          info.Time,
		Node:          info.Node,
		ClockSequence: info.ClockSequence,
		Counter:       info.Counter,
	}
	if info.Issuance != nil {
		issuance := toIssuance(*info.Issuance)
		out.Issuance = &issuance
	}
	return out
}

func toConversion(res queries.ConvertIdentifierQueryResponse) Conversion {
	return Conversion{
		Source:     res.Source,
		SourceKind: res.SourceKind.String(),
		Target:     res.Target,
		TargetKind: res.TargetKind.String(),
		RFC4122:    res.RFC4122,
		Base32:     res.Base32,
		Base58:     res.Base58,
	}
}
