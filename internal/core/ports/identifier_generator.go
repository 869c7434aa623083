package ports

import (
	"uidkit/internal/core/domain/model/uid"
)

// IdentifierGenerator is the part of services.Generator the use cases depend on.
type IdentifierGenerator interface {
	Generate(kind uid.Kind, namespace *uid.UUID, name string) (uid.UUID, error)
	ULID() uid.ULID
}
