package uidtype

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/pkg/errs"
)

// Type names reported to GORM and to schema tooling.
const (
	TypeNameUUID = "uuid"
	TypeNameULID = "ulid"
)

// Dialect is the SQL backend family. It decides whether identifiers are stored as text in a
// native UUID column, as 16 raw bytes, or as RFC 4122 text in a character column.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectMariaDB  Dialect = "mariadb"
	DialectSQLite   Dialect = "sqlite"
	// DialectText is the fallback for backends without a binary or native type.
	DialectText Dialect = "text"
)

// ParseDialect maps a driver or GORM dialector name to a Dialect. Unknown names fall back
// to DialectText.
func ParseDialect(name string) Dialect {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pgx", "pq":
		return DialectPostgres
	case "mysql":
		return DialectMySQL
	case "mariadb":
		return DialectMariaDB
	case "sqlite", "sqlite3":
		return DialectSQLite
	default:
		return DialectText
	}
}

// HasNativeUUIDType reports whether the backend has a dedicated UUID column type.
func (d Dialect) HasNativeUUIDType() bool {
	return d == DialectPostgres
}

// IsBinary reports whether identifiers are stored as 16 raw bytes.
func (d Dialect) IsBinary() bool {
	switch d {
	case DialectMySQL, DialectMariaDB, DialectSQLite:
		return true
	default:
		return false
	}
}

// RequiresCommentHint reports whether schema tooling must mark the column with a comment so
// that reverse engineering maps it back to an identifier type: true whenever the column type
// alone does not say so.
func (d Dialect) RequiresCommentHint() bool {
	return !d.HasNativeUUIDType()
}

// SQLDeclaration returns the column type used to store an identifier.
func (d Dialect) SQLDeclaration() string {
	switch {
	case d.HasNativeUUIDType():
		return "UUID"
	case d == DialectSQLite:
		return "BLOB"
	case d.IsBinary():
		return "BINARY(16)"
	default:
		return "CHAR(36)"
	}
}

// DatabaseValue converts id to the scalar bound for the dialect: RFC 4122 text for native
// and text dialects, the 16-byte binary form otherwise.
func DatabaseValue(id uid.UUID, d Dialect) driver.Value {
	if d.IsBinary() {
		return id.Bytes()
	}
	return id.ToRFC4122()
}

// FromDatabaseValue converts a scanned scalar back to an identifier. A NULL yields ok=false.
// Byte slices of length 16 are read as binary, anything else as text in any encoding.
func FromDatabaseValue(src any) (id uid.UUID, ok bool, err error) {
	switch v := src.(type) {
	case nil:
		return uid.Nil, false, nil
	case []byte:
		if len(v) == uid.Size {
			id, err = uid.FromBinary(v)
		} else {
			id, err = uid.ParseEncoding(string(v), uid.EncodingBase32|uid.EncodingBase58|uid.EncodingRFC4122)
		}
	case string:
		id, err = uid.Parse(v)
	case uid.UUID:
		id = v
	case uid.ULID:
		id = v.ToUUID()
	default:
		return uid.Nil, false, errs.NewInvalidArgumentError("src",
			fmt.Sprintf("cannot convert %T to an identifier", src))
	}

	if err != nil {
		return uid.Nil, false, err
	}
	return id, true, nil
}
