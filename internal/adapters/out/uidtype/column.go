package uidtype

import (
	"context"
	"database/sql/driver"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"uidkit/internal/core/domain/model/uid"
)

// UUID is a column type for non-null identifiers.
//
// With database/sql it binds as RFC 4122 text whatever the column type; wrap it with Bind
// to write 16 raw bytes into BINARY(16) and BLOB columns. With GORM the bind value and the
// DDL follow the connection's dialect.
//
//	type IssuanceDTO struct {
//	    ID uidtype.UUID `gorm:"primaryKey"`
//	}
type UUID uid.UUID

// ULID is a column type for ULIDs. Storage is identical to UUID; only the type name differs.
type ULID uid.ULID

// NullUUID is a column type for nullable identifiers, in the manner of sql.NullString.
type NullUUID struct {
	UUID  uid.UUID
	Valid bool
}

// NewNullUUID wraps an optional identifier.
func NewNullUUID(id *uid.UUID) NullUUID {
	if id == nil {
		return NullUUID{}
	}
	return NullUUID{UUID: *id, Valid: true}
}

// Ptr returns nil for NULL and a pointer to a copy otherwise.
func (n NullUUID) Ptr() *uid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func (u UUID) ID() uid.UUID   { return uid.UUID(u) }
func (u UUID) String() string { return uid.UUID(u).String() }

func (u ULID) ID() uid.ULID   { return uid.ULID(u) }
func (u ULID) String() string { return uid.ULID(u).String() }

// Scan implements sql.Scanner. NULL leaves the zero identifier.
func (u *UUID) Scan(src any) error {
	id, _, err := FromDatabaseValue(src)
	if err != nil {
		return err
	}
	*u = UUID(id)
	return nil
}

// Value implements driver.Valuer with the RFC 4122 form.
func (u UUID) Value() (driver.Value, error) {
	return uid.UUID(u).ToRFC4122(), nil
}

func (UUID) GormDataType() string {
	return TypeNameUUID
}

func (UUID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dialectOf(db).SQLDeclaration()
}

func (u UUID) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	return bindExpr(DatabaseValue(uid.UUID(u), dialectOf(db)))
}

func (l *ULID) Scan(src any) error {
	id, _, err := FromDatabaseValue(src)
	if err != nil {
		return err
	}
	*l = ULID(id.ToULID())
	return nil
}

func (l ULID) Value() (driver.Value, error) {
	return uid.ULID(l).ToRFC4122(), nil
}

func (ULID) GormDataType() string {
	return TypeNameULID
}

func (ULID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dialectOf(db).SQLDeclaration()
}

func (l ULID) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	return bindExpr(DatabaseValue(uid.ULID(l).ToUUID(), dialectOf(db)))
}

func (n *NullUUID) Scan(src any) error {
	id, ok, err := FromDatabaseValue(src)
	if err != nil {
		return err
	}
	n.UUID, n.Valid = id, ok
	return nil
}

func (n NullUUID) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.UUID.ToRFC4122(), nil
}

func (NullUUID) GormDataType() string {
	return TypeNameUUID
}

func (NullUUID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dialectOf(db).SQLDeclaration()
}

func (n NullUUID) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	if !n.Valid {
		return bindExpr(nil)
	}
	return bindExpr(DatabaseValue(n.UUID, dialectOf(db)))
}

// Bound is an identifier paired with the dialect of the column it is written to. It is the
// database/sql counterpart of GormValue: Value binds the form the dialect stores.
//
//	db.ExecContext(ctx, `INSERT INTO identifiers (id) VALUES (?)`,
//	    uidtype.Bind(id, uidtype.DialectSQLite))
type Bound struct {
	ID      uid.UUID
	Valid   bool
	Dialect Dialect
}

// Bind pairs a non-null identifier with a dialect.
func Bind(id uid.UUID, d Dialect) Bound {
	return Bound{ID: id, Valid: true, Dialect: d}
}

// BindNull pairs an optional identifier with a dialect; nil binds NULL.
func BindNull(id *uid.UUID, d Dialect) Bound {
	if id == nil {
		return Bound{Dialect: d}
	}
	return Bind(*id, d)
}

func (b Bound) Value() (driver.Value, error) {
	if !b.Valid {
		return nil, nil
	}
	return DatabaseValue(b.ID, b.Dialect), nil
}

func dialectOf(db *gorm.DB) Dialect {
	if db == nil || db.Dialector == nil {
		return DialectText
	}
	return ParseDialect(db.Dialector.Name())
}

func bindExpr(v driver.Value) clause.Expr {
	return clause.Expr{SQL: "?", Vars: []any{v}}
}
