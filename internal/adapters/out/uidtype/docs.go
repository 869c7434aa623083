// Package uidtype converts identifiers to and from persisted scalars.
//
// Storage per dialect:
//
//	postgres         UUID        RFC 4122 text into the native type
//	mysql, mariadb   BINARY(16)  16 raw bytes
//	sqlite           BLOB        16 raw bytes
//	other            CHAR(36)    RFC 4122 text
//
// DatabaseValue and FromDatabaseValue are the dialect-aware conversions. The column types
// UUID, NullUUID and ULID plug them into database/sql (Scanner/Valuer) and into GORM
// (GormDataType, GormDBDataType, GormValue), so a DTO field declared as uidtype.UUID gets
// the right DDL and bind value on every backend GORM supports. Their plain Value methods
// know no dialect and always bind RFC 4122 text; statements written with database/sql
// against binary columns bind through Bind or BindNull instead.
package uidtype
