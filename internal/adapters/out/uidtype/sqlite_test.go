package uidtype_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"uidkit/internal/adapters/out/uidtype"
	"uidkit/internal/core/domain/model/uid"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE identifiers (
		id ` + uidtype.DialectSQLite.SQLDeclaration() + ` PRIMARY KEY,
		parent ` + uidtype.DialectSQLite.SQLDeclaration() + `,
		label TEXT NOT NULL
	)`)
	require.NoError(t, err)
	return db
}

func TestSQLite_BinaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	id := uid.MustParse("017f22e2-79b0-7cc3-98c4-dc0c0c07398f")
	parent := uid.MustParse(rfcValue)

	_, err := db.ExecContext(ctx, `INSERT INTO identifiers (id, parent, label) VALUES (?, ?, ?)`,
		uidtype.Bind(id, uidtype.DialectSQLite),
		uidtype.BindNull(&parent, uidtype.DialectSQLite),
		"child")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO identifiers (id, parent, label) VALUES (?, ?, ?)`,
		uidtype.Bind(parent, uidtype.DialectSQLite), uidtype.BindNull(nil, uidtype.DialectSQLite), "root")
	require.NoError(t, err)

	t.Run("stored as 16 bytes", func(t *testing.T) {
		var (
			length     int
			kind       string
			parentKind string
		)
		err := db.QueryRowContext(ctx,
			`SELECT length(id), typeof(id), typeof(parent) FROM identifiers WHERE label = 'child'`).
			Scan(&length, &kind, &parentKind)
		require.NoError(t, err)
		assert.Equal(t, 16, length)
		assert.Equal(t, "blob", kind)
		assert.Equal(t, "blob", parentKind)
	})

	t.Run("scan into column types", func(t *testing.T) {
		var (
			gotID     uidtype.UUID
			gotParent uidtype.NullUUID
		)
		err := db.QueryRowContext(ctx, `SELECT id, parent FROM identifiers WHERE label = 'child'`).
			Scan(&gotID, &gotParent)
		require.NoError(t, err)
		assert.Equal(t, id, gotID.ID())
		assert.True(t, gotParent.Valid)
		assert.Equal(t, parent, gotParent.UUID)
	})

	t.Run("NULL parent", func(t *testing.T) {
		var gotParent uidtype.NullUUID
		err := db.QueryRowContext(ctx, `SELECT parent FROM identifiers WHERE label = 'root'`).Scan(&gotParent)
		require.NoError(t, err)
		assert.False(t, gotParent.Valid)
	})

	t.Run("lookup by binary key", func(t *testing.T) {
		var label string
		err := db.QueryRowContext(ctx, `SELECT label FROM identifiers WHERE id = ?`,
			uidtype.DatabaseValue(parent, uidtype.DialectSQLite)).Scan(&label)
		require.NoError(t, err)
		assert.Equal(t, "root", label)
	})

	t.Run("binary order follows identifier order", func(t *testing.T) {
		rows, err := db.QueryContext(ctx, `SELECT id FROM identifiers ORDER BY id`)
		require.NoError(t, err)
		defer rows.Close()

		var got []uid.UUID
		for rows.Next() {
			var col uidtype.UUID
			require.NoError(t, rows.Scan(&col))
			got = append(got, col.ID())
		}
		require.NoError(t, rows.Err())

		// 0x01739b77... < 0x017f22e2...
		assert.Equal(t, []uid.UUID{parent, id}, got)
	})
}

func TestSQLite_TextColumn(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	_, err := db.ExecContext(ctx, `CREATE TABLE legacy (id `+uidtype.DialectText.SQLDeclaration()+`)`)
	require.NoError(t, err)

	id := uid.MustParse(rfcValue)
	_, err = db.ExecContext(ctx, `INSERT INTO legacy (id) VALUES (?)`, uidtype.UUID(id))
	require.NoError(t, err)

	var raw string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT id FROM legacy`).Scan(&raw))
	assert.Equal(t, rfcValue, raw)

	var col uidtype.UUID
	require.NoError(t, db.QueryRowContext(ctx, `SELECT id FROM legacy`).Scan(&col))
	assert.Equal(t, id, col.ID())
}

func TestSQLite_ColumnTypeBindsTextIntoBlob(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	id := uid.MustParse(rfcValue)
	_, err := db.ExecContext(ctx, `INSERT INTO identifiers (id, parent, label) VALUES (?, ?, ?)`,
		uidtype.UUID(id), uidtype.NewNullUUID(nil), "text")
	require.NoError(t, err)

	var (
		kind   string
		length int
	)
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT typeof(id), length(id) FROM identifiers WHERE label = 'text'`).Scan(&kind, &length))
	assert.Equal(t, "text", kind, "without a dialect the column type binds RFC 4122 text")
	assert.Equal(t, 36, length)

	var col uidtype.UUID
	require.NoError(t, db.QueryRowContext(ctx, `SELECT id FROM identifiers WHERE label = 'text'`).Scan(&col))
	assert.Equal(t, id, col.ID())

	t.Run("binary lookup misses the text row", func(t *testing.T) {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM identifiers WHERE id = ?`,
			uidtype.Bind(id, uidtype.DialectSQLite)).Scan(&n))
		assert.Zero(t, n)
	})
}
