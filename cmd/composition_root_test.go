package cmd_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"uidkit/cmd"
	httpadapter "uidkit/internal/adapters/in/http"
	"uidkit/internal/core/domain/model/uid"
)

// lazyDB opens a GORM handle without connecting; none of these tests touch the database.
func lazyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgresdriver.Open("host=127.0.0.1 port=1 user=u dbname=d sslmode=disable"),
		&gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestNewCompositionRoot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("should use the configured node", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(cmd.Config{Node: "0123456789ab", StatsSchedule: "@every 1m"}, lazyDB(t), logger)
		require.NoError(t, err)

		node, err := uid.ParseNode("0123456789ab")
		require.NoError(t, err)
		assert.Equal(t, node, root.Generator().Node())
		assert.NotNil(t, root.CreateJobManager())
	})

	t.Run("should reject a malformed node", func(t *testing.T) {
		_, err := cmd.NewCompositionRoot(cmd.Config{Node: "node"}, lazyDB(t), logger)
		assert.Error(t, err)
	})

	t.Run("should serve pure routes without the database", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(cmd.Config{}, lazyDB(t), logger)
		require.NoError(t, err)

		e := echo.New()
		httpadapter.RegisterHandlers(e, root.CreateHTTPServer())

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/api/v1/identifiers/d9e7a184-5d5b-11ea-a62a-3499710062d0/convert?to=v6", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "1ea5d5bd-9e7a-6184-a62a-3499710062d0")
	})
}
