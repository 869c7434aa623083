package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/core/domain/services"
	"uidkit/internal/jobs"
)

type MockStatsSource struct{ mock.Mock }

func (m *MockStatsSource) Stats() services.GeneratorStats {
	return m.Called().Get(0).(services.GeneratorStats)
}

type MockIssuanceCounter struct{ mock.Mock }

func (m *MockIssuanceCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestGeneratorStatsJob_Run(t *testing.T) {
	ctx := t.Context()

	t.Run("should report totals and the delta since the last run", func(t *testing.T) {
		logger, buf := newLogger()
		source := new(MockStatsSource)
		source.On("Stats").Return(services.GeneratorStats{
			Generated: map[uid.Kind]uint64{uid.KindV7: 10},
			ULIDs:     2,
		}).Once()
		source.On("Stats").Return(services.GeneratorStats{
			Generated: map[uid.Kind]uint64{uid.KindV7: 15, uid.KindV4: 1},
			ULIDs:     2,
		}).Once()

		job := jobs.NewGeneratorStatsJob(source, "@every 1m", logger)
		job.Run(ctx)
		job.Run(ctx)

		logged := entries(t, buf)
		require.Len(t, logged, 2)
		assert.Equal(t, "INFO", logged[0]["level"])
		assert.Equal(t, "generator_stats_job", logged[0]["component"])
		assert.EqualValues(t, 12, logged[0]["total"])
		assert.EqualValues(t, 12, logged[0]["since_last_report"])
		assert.EqualValues(t, 18, logged[1]["total"])
		assert.EqualValues(t, 6, logged[1]["since_last_report"])
		assert.EqualValues(t, 15, logged[1]["v7"])
		assert.EqualValues(t, 1, logged[1]["v4"])
		source.AssertExpectations(t)
	})

	t.Run("should warn on new collisions only", func(t *testing.T) {
		logger, buf := newLogger()
		source := new(MockStatsSource)
		source.On("Stats").Return(services.GeneratorStats{Collisions: 1}).Twice()

		job := jobs.NewGeneratorStatsJob(source, "@every 1m", logger)
		job.Run(ctx)
		job.Run(ctx)

		logged := entries(t, buf)
		require.Len(t, logged, 2)
		assert.Equal(t, "WARN", logged[0]["level"])
		assert.Equal(t, "INFO", logged[1]["level"])
	})

	t.Run("should read a real generator", func(t *testing.T) {
		logger, buf := newLogger()
		generator := services.NewGenerator()
		generator.V7()
		generator.ULID()

		jobs.NewGeneratorStatsJob(generator, "@every 1m", logger).Run(ctx)

		logged := entries(t, buf)
		require.Len(t, logged, 1)
		assert.EqualValues(t, 2, logged[0]["total"])
	})
}

func TestIssuanceCountJob_Run(t *testing.T) {
	ctx := t.Context()

	t.Run("should log the registry size", func(t *testing.T) {
		logger, buf := newLogger()
		counter := new(MockIssuanceCounter)
		counter.On("Count", mock.Anything).Return(int64(42), nil).Once()

		jobs.NewIssuanceCountJob(counter, "@every 1m", logger).Run(ctx)

		logged := entries(t, buf)
		require.Len(t, logged, 1)
		assert.Equal(t, "issuance_count_job", logged[0]["component"])
		assert.EqualValues(t, 42, logged[0]["issuances"])
		counter.AssertExpectations(t)
	})

	t.Run("should log failures", func(t *testing.T) {
		logger, buf := newLogger()
		counter := new(MockIssuanceCounter)
		counter.On("Count", mock.Anything).Return(int64(0), errors.New("db down")).Once()

		jobs.NewIssuanceCountJob(counter, "@every 1m", logger).Run(ctx)

		logged := entries(t, buf)
		require.Len(t, logged, 1)
		assert.Equal(t, "ERROR", logged[0]["level"])
		assert.Equal(t, "db down", logged[0]["error"])
	})
}

func TestJobManager(t *testing.T) {
	t.Run("should start and stop both jobs", func(t *testing.T) {
		logger, buf := newLogger()
		jm := jobs.NewJobManager(new(MockStatsSource), new(MockIssuanceCounter), "@every 1h", logger)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		var messages []any
		for _, entry := range entries(t, buf) {
			messages = append(messages, entry["msg"])
		}
		assert.ElementsMatch(t, []any{
			"Generator stats job started",
			"Issuance count job started",
			"Issuance count job stopped",
			"Generator stats job stopped",
		}, messages)
	})

	t.Run("should reject an invalid schedule", func(t *testing.T) {
		logger, _ := newLogger()
		jm := jobs.NewJobManager(new(MockStatsSource), new(MockIssuanceCounter), "every minute", logger)

		err := jm.StartAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generator stats job")
	})
}
