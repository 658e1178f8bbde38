package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
	"github.com/garyjia/memories-nativex/pkg/database"
)

func newTestRepo(t *testing.T) *ScanReportRepository {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{Path: filepath.Join(t.TempDir(), "reports.db")}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Migrate(context.Background()))

	return NewScanReportRepository(db, logger).(*ScanReportRepository)
}

func sampleReport(id string, started time.Time) *entity.ScanReport {
	report := &entity.ScanReport{
		ID:           id,
		StartedAt:    started,
		PendingCount: 3,
		DaysTotal:    2,
	}
	report.AddDay(entity.DayMatch{DayID: 1, Outcome: entity.DayOutcomeReconciled, MatchesA: []string{"a1"}, MatchesB: []string{}, Unmatched: 1})
	report.AddDay(entity.DayMatch{DayID: 2, Outcome: entity.DayOutcomeFailed, Unmatched: 1})
	report.Finish(started.Add(2 * time.Second))
	return report
}

func TestScanReportRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	started := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	report := sampleReport("scan-1", started)
	require.NoError(t, repo.Create(ctx, report))

	got, err := repo.GetByID(ctx, "scan-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, entity.ScanStatusPartial, got.Status)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, 3, got.PendingCount)
	assert.Equal(t, 1, got.MatchedA)
	assert.Equal(t, 1, got.DaysFailed)
	require.Len(t, got.Days, 2)
	assert.Equal(t, []string{"a1"}, got.Days[0].MatchesA)
	assert.Equal(t, []string{}, got.Days[1].MatchesA)
	assert.Equal(t, entity.DayOutcomeFailed, got.Days[1].Outcome)
}

func TestScanReportRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestScanReportRepository_DuplicateRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	started := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, sampleReport("scan-1", started)))
	assert.Error(t, repo.Create(ctx, sampleReport("scan-1", started)))

	got, err := repo.GetByID(ctx, "scan-1")
	require.NoError(t, err)
	assert.Len(t, got.Days, 2)
}

func TestScanReportRepository_ListRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "middle", "new"} {
		require.NoError(t, repo.Create(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Hour))))
	}

	reports, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "new", reports[0].ID)
	assert.Equal(t, "middle", reports[1].ID)
	assert.Empty(t, reports[0].Days)
}
