package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/firejune/notion-github-embed/internal/models"
)

func setupTestDB(t *testing.T) *DatabaseService {
	t.Helper()
	ctx := context.Background()
	s, err := NewDatabaseService(ctx, ":memory:", zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema(ctx))
	return s
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		url, driver, dsn string
	}{
		{"postgres://u:p@localhost:5432/db", "postgres", "postgres://u:p@localhost:5432/db"},
		{"sqlite3:///tmp/snap.db", "sqlite3", "/tmp/snap.db"},
		{"file:snap.db?cache=shared", "sqlite3", "file:snap.db?cache=shared"},
		{":memory:", "sqlite3", ":memory:"},
	}
	for _, tt := range tests {
		driver, dsn := DriverFor(tt.url)
		assert.Equal(t, tt.driver, driver, tt.url)
		assert.Equal(t, tt.dsn, dsn, tt.url)
	}
}

func TestSaveAndGetContributions(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	records := []models.ContributionRecord{
		{Date: "2024-03-16", Count: 2, Intensity: 1},
		{Date: "2024-03-15", Count: 5, Intensity: 2},
		{Date: "2024-03-15", Count: 99, Intensity: 4}, // duplicate, dropped
	}
	require.NoError(t, s.SaveContributions(ctx, "Octocat", records))

	got, err := s.GetContributions(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, []models.ContributionRecord{
		{Date: "2024-03-15", Count: 5, Intensity: 2},
		{Date: "2024-03-16", Count: 2, Intensity: 1},
	}, got)
}

func TestSaveContributions_Replaces(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveContributions(ctx, "octocat", []models.ContributionRecord{{Date: "2024-01-01", Count: 1, Intensity: 1}}))
	require.NoError(t, s.SaveContributions(ctx, "octocat", []models.ContributionRecord{{Date: "2024-02-02", Count: 3, Intensity: 2}}))

	got, err := s.GetContributions(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, []models.ContributionRecord{{Date: "2024-02-02", Count: 3, Intensity: 2}}, got)
}

func TestSaveContributions_BadDateRollsBack(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveContributions(ctx, "octocat", []models.ContributionRecord{{Date: "2024-01-01", Count: 1, Intensity: 1}}))
	err := s.SaveContributions(ctx, "octocat", []models.ContributionRecord{{Date: "yesterday", Count: 1}})
	require.Error(t, err)

	got, err := s.GetContributions(ctx, "octocat")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetContributions_NotFound(t *testing.T) {
	s := setupTestDB(t)
	_, err := s.GetContributions(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://user:***@db:5432/x", redact("postgres://user:secret@db:5432/x"))
	assert.Equal(t, ":memory:", redact(":memory:"))
}

func TestPing(t *testing.T) {
	s := setupTestDB(t)
	assert.NoError(t, s.Ping(context.Background()))
}
