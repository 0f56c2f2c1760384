package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/medrex/models"
)

func TestConnect(t *testing.T) {
	tests := []struct {
		name          string
		dsn           string
		debug         bool
		expectedError bool
	}{
		{
			name: "memory database",
			dsn:  ":memory:",
		},
		{
			name:  "memory database with debug logging",
			dsn:   ":memory:",
			debug: true,
		},
		{
			name: "file database with nested directory creation",
			dsn:  filepath.Join(t.TempDir(), "nested", "history.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, err := Connect(tt.dsn, tt.debug)
			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, gdb)

			// Migrations ran: both tables exist.
			assert.True(t, gdb.Migrator().HasTable(&models.Run{}))
			assert.True(t, gdb.Migrator().HasTable(&models.Hit{}))
		})
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("libsql://host.turso.io"))
	assert.True(t, isURL("https://host.turso.io"))
	assert.True(t, isURL("http://localhost:8080"))
	assert.False(t, isURL(":memory:"))
	assert.False(t, isURL("/tmp/history.db"))
	assert.False(t, isURL("history.db"))
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), 20, "must fit the varchar(20) column")
	assert.Contains(t, a, "run-")
}

func TestSaveRunAndHistory(t *testing.T) {
	gdb, err := Connect(":memory:", false)
	require.NoError(t, err)

	run := &models.Run{
		ID:          NewRunID(),
		Operation:   "extract",
		Source:      "stdin",
		RecordCount: 5,
	}
	hits := []models.Hit{
		{RecordIndex: 1, Pattern: "EMAIL", MatchedText: "a@b.io", StartOffset: 0, EndOffset: 6},
		{RecordIndex: 3, Pattern: "EMAIL", MatchedText: "c@d.io", StartOffset: 4, EndOffset: 10},
	}
	require.NoError(t, SaveRun(gdb, run, hits))

	assert.Equal(t, 2, run.MatchCount)
	require.NotNil(t, run.FinishedAt)

	runs, err := RecentRuns(gdb, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, 2, runs[0].MatchCount)

	loaded, err := RunHits(gdb, run.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].RecordIndex)
	assert.Equal(t, 3, loaded[1].RecordIndex)
	assert.Equal(t, run.ID, loaded[0].RunID)
}

func TestSaveRunWithoutHits(t *testing.T) {
	gdb, err := Connect(":memory:", false)
	require.NoError(t, err)

	run := &models.Run{ID: NewRunID(), Operation: "scan", Source: "notes/"}
	require.NoError(t, SaveRun(gdb, run, nil))
	assert.Equal(t, 0, run.MatchCount)

	hits, err := RunHits(gdb, run.ID)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRecentRunsLimit(t *testing.T) {
	gdb, err := Connect(":memory:", false)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		run := &models.Run{ID: NewRunID(), Operation: "extract", Source: "stdin"}
		require.NoError(t, SaveRun(gdb, run, nil))
	}

	runs, err := RecentRuns(gdb, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
