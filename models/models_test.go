package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Run{}, &Hit{}))
	return db
}

func TestRunTableName(t *testing.T) {
	run := Run{}
	assert.Equal(t, "runs", run.TableName())
}

func TestHitTableName(t *testing.T) {
	hit := Hit{}
	assert.Equal(t, "hits", hit.TableName())
}

func TestRunModel(t *testing.T) {
	db := setupTestDB(t)

	patterns, err := json.Marshal([]string{"EMAIL", "ICD10_CM"})
	require.NoError(t, err)

	run := Run{
		ID:          "run-0001",
		Operation:   "extract",
		Patterns:    datatypes.JSON(patterns),
		Source:      "notes.txt",
		RecordCount: 40,
		MatchCount:  3,
	}
	require.NoError(t, db.Create(&run).Error)

	var loaded Run
	require.NoError(t, db.First(&loaded, "id = ?", "run-0001").Error)
	assert.Equal(t, "extract", loaded.Operation)
	assert.Equal(t, 40, loaded.RecordCount)
	assert.False(t, loaded.StartedAt.IsZero())

	var names []string
	require.NoError(t, json.Unmarshal(loaded.Patterns, &names))
	assert.Equal(t, []string{"EMAIL", "ICD10_CM"}, names)
}

func TestHitModel(t *testing.T) {
	db := setupTestDB(t)

	run := Run{ID: "run-0002", Operation: "scan", Source: "notes/"}
	require.NoError(t, db.Create(&run).Error)

	groups, err := json.Marshal(map[string]string{"local": "info", "domain": "example.com"})
	require.NoError(t, err)

	hit := Hit{
		RunID:       run.ID,
		RecordIndex: 7,
		Source:      "notes/visit1.txt",
		Pattern:     "EMAIL",
		MatchedText: "info@example.com",
		StartOffset: 12,
		EndOffset:   28,
		Groups:      datatypes.JSON(groups),
	}
	require.NoError(t, db.Create(&hit).Error)

	var loaded Hit
	require.NoError(t, db.First(&loaded, "run_id = ?", run.ID).Error)
	assert.Equal(t, 7, loaded.RecordIndex)
	assert.Equal(t, "EMAIL", loaded.Pattern)
	assert.Equal(t, 12, loaded.StartOffset)
	assert.Equal(t, 28, loaded.EndOffset)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(loaded.Groups, &decoded))
	assert.Equal(t, "info", decoded["local"])
}

func TestRunHitsRelationship(t *testing.T) {
	db := setupTestDB(t)

	run := Run{ID: "run-0003", Operation: "extract", Source: "stdin"}
	require.NoError(t, db.Create(&run).Error)

	for i := 0; i < 3; i++ {
		hit := Hit{RunID: run.ID, RecordIndex: i, Pattern: "DIGIT", StartOffset: 0, EndOffset: 1}
		require.NoError(t, db.Create(&hit).Error)
	}

	var loaded Run
	require.NoError(t, db.Preload("Hits").First(&loaded, "id = ?", run.ID).Error)
	assert.Len(t, loaded.Hits, 3)
}

func TestRunFinishedAt(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	run := Run{ID: "run-0004", Operation: "extract", FinishedAt: &now}
	require.NoError(t, db.Create(&run).Error)

	var loaded Run
	require.NoError(t, db.First(&loaded, "id = ?", "run-0004").Error)
	require.NotNil(t, loaded.FinishedAt)
}
