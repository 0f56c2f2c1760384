package db

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oxhq/medrex/models"
)

// NewRunID returns a short random identifier for a Run.
func NewRunID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a timestamp-derived ID; collisions are acceptable
		// for a local history table.
		return fmt.Sprintf("run-%d", time.Now().UnixNano()%1e12)
	}
	return "run-" + hex.EncodeToString(buf)[:12]
}

// SaveRun persists a run and its hits in one transaction. The run's
// FinishedAt and MatchCount are filled in here.
func SaveRun(gdb *gorm.DB, run *models.Run, hits []models.Hit) error {
	now := time.Now()
	run.FinishedAt = &now
	run.MatchCount = len(hits)

	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		for i := range hits {
			hits[i].RunID = run.ID
		}
		if len(hits) > 0 {
			if err := tx.Create(&hits).Error; err != nil {
				return fmt.Errorf("saving hits: %w", err)
			}
		}
		return nil
	})
}

// RecentRuns returns up to limit runs, newest first.
func RecentRuns(gdb *gorm.DB, limit int) ([]models.Run, error) {
	var runs []models.Run
	err := gdb.Order("started_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// RunHits returns the hits recorded for a run, in record order.
func RunHits(gdb *gorm.DB, runID string) ([]models.Hit, error) {
	var hits []models.Hit
	err := gdb.Where("run_id = ?", runID).
		Order("record_index ASC, start_offset ASC").
		Find(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("listing hits for run %s: %w", runID, err)
	}
	return hits, nil
}
