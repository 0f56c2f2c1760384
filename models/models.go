package models

import (
	"time"

	"gorm.io/datatypes"
)

// Run represents one extract or scan invocation recorded for history.
type Run struct {
	ID        string `gorm:"primaryKey;type:varchar(20)"`
	Operation string `gorm:"type:varchar(20);not null"` // extract, scan

	// Patterns applied, in precedence order
	Patterns datatypes.JSON `gorm:"type:jsonb"`

	// Input shape
	Source      string `gorm:"type:varchar(512)"` // file path, directory, or "stdin"
	RecordCount int    `gorm:"default:0"`
	MatchCount  int    `gorm:"default:0"`

	// Client info (hostname, CLI version)
	ClientInfo datatypes.JSON `gorm:"type:jsonb"`

	StartedAt  time.Time `gorm:"autoCreateTime"`
	FinishedAt *time.Time

	// Relationships
	Hits []Hit `gorm:"foreignKey:RunID"`
}

// Hit is a single matched record within a run.
type Hit struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	RunID string `gorm:"type:varchar(20);index;not null"`

	// Record identity
	RecordIndex int    `gorm:"not null"`
	Source      string `gorm:"type:varchar(512)"` // file the record came from, if any

	// Match details
	Pattern     string         `gorm:"type:varchar(64);not null"`
	MatchedText string         `gorm:"type:text"`
	StartOffset int            `gorm:"not null"`
	EndOffset   int            `gorm:"not null"`
	Groups      datatypes.JSON `gorm:"type:jsonb"` // named capture groups

	CreatedAt time.Time `gorm:"autoCreateTime"`

	// Relationship
	Run Run `gorm:"foreignKey:RunID"`
}

// TableName customizations for cleaner names
func (Run) TableName() string { return "runs" }
func (Hit) TableName() string { return "hits" }
