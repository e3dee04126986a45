package models

import "time"

// SyncRun is one batch execution (poll, webhook burst, historical page set,
// outbound sweep) with its aggregate counters. One bad order never fails the
// run; it lands in ErrorCount and a SyncError row instead.
type SyncRun struct {
	ID           uint       `gorm:"primary_key" json:"id"`
	RunID        string     `gorm:"size:64;uniqueIndex" json:"run_id"`
	ConnectionID uint       `gorm:"index;not null" json:"connection_id"`
	RunType      string     `gorm:"size:20;not null" json:"run_type"`
	Status       string     `gorm:"size:20;not null" json:"status"`
	TriggeredBy  string     `gorm:"size:20" json:"triggered_by"`
	Fetched      int        `json:"fetched"`
	Processed    int        `json:"processed"`
	Created      int        `json:"created"`
	Skipped      int        `json:"skipped"`
	Errors       int        `json:"errors"`
	ResultsJSON  []byte     `gorm:"type:json" json:"results"`
	StartedAt    *time.Time `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
	DurationMs   int64      `json:"duration_ms"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type SyncError struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	SyncRunID   uint      `gorm:"index" json:"sync_run_id"`
	EntityType  string    `gorm:"size:50" json:"entity_type"`
	ExternalID  string    `gorm:"size:128" json:"external_id"`
	ErrorCode   string    `gorm:"size:64" json:"error_code"`
	Message     string    `gorm:"type:text" json:"message"`
	PayloadJSON []byte    `gorm:"type:json" json:"payload"`
	Retryable   bool      `gorm:"default:false" json:"retryable"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
