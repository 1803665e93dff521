package model

import "time"

const (
	RunCompleted = "completed"
	RunError     = "error"
)

// UploadRun records one submission to the scoring service. It never holds
// student data, only what was sent and how it went.
type UploadRun struct {
	ID        string `gorm:"primaryKey"`
	Mode      string
	Status    string `gorm:"index"`
	Files     string
	Total     int
	High      int
	Medium    int
	Low       int
	Error     string
	StartTime time.Time
	EndTime   time.Time
}
