package notify

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job tracks one sales notification for a stored lead or demo request.
type Job struct {
	ID string `gorm:"primaryKey;size:26" json:"id"` // ULID length

	Kind     string `gorm:"type:varchar(32);index;not null" json:"kind"`
	RecordID uint64 `gorm:"index;not null" json:"record_id"`

	Status   JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	Attempts int       `gorm:"not null;default:0" json:"attempts"`

	// Filled when failed
	Error *string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "notification_jobs" }
