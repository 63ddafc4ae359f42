package leads

import "time"

const (
	KindLead        = "lead"
	KindDemoRequest = "demo_request"

	DefaultSource = "contact-form"
)

type Lead struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);index;not null" json:"email"`
	Company   string    `gorm:"type:varchar(128)" json:"company"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	Source    string    `gorm:"type:varchar(64);index;not null" json:"source"`
	CreatedAt time.Time `json:"timestamp"`
}

func (Lead) TableName() string { return "leads" }

type DemoStatus string

const (
	DemoPending   DemoStatus = "pending"
	DemoScheduled DemoStatus = "scheduled"
	DemoCompleted DemoStatus = "completed"
)

func (s DemoStatus) Valid() bool {
	switch s {
	case DemoPending, DemoScheduled, DemoCompleted:
		return true
	}
	return false
}

type DemoRequest struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"type:varchar(128);not null" json:"name"`
	Email         string     `gorm:"type:varchar(255);index;not null" json:"email"`
	Company       string     `gorm:"type:varchar(128);not null" json:"company"`
	Phone         string     `gorm:"type:varchar(32);not null" json:"phone"`
	PreferredDate time.Time  `gorm:"not null" json:"preferred_date"`
	Message       string     `gorm:"type:text" json:"message"`
	Status        DemoStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	CreatedAt     time.Time  `json:"timestamp"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (DemoRequest) TableName() string { return "demo_requests" }
