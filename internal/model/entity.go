package model

import "time"

type IssueStatus string

const (
	IssueStatusPending    IssueStatus = "pending"
	IssueStatusInProgress IssueStatus = "in-progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusRejected   IssueStatus = "rejected"
)

// ValidStatus reports whether s is one of the four known status values.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case IssueStatusPending, IssueStatusInProgress, IssueStatusResolved, IssueStatusRejected:
		return true
	}
	return false
}

type Issue struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Category    string `gorm:"type:varchar(64);index;not null" json:"category"`
	Location    string `gorm:"type:varchar(255);not null" json:"location"`
	Description string `gorm:"type:text;not null" json:"description"`
	// Priority is stored as free-form text; callers conventionally send low/medium/high.
	Priority      string      `gorm:"type:varchar(32);index;not null" json:"priority"`
	Status        IssueStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	ReporterName  string      `gorm:"type:varchar(255)" json:"reporter_name,omitempty"`
	ReporterEmail string      `gorm:"type:varchar(255)" json:"reporter_email,omitempty"`
	ReporterPhone string      `gorm:"type:varchar(64)" json:"reporter_phone,omitempty"`
	ImagePath     string      `gorm:"type:varchar(255)" json:"image_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	IssueID uint64 `gorm:"index;not null" json:"issue_id"`
	Comment string `gorm:"type:text;not null" json:"comment"`
	Author  string `gorm:"type:varchar(255);not null" json:"author"`

	CreatedAt time.Time `json:"created_at"`
}

// StatusCounts is the aggregate served by GET /api/stats. Rejected issues
// count toward Total but have no field of their own.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}
