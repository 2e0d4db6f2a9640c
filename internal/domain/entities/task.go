package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskItem represents a single action item extracted from a transcript.
// The integer ID is owned by the persistence layer sequence; during
// extraction IDs come from an in-process generator and are re-assigned
// on insert.
type TaskItem struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Text          string     `json:"text" gorm:"type:varchar(500);not null"`
	AssignedTo    *string    `json:"assigned_to,omitempty" gorm:"type:varchar(100)"`
	Deadline      *string    `json:"deadline,omitempty" gorm:"type:varchar(100)"`
	Priority      string     `json:"priority" gorm:"type:varchar(20);default:'low'"`
	ExtractedFrom string     `json:"extracted_from,omitempty" gorm:"type:text"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	MeetingID     *uuid.UUID `json:"meeting_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for TaskItem
func (TaskItem) TableName() string {
	return "task_items"
}

// TaskPriority constants
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// TaskStatus constants
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// ValidTaskStatus reports whether s is a known task status
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}
