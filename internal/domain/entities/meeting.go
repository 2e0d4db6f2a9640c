package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting is the stored record for one processed transcript run
type Meeting struct {
	ID           uuid.UUID                        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title        string                           `json:"title" gorm:"type:varchar(255);not null"`
	Transcript   string                           `json:"transcript" gorm:"type:text"`
	Context      string                           `json:"context,omitempty" gorm:"type:text"`
	Summary      string                           `json:"summary,omitempty" gorm:"type:text"`
	ModelUsed    string                           `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	FallbackUsed bool                             `json:"fallback_used" gorm:"default:false"`
	Entities     datatypes.JSONType[EntityGroups] `json:"entities,omitempty" gorm:"type:jsonb"`
	Participants []string                         `json:"participants,omitempty" gorm:"type:jsonb;serializer:json"`
	SegmentCount int                              `json:"segment_count,omitempty"`
	Duration     int                              `json:"duration,omitempty"` // in seconds, when known from the recording
	CreatedAt    time.Time                        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting record
func NewMeeting(title string) *Meeting {
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
