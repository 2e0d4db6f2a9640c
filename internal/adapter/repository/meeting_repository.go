package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/internal/domain/repositories"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// GetByID retrieves a meeting by ID. Missing records return (nil, nil).
func (r *MeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// List returns a page of meetings, newest first, plus the total count
func (r *MeetingRepository) List(ctx context.Context, limit, offset int) ([]entities.Meeting, int64, error) {
	var meetings []entities.Meeting
	var total int64

	if err := r.db.WithContext(ctx).Model(&entities.Meeting{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&meetings).Error; err != nil {
		return nil, 0, err
	}

	return meetings, total, nil
}

// Update saves meeting changes
func (r *MeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meeting.ID).
		Save(meeting).Error
}

// Delete removes a meeting
func (r *MeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id).Error
}
