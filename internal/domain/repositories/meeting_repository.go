package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

// MeetingRepository handles meeting persistence
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	List(ctx context.Context, limit, offset int) ([]entities.Meeting, int64, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
}
