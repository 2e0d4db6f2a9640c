package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

// TaskRepository handles task item persistence
type TaskRepository interface {
	CreateBatch(ctx context.Context, tasks []*entities.TaskItem) error
	GetByID(ctx context.Context, id int64) (*entities.TaskItem, error)
	ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.TaskItem, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error
}
