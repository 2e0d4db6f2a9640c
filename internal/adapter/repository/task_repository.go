package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/internal/domain/repositories"
)

// TaskRepository handles task item data operations
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepository{db: db}
}

// CreateBatch inserts extracted tasks in one statement. The database sequence
// overrides any extraction-time ids.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []*entities.TaskItem) error {
	if len(tasks) == 0 {
		return nil
	}
	for _, t := range tasks {
		if t == nil {
			return errors.New("task cannot be nil")
		}
		t.ID = 0
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

// GetByID retrieves a task by ID. Missing records return (nil, nil).
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entities.TaskItem, error) {
	var task entities.TaskItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// ListByMeetingID returns all tasks extracted from one meeting
func (r *TaskRepository) ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.TaskItem, error) {
	var tasks []entities.TaskItem
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus moves a task through its status lifecycle
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.TaskItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteByMeetingID removes all tasks belonging to a meeting
func (r *TaskRepository) DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.TaskItem{}).Error
}
