package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.Task) error
	GetByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) (*types.Task, error)
	ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int64) ([]types.Task, error)
	DeleteByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.Task) error {
	return conn(r.db, tx).WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) (*types.Task, error) {
	var task types.Task
	err := conn(r.db, tx).WithContext(ctx).
		First(&task, "department_id = ? AND name = ?", departmentID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("task", name)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int64) ([]types.Task, error) {
	var tasks []types.Task
	err := conn(r.db, tx).WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) DeleteByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) error {
	return conn(r.db, tx).WithContext(ctx).
		Delete(&types.Task{}, "department_id = ? AND name = ?", departmentID, name).Error
}
