package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type FileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, f *types.File) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.File, error)
	GetByVersion(ctx context.Context, tx *gorm.DB, taskID int64, version int) (*types.File, error)
	ListByTask(ctx context.Context, tx *gorm.DB, taskID int64) ([]types.File, error)
	MaxVersion(ctx context.Context, tx *gorm.DB, taskID int64) (int, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
}

type fileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFileRepo(db *gorm.DB, baseLog *logger.Logger) FileRepo {
	return &fileRepo{db: db, log: baseLog.With("repo", "FileRepo")}
}

func (r *fileRepo) Create(ctx context.Context, tx *gorm.DB, f *types.File) error {
	return conn(r.db, tx).WithContext(ctx).Create(f).Error
}

func (r *fileRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.File, error) {
	var f types.File
	err := conn(r.db, tx).WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("file", "")
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) GetByVersion(ctx context.Context, tx *gorm.DB, taskID int64, version int) (*types.File, error) {
	var f types.File
	err := conn(r.db, tx).WithContext(ctx).
		First(&f, "task_id = ? AND version = ?", taskID, version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("file", "")
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) ListByTask(ctx context.Context, tx *gorm.DB, taskID int64) ([]types.File, error) {
	var fs []types.File
	err := conn(r.db, tx).WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("version ASC").
		Find(&fs).Error
	return fs, err
}

func (r *fileRepo) MaxVersion(ctx context.Context, tx *gorm.DB, taskID int64) (int, error) {
	var max *int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&types.File{}).
		Where("task_id = ?", taskID).
		Select("MAX(version)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *fileRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&types.File{}, "id = ?", id).Error
}
