package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type SetVariantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sv *types.SetVariant) error
	GetByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) (*types.SetVariant, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.SetVariant, error)
	ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int64) ([]types.SetVariant, error)
	DeleteByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) error
}

type setVariantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSetVariantRepo(db *gorm.DB, baseLog *logger.Logger) SetVariantRepo {
	return &setVariantRepo{db: db, log: baseLog.With("repo", "SetVariantRepo")}
}

func (r *setVariantRepo) Create(ctx context.Context, tx *gorm.DB, sv *types.SetVariant) error {
	return conn(r.db, tx).WithContext(ctx).Create(sv).Error
}

func (r *setVariantRepo) GetByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) (*types.SetVariant, error) {
	var sv types.SetVariant
	err := conn(r.db, tx).WithContext(ctx).
		First(&sv, "department_id = ? AND name = ?", departmentID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("setVariant", name)
	}
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

func (r *setVariantRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.SetVariant, error) {
	var sv types.SetVariant
	err := conn(r.db, tx).WithContext(ctx).First(&sv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("setVariant", "")
	}
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

func (r *setVariantRepo) ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int64) ([]types.SetVariant, error) {
	var svs []types.SetVariant
	err := conn(r.db, tx).WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&svs).Error
	return svs, err
}

func (r *setVariantRepo) DeleteByName(ctx context.Context, tx *gorm.DB, departmentID int64, name string) error {
	return conn(r.db, tx).WithContext(ctx).
		Delete(&types.SetVariant{}, "department_id = ? AND name = ?", departmentID, name).Error
}
