package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type VariantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, v *types.Variant) error
	GetByName(ctx context.Context, tx *gorm.DB, setVariantID int64, name string) (*types.Variant, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Variant, error)
	ListBySetVariant(ctx context.Context, tx *gorm.DB, setVariantID int64) ([]types.Variant, error)
	DeleteByName(ctx context.Context, tx *gorm.DB, setVariantID int64, name string) error
}

type variantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVariantRepo(db *gorm.DB, baseLog *logger.Logger) VariantRepo {
	return &variantRepo{db: db, log: baseLog.With("repo", "VariantRepo")}
}

func (r *variantRepo) Create(ctx context.Context, tx *gorm.DB, v *types.Variant) error {
	return conn(r.db, tx).WithContext(ctx).Create(v).Error
}

func (r *variantRepo) GetByName(ctx context.Context, tx *gorm.DB, setVariantID int64, name string) (*types.Variant, error) {
	var v types.Variant
	err := conn(r.db, tx).WithContext(ctx).
		First(&v, "set_variant_id = ? AND name = ?", setVariantID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("variant", name)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Variant, error) {
	var v types.Variant
	err := conn(r.db, tx).WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("variant", "")
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) ListBySetVariant(ctx context.Context, tx *gorm.DB, setVariantID int64) ([]types.Variant, error) {
	var vs []types.Variant
	err := conn(r.db, tx).WithContext(ctx).
		Where("set_variant_id = ?", setVariantID).
		Order("id ASC").
		Find(&vs).Error
	return vs, err
}

func (r *variantRepo) DeleteByName(ctx context.Context, tx *gorm.DB, setVariantID int64, name string) error {
	return conn(r.db, tx).WithContext(ctx).
		Delete(&types.Variant{}, "set_variant_id = ? AND name = ?", setVariantID, name).Error
}
