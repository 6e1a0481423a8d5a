package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Asset, error)
	List(ctx context.Context, tx *gorm.DB) ([]types.Asset, error)
	Update(ctx context.Context, tx *gorm.DB, asset *types.Asset) error
	DeleteByName(ctx context.Context, tx *gorm.DB, name string) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) error {
	return conn(r.db, tx).WithContext(ctx).Create(asset).Error
}

func (r *assetRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Asset, error) {
	var asset types.Asset
	err := conn(r.db, tx).WithContext(ctx).First(&asset, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("asset", name)
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Asset, error) {
	var assets []types.Asset
	err := conn(r.db, tx).WithContext(ctx).Order("id ASC").Find(&assets).Error
	return assets, err
}

func (r *assetRepo) Update(ctx context.Context, tx *gorm.DB, asset *types.Asset) error {
	return conn(r.db, tx).WithContext(ctx).Save(asset).Error
}

func (r *assetRepo) DeleteByName(ctx context.Context, tx *gorm.DB, name string) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&types.Asset{}, "name = ?", name).Error
}
