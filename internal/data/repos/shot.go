package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

// ShotRepo looks shots up by (sequence id, name); shot names are only unique
// within their sequence.
type ShotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, shot *types.Shot) error
	GetByName(ctx context.Context, tx *gorm.DB, sequenceID int64, name string) (*types.Shot, error)
	ListBySequence(ctx context.Context, tx *gorm.DB, sequenceID int64) ([]types.Shot, error)
	Update(ctx context.Context, tx *gorm.DB, shot *types.Shot) error
	DeleteByName(ctx context.Context, tx *gorm.DB, sequenceID int64, name string) error
}

type shotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShotRepo(db *gorm.DB, baseLog *logger.Logger) ShotRepo {
	return &shotRepo{db: db, log: baseLog.With("repo", "ShotRepo")}
}

func (r *shotRepo) Create(ctx context.Context, tx *gorm.DB, shot *types.Shot) error {
	return conn(r.db, tx).WithContext(ctx).Create(shot).Error
}

func (r *shotRepo) GetByName(ctx context.Context, tx *gorm.DB, sequenceID int64, name string) (*types.Shot, error) {
	var shot types.Shot
	err := conn(r.db, tx).WithContext(ctx).
		First(&shot, "sequence_id = ? AND name = ?", sequenceID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("shot", name)
	}
	if err != nil {
		return nil, err
	}
	return &shot, nil
}

func (r *shotRepo) ListBySequence(ctx context.Context, tx *gorm.DB, sequenceID int64) ([]types.Shot, error) {
	var shots []types.Shot
	err := conn(r.db, tx).WithContext(ctx).
		Where("sequence_id = ?", sequenceID).
		Order("id ASC").
		Find(&shots).Error
	return shots, err
}

func (r *shotRepo) Update(ctx context.Context, tx *gorm.DB, shot *types.Shot) error {
	return conn(r.db, tx).WithContext(ctx).Save(shot).Error
}

func (r *shotRepo) DeleteByName(ctx context.Context, tx *gorm.DB, sequenceID int64, name string) error {
	return conn(r.db, tx).WithContext(ctx).
		Delete(&types.Shot{}, "sequence_id = ? AND name = ?", sequenceID, name).Error
}
