package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type SequenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, seq *types.Sequence) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Sequence, error)
	List(ctx context.Context, tx *gorm.DB) ([]types.Sequence, error)
	Update(ctx context.Context, tx *gorm.DB, seq *types.Sequence) error
	DeleteByName(ctx context.Context, tx *gorm.DB, name string) error
}

type sequenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSequenceRepo(db *gorm.DB, baseLog *logger.Logger) SequenceRepo {
	return &sequenceRepo{db: db, log: baseLog.With("repo", "SequenceRepo")}
}

func (r *sequenceRepo) Create(ctx context.Context, tx *gorm.DB, seq *types.Sequence) error {
	return conn(r.db, tx).WithContext(ctx).Create(seq).Error
}

func (r *sequenceRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Sequence, error) {
	var seq types.Sequence
	err := conn(r.db, tx).WithContext(ctx).First(&seq, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("sequence", name)
	}
	if err != nil {
		return nil, err
	}
	return &seq, nil
}

func (r *sequenceRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Sequence, error) {
	var seqs []types.Sequence
	err := conn(r.db, tx).WithContext(ctx).Order("id ASC").Find(&seqs).Error
	return seqs, err
}

func (r *sequenceRepo) Update(ctx context.Context, tx *gorm.DB, seq *types.Sequence) error {
	return conn(r.db, tx).WithContext(ctx).Save(seq).Error
}

func (r *sequenceRepo) DeleteByName(ctx context.Context, tx *gorm.DB, name string) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&types.Sequence{}, "name = ?", name).Error
}
