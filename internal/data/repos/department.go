package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

// DepartmentRepo scopes every lookup by the parent union. The parent tag is
// mapped to its column through a closed switch; caller input never reaches
// the SQL as an identifier.
type DepartmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, dept *types.Department) error
	GetByParent(ctx context.Context, tx *gorm.DB, parent types.ParentRef, name string) (*types.Department, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Department, error)
	ListByParent(ctx context.Context, tx *gorm.DB, parent types.ParentRef) ([]types.Department, error)
	DeleteByParent(ctx context.Context, tx *gorm.DB, parent types.ParentRef, name string) error
}

type departmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDepartmentRepo(db *gorm.DB, baseLog *logger.Logger) DepartmentRepo {
	return &departmentRepo{db: db, log: baseLog.With("repo", "DepartmentRepo")}
}

func parentColumn(parent types.ParentRef) (string, error) {
	switch parent.Kind {
	case types.ParentSequence:
		return "sequence_id", nil
	case types.ParentShot:
		return "shot_id", nil
	case types.ParentAsset:
		return "asset_id", nil
	}
	return "", pipeerr.InvalidScope(string(parent.Kind))
}

func (r *departmentRepo) Create(ctx context.Context, tx *gorm.DB, dept *types.Department) error {
	return conn(r.db, tx).WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByParent(ctx context.Context, tx *gorm.DB, parent types.ParentRef, name string) (*types.Department, error) {
	col, err := parentColumn(parent)
	if err != nil {
		return nil, err
	}
	var dept types.Department
	err = conn(r.db, tx).WithContext(ctx).
		First(&dept, col+" = ? AND name = ?", parent.ID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("department", name)
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Department, error) {
	var dept types.Department
	err := conn(r.db, tx).WithContext(ctx).First(&dept, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pipeerr.NotFound("department", "")
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) ListByParent(ctx context.Context, tx *gorm.DB, parent types.ParentRef) ([]types.Department, error) {
	col, err := parentColumn(parent)
	if err != nil {
		return nil, err
	}
	var depts []types.Department
	err = conn(r.db, tx).WithContext(ctx).
		Where(col+" = ?", parent.ID).
		Order("id ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) DeleteByParent(ctx context.Context, tx *gorm.DB, parent types.ParentRef, name string) error {
	col, err := parentColumn(parent)
	if err != nil {
		return err
	}
	return conn(r.db, tx).WithContext(ctx).
		Delete(&types.Department{}, col+" = ? AND name = ?", parent.ID, name).Error
}
