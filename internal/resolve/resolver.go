// Package resolve turns human-facing name chains into row ids and absolute
// document paths. Every hop is an explicit lookup; a miss at any step
// surfaces ErrNotFound naming the entity that failed, and a parent tag
// outside the closed set surfaces ErrInvalidScope.
package resolve

import (
	"context"

	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

// ParentNames names a department's parent entity. SequenceName is only
// consulted when Kind is shot.
type ParentNames struct {
	Kind         types.ParentKind
	Name         string
	SequenceName string
}

type Resolver struct {
	assets      repos.AssetRepo
	sequences   repos.SequenceRepo
	shots       repos.ShotRepo
	departments repos.DepartmentRepo
	setVariants repos.SetVariantRepo
	variants    repos.VariantRepo
	log         *logger.Logger
}

func NewResolver(
	assets repos.AssetRepo,
	sequences repos.SequenceRepo,
	shots repos.ShotRepo,
	departments repos.DepartmentRepo,
	setVariants repos.SetVariantRepo,
	variants repos.VariantRepo,
	baseLog *logger.Logger,
) *Resolver {
	return &Resolver{
		assets:      assets,
		sequences:   sequences,
		shots:       shots,
		departments: departments,
		setVariants: setVariants,
		variants:    variants,
		log:         baseLog.With("component", "resolver"),
	}
}

func (r *Resolver) Asset(ctx context.Context, name string) (*types.Asset, error) {
	return r.assets.GetByName(ctx, nil, name)
}

func (r *Resolver) Sequence(ctx context.Context, name string) (*types.Sequence, error) {
	return r.sequences.GetByName(ctx, nil, name)
}

func (r *Resolver) Shot(ctx context.Context, sequenceName, shotName string) (*types.Shot, error) {
	seq, err := r.sequences.GetByName(ctx, nil, sequenceName)
	if err != nil {
		return nil, err
	}
	return r.shots.GetByName(ctx, nil, seq.ID, shotName)
}

// Parent resolves a department's parent entity to its row reference and
// document path.
func (r *Resolver) Parent(ctx context.Context, parent ParentNames) (types.ParentRef, string, error) {
	switch parent.Kind {
	case types.ParentAsset:
		a, err := r.Asset(ctx, parent.Name)
		if err != nil {
			return types.ParentRef{}, "", err
		}
		return types.ParentRef{Kind: types.ParentAsset, ID: a.ID}, a.DocumentPath, nil
	case types.ParentSequence:
		s, err := r.Sequence(ctx, parent.Name)
		if err != nil {
			return types.ParentRef{}, "", err
		}
		return types.ParentRef{Kind: types.ParentSequence, ID: s.ID}, s.DocumentPath, nil
	case types.ParentShot:
		s, err := r.Shot(ctx, parent.SequenceName, parent.Name)
		if err != nil {
			return types.ParentRef{}, "", err
		}
		return types.ParentRef{Kind: types.ParentShot, ID: s.ID}, s.DocumentPath, nil
	}
	return types.ParentRef{}, "", pipeerr.InvalidScope(string(parent.Kind))
}

func (r *Resolver) Department(ctx context.Context, parent ParentNames, departmentName string) (*types.Department, error) {
	ref, _, err := r.Parent(ctx, parent)
	if err != nil {
		return nil, err
	}
	return r.departments.GetByParent(ctx, nil, ref, departmentName)
}

// SetVariant resolves the asset, department, setVariant chain. Set-variant
// documents only hang off asset departments.
func (r *Resolver) SetVariant(ctx context.Context, assetName, departmentName, setVarName string) (*types.SetVariant, error) {
	dept, err := r.Department(ctx, ParentNames{Kind: types.ParentAsset, Name: assetName}, departmentName)
	if err != nil {
		return nil, err
	}
	return r.setVariants.GetByName(ctx, nil, dept.ID, setVarName)
}

func (r *Resolver) Variant(ctx context.Context, assetName, departmentName, setVarName, variantName string) (*types.Variant, error) {
	sv, err := r.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return nil, err
	}
	return r.variants.GetByName(ctx, nil, sv.ID, variantName)
}
