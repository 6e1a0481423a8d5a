package services

import (
	"context"
	"fmt"
	"os"

	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

// VariantService manages set-variant documents under asset departments and
// the variant options inside them.
type VariantService interface {
	CreateSetVariant(ctx context.Context, assetName, departmentName, name string) (*types.SetVariant, error)
	ListSetVariants(ctx context.Context, assetName, departmentName string) ([]types.SetVariant, error)
	DeleteSetVariant(ctx context.Context, assetName, departmentName, name string) error

	CreateVariant(ctx context.Context, assetName, departmentName, setVarName, name string) (*types.Variant, error)
	ListVariants(ctx context.Context, assetName, departmentName, setVarName string) ([]types.Variant, error)
	DeleteVariant(ctx context.Context, assetName, departmentName, setVarName, name string) error

	UpdateVariantPayload(ctx context.Context, assetName, departmentName, setVarName, variantName, payloadPath string) error
	SetDefaultVariant(ctx context.Context, assetName, departmentName, setVarName, variantName string) error
}

type variantService struct {
	setVariants repos.SetVariantRepo
	variants    repos.VariantRepo
	resolver    *resolve.Resolver
	layout      resolve.Layout
	cache       *cache.Cache
	log         *logger.Logger
}

func NewVariantService(
	setVariants repos.SetVariantRepo,
	variants repos.VariantRepo,
	resolver *resolve.Resolver,
	layout resolve.Layout,
	c *cache.Cache,
	baseLog *logger.Logger,
) VariantService {
	return &variantService{
		setVariants: setVariants,
		variants:    variants,
		resolver:    resolver,
		layout:      layout,
		cache:       c,
		log:         baseLog.With("service", "VariantService"),
	}
}

// CreateSetVariant writes a fragment document carrying a variant set named
// after the setVariant, records the row, and registers the document as the
// weakest sublayer on the owning department document.
func (s *variantService) CreateSetVariant(ctx context.Context, assetName, departmentName, name string) (*types.SetVariant, error) {
	dept, err := s.resolver.Department(ctx, resolve.ParentNames{Kind: types.ParentAsset, Name: assetName}, departmentName)
	if err != nil {
		return nil, err
	}

	docPath := s.layout.SetVariantDoc(name, departmentName, assetName)
	layer, err := usd.CreateNew(docPath, usd.CreateOpts{})
	if err != nil {
		return nil, fmt.Errorf("create setVariant document: %w", err)
	}
	layer.EnsureVariantSet(name)
	if err := layer.Save(); err != nil {
		return nil, err
	}

	sv := &types.SetVariant{DepartmentID: dept.ID, Name: name, DocumentPath: docPath}
	if err := s.setVariants.Create(ctx, nil, sv); err != nil {
		return nil, fmt.Errorf("create setVariant row: %w", err)
	}

	if err := appendSublayer(dept.DocumentPath, docPath); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KindSetVariants, cache.ScopeID(dept.ID))
	s.log.Info("created setVariant", "asset", assetName, "department", departmentName, "name", name)
	return sv, nil
}

func (s *variantService) ListSetVariants(ctx context.Context, assetName, departmentName string) ([]types.SetVariant, error) {
	dept, err := s.resolver.Department(ctx, resolve.ParentNames{Kind: types.ParentAsset, Name: assetName}, departmentName)
	if err != nil {
		return nil, err
	}
	return cache.GetList(ctx, s.cache, cache.KindSetVariants, cache.ScopeID(dept.ID), func(ctx context.Context) ([]types.SetVariant, error) {
		return s.setVariants.ListByDepartment(ctx, nil, dept.ID)
	})
}

func (s *variantService) DeleteSetVariant(ctx context.Context, assetName, departmentName, name string) error {
	dept, err := s.resolver.Department(ctx, resolve.ParentNames{Kind: types.ParentAsset, Name: assetName}, departmentName)
	if err != nil {
		return err
	}
	sv, err := s.setVariants.GetByName(ctx, nil, dept.ID, name)
	if err != nil {
		return err
	}

	if err := deleteSubtree(sv.DocumentPath); err != nil {
		return err
	}
	if err := s.setVariants.DeleteByName(ctx, nil, dept.ID, name); err != nil {
		return fmt.Errorf("delete setVariant row: %w", err)
	}
	if err := removeSublayer(dept.DocumentPath, sv.DocumentPath); err != nil {
		return fmt.Errorf("unregister setVariant sublayer: %w", err)
	}

	s.cache.Invalidate(cache.KindSetVariants, cache.ScopeID(dept.ID))
	s.log.Info("deleted setVariant", "asset", assetName, "department", departmentName, "name", name)
	return nil
}

// CreateVariant records the variant row and adds the option to the
// setVariant document's variant set, without touching payloads or the active
// selection.
func (s *variantService) CreateVariant(ctx context.Context, assetName, departmentName, setVarName, name string) (*types.Variant, error) {
	sv, err := s.resolver.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return nil, err
	}

	v := &types.Variant{SetVariantID: sv.ID, Name: name}
	if err := s.variants.Create(ctx, nil, v); err != nil {
		return nil, fmt.Errorf("create variant row: %w", err)
	}

	layer, err := usd.Open(sv.DocumentPath)
	if err != nil {
		return nil, err
	}
	if err := layer.AddVariant(setVarName, name); err != nil {
		return nil, err
	}
	if err := layer.Save(); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KindVariants, cache.ScopeID(sv.ID))
	s.log.Info("created variant", "setVariant", setVarName, "name", name)
	return v, nil
}

func (s *variantService) ListVariants(ctx context.Context, assetName, departmentName, setVarName string) ([]types.Variant, error) {
	sv, err := s.resolver.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return nil, err
	}
	return cache.GetList(ctx, s.cache, cache.KindVariants, cache.ScopeID(sv.ID), func(ctx context.Context) ([]types.Variant, error) {
		return s.variants.ListBySetVariant(ctx, nil, sv.ID)
	})
}

func (s *variantService) DeleteVariant(ctx context.Context, assetName, departmentName, setVarName, name string) error {
	sv, err := s.resolver.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return err
	}
	if _, err := s.variants.GetByName(ctx, nil, sv.ID, name); err != nil {
		return err
	}

	dir := s.layout.VariantDir(setVarName, departmentName, assetName, name)
	if err := os.RemoveAll(dir); err != nil {
		return &pipeerr.FilesystemError{Path: dir, Err: err}
	}
	if err := s.variants.DeleteByName(ctx, nil, sv.ID, name); err != nil {
		return fmt.Errorf("delete variant row: %w", err)
	}

	s.cache.Invalidate(cache.KindVariants, cache.ScopeID(sv.ID))
	s.log.Info("deleted variant", "setVariant", setVarName, "name", name)
	return nil
}

// UpdateVariantPayload repoints the variant's payload at payloadPath, stored
// relative to the setVariant document. Re-running with the same target
// leaves the document unchanged.
func (s *variantService) UpdateVariantPayload(ctx context.Context, assetName, departmentName, setVarName, variantName, payloadPath string) error {
	sv, err := s.resolver.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return err
	}
	return repointPayload(sv.DocumentPath, setVarName, variantName, payloadPath)
}

// SetDefaultVariant makes variantName the active selection on the setVariant
// document.
func (s *variantService) SetDefaultVariant(ctx context.Context, assetName, departmentName, setVarName, variantName string) error {
	sv, err := s.resolver.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return err
	}

	layer, err := usd.Open(sv.DocumentPath)
	if err != nil {
		return err
	}
	if err := layer.SelectVariant(setVarName, variantName); err != nil {
		return err
	}
	return layer.Save()
}

// repointPayload swaps the payload under the named variant's selection for a
// reference relative to the setVariant document.
func repointPayload(setVarDoc, setVarName, variantName, payloadPath string) error {
	layer, err := usd.Open(setVarDoc)
	if err != nil {
		return err
	}
	ref, err := usd.RelativeTo(setVarDoc, payloadPath)
	if err != nil {
		return err
	}
	if err := layer.SetPayloadUnderSelection(setVarName, variantName, ref); err != nil {
		return err
	}
	return layer.Save()
}
