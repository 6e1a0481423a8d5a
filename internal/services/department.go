package services

import (
	"context"
	"fmt"

	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

// DepartmentService manages department sublayer documents under their parent
// entity. AddSublayer and RemoveSublayer edit the department document's own
// sublayer list, for references the pipeline doesn't manage itself.
type DepartmentService interface {
	Create(ctx context.Context, parent resolve.ParentNames, name string) (*types.Department, error)
	List(ctx context.Context, parent resolve.ParentNames) ([]types.Department, error)
	Delete(ctx context.Context, parent resolve.ParentNames, name string) error

	AddSublayer(ctx context.Context, parent resolve.ParentNames, name, sublayerPath string) error
	RemoveSublayer(ctx context.Context, parent resolve.ParentNames, name, sublayerPath string) error
}

type departmentService struct {
	departments repos.DepartmentRepo
	resolver    *resolve.Resolver
	entities    EntityService
	layout      resolve.Layout
	cache       *cache.Cache
	log         *logger.Logger
}

func NewDepartmentService(
	departments repos.DepartmentRepo,
	resolver *resolve.Resolver,
	entities EntityService,
	layout resolve.Layout,
	c *cache.Cache,
	baseLog *logger.Logger,
) DepartmentService {
	return &departmentService{
		departments: departments,
		resolver:    resolver,
		entities:    entities,
		layout:      layout,
		cache:       c,
		log:         baseLog.With("service", "DepartmentService"),
	}
}

// Create writes the department document, records its row, and registers it
// as the strongest sublayer on the parent entity document.
func (s *departmentService) Create(ctx context.Context, parent resolve.ParentNames, name string) (*types.Department, error) {
	ref, _, err := s.resolver.Parent(ctx, parent)
	if err != nil {
		return nil, err
	}

	docPath, err := s.layout.DepartmentDoc(parent, name)
	if err != nil {
		return nil, err
	}
	if _, err := usd.CreateNew(docPath, usd.CreateOpts{}); err != nil {
		return nil, fmt.Errorf("create department document: %w", err)
	}

	dept := &types.Department{Name: name, DocumentPath: docPath}
	switch ref.Kind {
	case types.ParentSequence:
		dept.SequenceID = &ref.ID
	case types.ParentShot:
		dept.ShotID = &ref.ID
	case types.ParentAsset:
		dept.AssetID = &ref.ID
	}
	if err := s.departments.Create(ctx, nil, dept); err != nil {
		return nil, fmt.Errorf("create department row: %w", err)
	}

	if err := s.entities.AddSublayer(ctx, parent, docPath); err != nil {
		return nil, fmt.Errorf("register department sublayer: %w", err)
	}

	s.cache.Invalidate(cache.KindDepartments, cache.ParentScope(ref))
	s.log.Info("created department", "parent", parent.Name, "name", name)
	return dept, nil
}

func (s *departmentService) List(ctx context.Context, parent resolve.ParentNames) ([]types.Department, error) {
	ref, _, err := s.resolver.Parent(ctx, parent)
	if err != nil {
		return nil, err
	}
	return cache.GetList(ctx, s.cache, cache.KindDepartments, cache.ParentScope(ref), func(ctx context.Context) ([]types.Department, error) {
		return s.departments.ListByParent(ctx, nil, ref)
	})
}

// appendSublayer registers sublayerPath at the weakest position on a
// department document, stored relative to the document's directory.
func appendSublayer(deptDoc, sublayerPath string) error {
	layer, err := usd.Open(deptDoc)
	if err != nil {
		return err
	}
	ref, err := usd.RelativeTo(deptDoc, sublayerPath)
	if err != nil {
		return err
	}
	if !layer.AppendSubLayer(ref) {
		return nil
	}
	return layer.Save()
}

func removeSublayer(deptDoc, sublayerPath string) error {
	layer, err := usd.Open(deptDoc)
	if err != nil {
		return err
	}
	ref, err := usd.RelativeTo(deptDoc, sublayerPath)
	if err != nil {
		return err
	}
	if !layer.RemoveSubLayer(ref) {
		return nil
	}
	return layer.Save()
}

func (s *departmentService) AddSublayer(ctx context.Context, parent resolve.ParentNames, name, sublayerPath string) error {
	dept, err := s.resolver.Department(ctx, parent, name)
	if err != nil {
		return err
	}
	return appendSublayer(dept.DocumentPath, sublayerPath)
}

func (s *departmentService) RemoveSublayer(ctx context.Context, parent resolve.ParentNames, name, sublayerPath string) error {
	dept, err := s.resolver.Department(ctx, parent, name)
	if err != nil {
		return err
	}
	return removeSublayer(dept.DocumentPath, sublayerPath)
}

// Delete removes the department's on-disk subtree, its row, and its sublayer
// entry on the parent document, in that order. The row survives a failed
// filesystem delete.
func (s *departmentService) Delete(ctx context.Context, parent resolve.ParentNames, name string) error {
	ref, _, err := s.resolver.Parent(ctx, parent)
	if err != nil {
		return err
	}
	dept, err := s.departments.GetByParent(ctx, nil, ref, name)
	if err != nil {
		return err
	}

	if err := deleteSubtree(dept.DocumentPath); err != nil {
		return err
	}
	if err := s.departments.DeleteByParent(ctx, nil, ref, name); err != nil {
		return fmt.Errorf("delete department row: %w", err)
	}
	if err := s.entities.RemoveSublayer(ctx, parent, dept.DocumentPath); err != nil {
		return fmt.Errorf("unregister department sublayer: %w", err)
	}

	s.cache.Invalidate(cache.KindDepartments, cache.ParentScope(ref))
	s.log.Info("deleted department", "parent", parent.Name, "name", name)
	return nil
}
