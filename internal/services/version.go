package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/host"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

// VersionService publishes variant and department versions and drives the
// pin lifecycle. Version numbers are allocated read-then-write (max + 1,
// holes never reused); concurrent publishers to the same scope can collide,
// which mirrors the single-artist-per-variant workflow this tool assumes.
type VersionService interface {
	CreateVariantVersion(ctx context.Context, assetName, departmentName, setVarName, variantName, comment string) (*types.VariantVersion, error)
	CreateDepartmentVersion(ctx context.Context, parent resolve.ParentNames, departmentName, comment string) (*types.VariantVersion, error)

	List(ctx context.Context, scope types.VersionScope) ([]types.VariantVersion, error)
	Pin(ctx context.Context, versionID int64) error
	Unpin(ctx context.Context, versionID int64) error
}

type versionService struct {
	versions    repos.VariantVersionRepo
	variants    repos.VariantRepo
	setVariants repos.SetVariantRepo
	departments repos.DepartmentRepo
	resolver    *resolve.Resolver
	layout      resolve.Layout
	exporter    host.Exporter
	capturer    host.SnapshotCapturer
	cache       *cache.Cache
	log         *logger.Logger
}

func NewVersionService(
	versions repos.VariantVersionRepo,
	variants repos.VariantRepo,
	setVariants repos.SetVariantRepo,
	departments repos.DepartmentRepo,
	resolver *resolve.Resolver,
	layout resolve.Layout,
	exporter host.Exporter,
	capturer host.SnapshotCapturer,
	c *cache.Cache,
	baseLog *logger.Logger,
) VersionService {
	return &versionService{
		versions:    versions,
		variants:    variants,
		setVariants: setVariants,
		departments: departments,
		resolver:    resolver,
		layout:      layout,
		exporter:    exporter,
		capturer:    capturer,
		cache:       c,
		log:         baseLog.With("service", "VersionService"),
	}
}

// exportedDate stamps the version row from the produced file's modification
// time, so the recorded date matches what the filesystem shows.
func exportedDate(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, &pipeerr.FilesystemError{Path: path, Err: err}
	}
	return info.ModTime(), nil
}

// CreateVariantVersion publishes the next version of a content variant:
// exports the fragment, records the row unpinned, and repoints the variant's
// payload at the new version.
func (s *versionService) CreateVariantVersion(ctx context.Context, assetName, departmentName, setVarName, variantName, comment string) (*types.VariantVersion, error) {
	sv, err := s.resolver.SetVariant(ctx, assetName, departmentName, setVarName)
	if err != nil {
		return nil, err
	}
	variant, err := s.resolver.Variant(ctx, assetName, departmentName, setVarName, variantName)
	if err != nil {
		return nil, err
	}

	scope := types.VersionScope{Kind: types.ScopeVariant, ID: variant.ID}
	highest, err := s.versions.MaxVersion(ctx, nil, scope)
	if err != nil {
		return nil, fmt.Errorf("scan versions: %w", err)
	}
	next := highest + 1

	docPath := s.layout.VariantVersionDoc(setVarName, departmentName, assetName, variantName, next)
	if err := s.exporter.Export(ctx, docPath); err != nil {
		return nil, err
	}

	date, err := exportedDate(docPath)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	snapshot, err := s.capturer.Capture(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}

	row := &types.VariantVersion{
		VariantID:    &variant.ID,
		Version:      next,
		Comment:      comment,
		Date:         date,
		DocumentPath: docPath,
		Pinned:       false,
		Snapshot:     snapshot,
	}
	if err := s.versions.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create version row: %w", err)
	}

	if err := repointPayload(sv.DocumentPath, setVarName, variantName, docPath); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KindVersions, cache.VersionScope(scope))
	s.log.Info("published variant version", "variant", variantName, "version", next)
	return row, nil
}

// CreateDepartmentVersion publishes the next department-level revision and
// makes it the active sublayer on the department document.
func (s *versionService) CreateDepartmentVersion(ctx context.Context, parent resolve.ParentNames, departmentName, comment string) (*types.VariantVersion, error) {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return nil, err
	}

	scope := types.VersionScope{Kind: types.ScopeDepartment, ID: dept.ID}
	highest, err := s.versions.MaxVersion(ctx, nil, scope)
	if err != nil {
		return nil, fmt.Errorf("scan versions: %w", err)
	}
	next := highest + 1

	docPath, err := s.layout.DepartmentVersionDoc(parent, departmentName, next)
	if err != nil {
		return nil, err
	}
	if err := s.exporter.Export(ctx, docPath); err != nil {
		return nil, err
	}

	date, err := exportedDate(docPath)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	snapshot, err := s.capturer.Capture(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}

	row := &types.VariantVersion{
		DepartmentID: &dept.ID,
		Version:      next,
		Comment:      comment,
		Date:         date,
		DocumentPath: docPath,
		Pinned:       false,
		Snapshot:     snapshot,
	}
	if err := s.versions.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create version row: %w", err)
	}

	if err := s.activateDepartmentVersion(ctx, scope, dept.DocumentPath, docPath); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KindVersions, cache.VersionScope(scope))
	s.log.Info("published department version", "department", departmentName, "version", next)
	return row, nil
}

func (s *versionService) List(ctx context.Context, scope types.VersionScope) ([]types.VariantVersion, error) {
	return cache.GetList(ctx, s.cache, cache.KindVersions, cache.VersionScope(scope), func(ctx context.Context) ([]types.VariantVersion, error) {
		return s.versions.ListByScope(ctx, nil, scope)
	})
}

// Pin marks a version pinned and repoints the consuming document at it. The
// store's triggers clear any sibling pin in the same scope.
func (s *versionService) Pin(ctx context.Context, versionID int64) error {
	row, err := s.versions.GetByID(ctx, nil, versionID)
	if err != nil {
		return err
	}
	scope, err := row.Scope()
	if err != nil {
		return pipeerr.InvalidScope(err.Error())
	}

	if err := s.versions.SetPinned(ctx, nil, versionID, true); err != nil {
		return fmt.Errorf("pin version: %w", err)
	}
	if err := s.activate(ctx, scope, row); err != nil {
		return err
	}

	s.cache.Invalidate(cache.KindVersions, cache.VersionScope(scope))
	s.log.Info("pinned version", "id", versionID, "version", row.Version)
	return nil
}

// Unpin clears the pin and repoints the consuming document at the scope's
// highest version, so latest-wins resumes.
func (s *versionService) Unpin(ctx context.Context, versionID int64) error {
	row, err := s.versions.GetByID(ctx, nil, versionID)
	if err != nil {
		return err
	}
	scope, err := row.Scope()
	if err != nil {
		return pipeerr.InvalidScope(err.Error())
	}

	if err := s.versions.SetPinned(ctx, nil, versionID, false); err != nil {
		return fmt.Errorf("unpin version: %w", err)
	}

	latest, err := s.versions.Latest(ctx, nil, scope)
	if err != nil {
		return err
	}
	if err := s.activate(ctx, scope, latest); err != nil {
		return err
	}

	s.cache.Invalidate(cache.KindVersions, cache.VersionScope(scope))
	s.log.Info("unpinned version", "id", versionID, "active", latest.Version)
	return nil
}

// activate points the consuming document at the given version row: a payload
// swap for variant scopes, a sublayer swap for department scopes.
func (s *versionService) activate(ctx context.Context, scope types.VersionScope, row *types.VariantVersion) error {
	switch scope.Kind {
	case types.ScopeVariant:
		variant, err := s.variants.GetByID(ctx, nil, scope.ID)
		if err != nil {
			return err
		}
		sv, err := s.setVariants.GetByID(ctx, nil, variant.SetVariantID)
		if err != nil {
			return err
		}
		return repointPayload(sv.DocumentPath, sv.Name, variant.Name, row.DocumentPath)
	case types.ScopeDepartment:
		dept, err := s.departments.GetByID(ctx, nil, scope.ID)
		if err != nil {
			return err
		}
		return s.activateDepartmentVersion(ctx, scope, dept.DocumentPath, row.DocumentPath)
	}
	return pipeerr.InvalidScope(string(scope.Kind))
}

// activateDepartmentVersion replaces whichever version sublayer the
// department document carries with the target version's reference.
func (s *versionService) activateDepartmentVersion(ctx context.Context, scope types.VersionScope, deptDoc, versionDoc string) error {
	layer, err := usd.Open(deptDoc)
	if err != nil {
		return err
	}

	all, err := s.versions.ListByScope(ctx, nil, scope)
	if err != nil {
		return err
	}
	changed := false
	for _, v := range all {
		ref, err := usd.RelativeTo(deptDoc, v.DocumentPath)
		if err != nil {
			return err
		}
		if layer.RemoveSubLayer(ref) {
			changed = true
		}
	}

	ref, err := usd.RelativeTo(deptDoc, versionDoc)
	if err != nil {
		return err
	}
	if layer.AppendSubLayer(ref) {
		changed = true
	}
	if !changed {
		return nil
	}
	return layer.Save()
}
