package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/host"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
)

// WorkfileService manages tasks and their versioned working files. New
// scenes are produced by the headless runner when no interactive host
// session exists.
type WorkfileService interface {
	CreateTask(ctx context.Context, parent resolve.ParentNames, departmentName, softwareName, taskName string) (*types.Task, error)
	ListTasks(ctx context.Context, parent resolve.ParentNames, departmentName string) ([]types.Task, error)
	DeleteTask(ctx context.Context, parent resolve.ParentNames, departmentName, softwareName, taskName string) error

	CreateFile(ctx context.Context, parent resolve.ParentNames, departmentName, taskName, softwareName, ext, comment string) (*types.File, error)
	ListFiles(ctx context.Context, parent resolve.ParentNames, departmentName, taskName string) ([]types.File, error)
	FilePath(ctx context.Context, parent resolve.ParentNames, departmentName, taskName string, version int) (string, error)
}

type workfileService struct {
	tasks    repos.TaskRepo
	files    repos.FileRepo
	resolver *resolve.Resolver
	layout   resolve.Layout
	runner   host.SceneRunner
	capturer host.SnapshotCapturer
	cache    *cache.Cache
	log      *logger.Logger
}

func NewWorkfileService(
	tasks repos.TaskRepo,
	files repos.FileRepo,
	resolver *resolve.Resolver,
	layout resolve.Layout,
	runner host.SceneRunner,
	capturer host.SnapshotCapturer,
	c *cache.Cache,
	baseLog *logger.Logger,
) WorkfileService {
	return &workfileService{
		tasks:    tasks,
		files:    files,
		resolver: resolver,
		layout:   layout,
		runner:   runner,
		capturer: capturer,
		cache:    c,
		log:      baseLog.With("service", "WorkfileService"),
	}
}

// workfileEntityName is the entity part of a working-file name; shots use
// the composite {sequence}_{shot}.
func workfileEntityName(parent resolve.ParentNames) string {
	if parent.Kind == types.ParentShot {
		return parent.SequenceName + "_" + parent.Name
	}
	return parent.Name
}

func (s *workfileService) CreateTask(ctx context.Context, parent resolve.ParentNames, departmentName, softwareName, taskName string) (*types.Task, error) {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return nil, err
	}

	dir, err := s.layout.TaskDir(parent, softwareName, departmentName, taskName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &pipeerr.FilesystemError{Path: dir, Err: err}
	}

	task := &types.Task{DepartmentID: dept.ID, Name: taskName}
	if err := s.tasks.Create(ctx, nil, task); err != nil {
		return nil, fmt.Errorf("create task row: %w", err)
	}

	s.cache.Invalidate(cache.KindTasks, cache.ScopeID(dept.ID))
	s.log.Info("created task", "department", departmentName, "name", taskName)
	return task, nil
}

func (s *workfileService) ListTasks(ctx context.Context, parent resolve.ParentNames, departmentName string) ([]types.Task, error) {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return nil, err
	}
	return cache.GetList(ctx, s.cache, cache.KindTasks, cache.ScopeID(dept.ID), func(ctx context.Context) ([]types.Task, error) {
		return s.tasks.ListByDepartment(ctx, nil, dept.ID)
	})
}

func (s *workfileService) DeleteTask(ctx context.Context, parent resolve.ParentNames, departmentName, softwareName, taskName string) error {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return err
	}
	if _, err := s.tasks.GetByName(ctx, nil, dept.ID, taskName); err != nil {
		return err
	}

	dir, err := s.layout.TaskDir(parent, softwareName, departmentName, taskName)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return &pipeerr.FilesystemError{Path: dir, Err: err}
	}
	if err := s.tasks.DeleteByName(ctx, nil, dept.ID, taskName); err != nil {
		return fmt.Errorf("delete task row: %w", err)
	}

	s.cache.Invalidate(cache.KindTasks, cache.ScopeID(dept.ID))
	s.log.Info("deleted task", "department", departmentName, "name", taskName)
	return nil
}

// CreateFile allocates the next working-file version, has the headless
// runner produce the scene, and records the row with the scene's mtime and a
// snapshot.
func (s *workfileService) CreateFile(ctx context.Context, parent resolve.ParentNames, departmentName, taskName, softwareName, ext, comment string) (*types.File, error) {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.GetByName(ctx, nil, dept.ID, taskName)
	if err != nil {
		return nil, err
	}

	highest, err := s.files.MaxVersion(ctx, nil, task.ID)
	if err != nil {
		return nil, fmt.Errorf("scan file versions: %w", err)
	}
	next := highest + 1

	dir, err := s.layout.TaskDir(parent, softwareName, departmentName, taskName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &pipeerr.FilesystemError{Path: dir, Err: err}
	}

	fileName := resolve.WorkfileName(workfileEntityName(parent), departmentName, taskName, next, ext)
	filePath := filepath.Join(dir, fileName)

	if err := s.runner.CreateScene(ctx, filePath); err != nil {
		return nil, err
	}

	date, err := exportedDate(filePath)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.capturer.Capture(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}

	row := &types.File{
		TaskID:   task.ID,
		Version:  next,
		Comment:  comment,
		Date:     date,
		FilePath: filePath,
		FileType: ext,
		Snapshot: snapshot,
	}
	if err := s.files.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create file row: %w", err)
	}

	s.cache.Invalidate(cache.KindFiles, cache.ScopeID(task.ID))
	s.log.Info("created working file", "task", taskName, "version", next)
	return row, nil
}

func (s *workfileService) ListFiles(ctx context.Context, parent resolve.ParentNames, departmentName, taskName string) ([]types.File, error) {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.GetByName(ctx, nil, dept.ID, taskName)
	if err != nil {
		return nil, err
	}
	return cache.GetList(ctx, s.cache, cache.KindFiles, cache.ScopeID(task.ID), func(ctx context.Context) ([]types.File, error) {
		return s.files.ListByTask(ctx, nil, task.ID)
	})
}

// FilePath resolves the on-disk path of a specific working-file version.
func (s *workfileService) FilePath(ctx context.Context, parent resolve.ParentNames, departmentName, taskName string, version int) (string, error) {
	dept, err := s.resolver.Department(ctx, parent, departmentName)
	if err != nil {
		return "", err
	}
	task, err := s.tasks.GetByName(ctx, nil, dept.ID, taskName)
	if err != nil {
		return "", err
	}
	f, err := s.files.GetByVersion(ctx, nil, task.ID, version)
	if err != nil {
		return "", err
	}
	return f.FilePath, nil
}
