// Package services implements the pipeline operations: project bootstrap,
// entity and department lifecycle, variant management, version publishing,
// and working files. Services own the ordering between document writes,
// filesystem changes, and database rows; repos and the document codec stay
// mechanism-only.
package services

import (
	"context"
	"os"
	"path/filepath"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
)

type ProjectService interface {
	Bootstrap(ctx context.Context) error
	Folders() []string
}

type projectService struct {
	layout resolve.Layout
	log    *logger.Logger
}

func NewProjectService(layout resolve.Layout, baseLog *logger.Logger) ProjectService {
	return &projectService{
		layout: layout,
		log:    baseLog.With("service", "ProjectService"),
	}
}

// Bootstrap creates the canonical project folder set. Existing folders are
// left alone, so bootstrapping is safe to repeat.
func (s *projectService) Bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, folder := range resolve.ProjectFolders {
		path := filepath.Join(s.layout.ProjectRoot, folder)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return &pipeerr.FilesystemError{Path: path, Err: err}
		}
	}
	s.log.Info("project folders ready", "root", s.layout.ProjectRoot)
	return nil
}

func (s *projectService) Folders() []string {
	out := make([]string, len(resolve.ProjectFolders))
	copy(out, resolve.ProjectFolders)
	return out
}
