// Package host holds the collaborators that stand between the pipeline and
// the content-creation application: fragment export, viewport snapshots, and
// headless scene creation through a subprocess.
package host

import (
	"context"

	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

// Exporter produces the published fragment document for a new version. The
// production implementation exports the host session's geometry; outside a
// host session DocumentExporter writes the conventional component skeleton.
type Exporter interface {
	Export(ctx context.Context, path string) error
}

// DocumentExporter writes a component-kind document with the conventional
// root structure at the target path.
type DocumentExporter struct {
	log *logger.Logger
}

func NewDocumentExporter(baseLog *logger.Logger) *DocumentExporter {
	return &DocumentExporter{log: baseLog.With("component", "exporter")}
}

func (e *DocumentExporter) Export(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := usd.CreateNew(path, usd.CreateOpts{Kind: "component"})
	if err != nil {
		return err
	}
	e.log.Debug("exported fragment", "path", path)
	return nil
}
