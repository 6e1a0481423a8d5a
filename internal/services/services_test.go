package services_test

import (
	"context"
	"os"
	"testing"

	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos/testutil"
	"github.com/zarandamon/usd-mercury-pipeline/internal/host"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

// stubRunner stands in for the headless host subprocess and just writes the
// scene file.
type stubRunner struct{}

func (stubRunner) CreateScene(ctx context.Context, scenePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(scenePath, []byte("// scene\n"), 0o644)
}

// pipeline wires the full service stack over the shared test store and a
// per-test project root. The store is shared across tests, so every test uses
// names unique to itself.
type pipeline struct {
	project   services.ProjectService
	entities  services.EntityService
	depts     services.DepartmentService
	variants  services.VariantService
	versions  services.VersionService
	workfiles services.WorkfileService
	layout    resolve.Layout
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	layout := resolve.NewLayout(t.TempDir())

	assets := repos.NewAssetRepo(db, log)
	sequences := repos.NewSequenceRepo(db, log)
	shots := repos.NewShotRepo(db, log)
	departments := repos.NewDepartmentRepo(db, log)
	tasks := repos.NewTaskRepo(db, log)
	setVariants := repos.NewSetVariantRepo(db, log)
	variants := repos.NewVariantRepo(db, log)
	versions := repos.NewVariantVersionRepo(db, log)
	files := repos.NewFileRepo(db, log)

	resolver := resolve.NewResolver(assets, sequences, shots, departments, setVariants, variants, log)
	c := cache.New(log)
	exporter := host.NewDocumentExporter(log)
	capturer := host.NewCardCapturer()

	entitySvc := services.NewEntityService(assets, sequences, shots, resolver, layout, c, log)

	p := &pipeline{
		project:   services.NewProjectService(layout, log),
		entities:  entitySvc,
		depts:     services.NewDepartmentService(departments, resolver, entitySvc, layout, c, log),
		variants:  services.NewVariantService(setVariants, variants, resolver, layout, c, log),
		versions:  services.NewVersionService(versions, variants, setVariants, departments, resolver, layout, exporter, capturer, c, log),
		workfiles: services.NewWorkfileService(tasks, files, resolver, layout, stubRunner{}, capturer, c, log),
		layout:    layout,
	}
	if err := p.project.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return p
}
