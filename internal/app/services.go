package app

import (
	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/host"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

type Services struct {
	Project    services.ProjectService
	Entity     services.EntityService
	Department services.DepartmentService
	Variant    services.VariantService
	Version    services.VersionService
	Workfile   services.WorkfileService
}

func wireServices(log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	layout := resolve.NewLayout(cfg.ProjectRoot)
	resolver := resolve.NewResolver(r.Asset, r.Sequence, r.Shot, r.Department, r.SetVariant, r.Variant, log)
	c := cache.New(log)

	exporter := host.NewDocumentExporter(log)
	capturer := host.NewCardCapturer()
	runner := host.NewHeadlessRunner(cfg.ToolPath, cfg.ScriptPath, log)

	entity := services.NewEntityService(r.Asset, r.Sequence, r.Shot, resolver, layout, c, log)

	return Services{
		Project:    services.NewProjectService(layout, log),
		Entity:     entity,
		Department: services.NewDepartmentService(r.Department, resolver, entity, layout, c, log),
		Variant:    services.NewVariantService(r.SetVariant, r.Variant, resolver, layout, c, log),
		Version:    services.NewVersionService(r.Version, r.Variant, r.SetVariant, r.Department, resolver, layout, exporter, capturer, c, log),
		Workfile:   services.NewWorkfileService(r.Task, r.File, resolver, layout, runner, capturer, c, log),
	}
}
