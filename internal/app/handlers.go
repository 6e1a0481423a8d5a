package app

import (
	httpH "github.com/zarandamon/usd-mercury-pipeline/internal/http/handlers"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type Handlers struct {
	Project    *httpH.ProjectHandler
	Entity     *httpH.EntityHandler
	Department *httpH.DepartmentHandler
	Variant    *httpH.VariantHandler
	Version    *httpH.VersionHandler
	Workfile   *httpH.WorkfileHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Project:    httpH.NewProjectHandler(log, s.Project),
		Entity:     httpH.NewEntityHandler(log, s.Entity),
		Department: httpH.NewDepartmentHandler(log, s.Department),
		Variant:    httpH.NewVariantHandler(log, s.Variant),
		Version:    httpH.NewVersionHandler(log, s.Version),
		Workfile:   httpH.NewWorkfileHandler(log, s.Workfile),
		Health:     httpH.NewHealthHandler(),
	}
}
