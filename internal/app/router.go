package app

import (
	"github.com/gin-gonic/gin"

	pipelineHTTP "github.com/zarandamon/usd-mercury-pipeline/internal/http"
)

func wireRouter(h Handlers) *gin.Engine {
	return pipelineHTTP.NewRouter(pipelineHTTP.RouterConfig{
		ProjectHandler:    h.Project,
		EntityHandler:     h.Entity,
		DepartmentHandler: h.Department,
		VariantHandler:    h.Variant,
		VersionHandler:    h.Version,
		WorkfileHandler:   h.Workfile,
		HealthHandler:     h.Health,
	})
}
