package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/zarandamon/usd-mercury-pipeline/internal/http/handlers"
	httpMW "github.com/zarandamon/usd-mercury-pipeline/internal/http/middleware"
)

type RouterConfig struct {
	ProjectHandler    *httpH.ProjectHandler
	EntityHandler     *httpH.EntityHandler
	DepartmentHandler *httpH.DepartmentHandler
	VariantHandler    *httpH.VariantHandler
	VersionHandler    *httpH.VersionHandler
	WorkfileHandler   *httpH.WorkfileHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.RequestID())
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.ProjectHandler != nil {
			api.POST("/project/bootstrap", cfg.ProjectHandler.Bootstrap)
		}

		if cfg.EntityHandler != nil {
			api.POST("/assets", cfg.EntityHandler.CreateAsset)
			api.GET("/assets", cfg.EntityHandler.ListAssets)
			api.DELETE("/assets/:name", cfg.EntityHandler.DeleteAsset)

			api.POST("/sequences", cfg.EntityHandler.CreateSequence)
			api.GET("/sequences", cfg.EntityHandler.ListSequences)
			api.DELETE("/sequences/:name", cfg.EntityHandler.DeleteSequence)

			api.POST("/sequences/:sequence/shots", cfg.EntityHandler.CreateShot)
			api.GET("/sequences/:sequence/shots", cfg.EntityHandler.ListShots)
			api.DELETE("/sequences/:sequence/shots/:name", cfg.EntityHandler.DeleteShot)
		}

		if cfg.DepartmentHandler != nil {
			api.POST("/departments", cfg.DepartmentHandler.Create)
			api.GET("/departments", cfg.DepartmentHandler.List)
			api.POST("/departments/delete", cfg.DepartmentHandler.Delete)
			api.POST("/departments/sublayers", cfg.DepartmentHandler.AddSublayer)
			api.POST("/departments/sublayers/delete", cfg.DepartmentHandler.RemoveSublayer)
		}

		if cfg.VariantHandler != nil {
			api.POST("/set-variants", cfg.VariantHandler.CreateSetVariant)
			api.GET("/set-variants", cfg.VariantHandler.ListSetVariants)
			api.POST("/set-variants/delete", cfg.VariantHandler.DeleteSetVariant)
			api.POST("/set-variants/default", cfg.VariantHandler.SetDefaultVariant)

			api.POST("/variants", cfg.VariantHandler.CreateVariant)
			api.GET("/variants", cfg.VariantHandler.ListVariants)
			api.POST("/variants/delete", cfg.VariantHandler.DeleteVariant)
		}

		if cfg.VersionHandler != nil {
			api.POST("/versions/variant", cfg.VersionHandler.CreateVariantVersion)
			api.POST("/versions/department", cfg.VersionHandler.CreateDepartmentVersion)
			api.GET("/versions", cfg.VersionHandler.List)
			api.POST("/versions/:id/pin", cfg.VersionHandler.Pin)
			api.POST("/versions/:id/unpin", cfg.VersionHandler.Unpin)
		}

		if cfg.WorkfileHandler != nil {
			api.POST("/tasks", cfg.WorkfileHandler.CreateTask)
			api.GET("/tasks", cfg.WorkfileHandler.ListTasks)
			api.POST("/files", cfg.WorkfileHandler.CreateFile)
			api.GET("/files", cfg.WorkfileHandler.ListFiles)
			api.GET("/files/path", cfg.WorkfileHandler.FilePath)
		}
	}

	return r
}
