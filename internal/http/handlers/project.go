package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zarandamon/usd-mercury-pipeline/internal/http/response"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

type ProjectHandler struct {
	log            *logger.Logger
	projectService services.ProjectService
}

func NewProjectHandler(log *logger.Logger, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		log:            log.With("handler", "ProjectHandler"),
		projectService: projectService,
	}
}

func (h *ProjectHandler) Bootstrap(c *gin.Context) {
	if err := h.projectService.Bootstrap(c.Request.Context()); err != nil {
		h.log.Error("Bootstrap failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "bootstrap_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"folders": h.projectService.Folders()})
}
