package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/http/response"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

// parentRequest is the wire form of a department-parent reference.
type parentRequest struct {
	Kind         string `json:"kind" form:"kind"`
	Name         string `json:"name" form:"name"`
	SequenceName string `json:"sequence_name" form:"sequence_name"`
}

func (p parentRequest) names() resolve.ParentNames {
	return resolve.ParentNames{
		Kind:         types.ParentKind(p.Kind),
		Name:         p.Name,
		SequenceName: p.SequenceName,
	}
}

type EntityHandler struct {
	log           *logger.Logger
	entityService services.EntityService
}

func NewEntityHandler(log *logger.Logger, entityService services.EntityService) *EntityHandler {
	return &EntityHandler{
		log:           log.With("handler", "EntityHandler"),
		entityService: entityService,
	}
}

type createAssetRequest struct {
	Type        string `json:"type" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *EntityHandler) CreateAsset(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	asset, err := h.entityService.CreateAsset(c.Request.Context(), req.Type, req.Name, req.Description)
	if err != nil {
		h.log.Error("CreateAsset failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

func (h *EntityHandler) ListAssets(c *gin.Context) {
	assets, err := h.entityService.ListAssets(c.Request.Context())
	if err != nil {
		h.log.Error("ListAssets failed", "error", err)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}

func (h *EntityHandler) DeleteAsset(c *gin.Context) {
	name := c.Param("name")
	if err := h.entityService.DeleteAsset(c.Request.Context(), name); err != nil {
		h.log.Error("DeleteAsset failed", "error", err, "name", name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": name})
}

type createSequenceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *EntityHandler) CreateSequence(c *gin.Context) {
	var req createSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	seq, err := h.entityService.CreateSequence(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.log.Error("CreateSequence failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"sequence": seq})
}

func (h *EntityHandler) ListSequences(c *gin.Context) {
	seqs, err := h.entityService.ListSequences(c.Request.Context())
	if err != nil {
		h.log.Error("ListSequences failed", "error", err)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"sequences": seqs})
}

func (h *EntityHandler) DeleteSequence(c *gin.Context) {
	name := c.Param("name")
	if err := h.entityService.DeleteSequence(c.Request.Context(), name); err != nil {
		h.log.Error("DeleteSequence failed", "error", err, "name", name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": name})
}

type createShotRequest struct {
	Name        string `json:"name" binding:"required"`
	FrameRange  string `json:"frame_range" binding:"required"`
	Description string `json:"description"`
}

func (h *EntityHandler) CreateShot(c *gin.Context) {
	sequenceName := c.Param("sequence")
	var req createShotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	shot, err := h.entityService.CreateShot(c.Request.Context(), sequenceName, req.Name, req.FrameRange, req.Description)
	if err != nil {
		h.log.Error("CreateShot failed", "error", err, "sequence", sequenceName, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"shot": shot})
}

func (h *EntityHandler) ListShots(c *gin.Context) {
	sequenceName := c.Param("sequence")
	shots, err := h.entityService.ListShots(c.Request.Context(), sequenceName)
	if err != nil {
		h.log.Error("ListShots failed", "error", err, "sequence", sequenceName)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"shots": shots})
}

func (h *EntityHandler) DeleteShot(c *gin.Context) {
	sequenceName := c.Param("sequence")
	name := c.Param("name")
	if err := h.entityService.DeleteShot(c.Request.Context(), sequenceName, name); err != nil {
		h.log.Error("DeleteShot failed", "error", err, "sequence", sequenceName, "name", name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": name})
}
