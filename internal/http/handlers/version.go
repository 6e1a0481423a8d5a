package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/http/response"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

type VersionHandler struct {
	log            *logger.Logger
	versionService services.VersionService
}

func NewVersionHandler(log *logger.Logger, versionService services.VersionService) *VersionHandler {
	return &VersionHandler{
		log:            log.With("handler", "VersionHandler"),
		versionService: versionService,
	}
}

type createVariantVersionRequest struct {
	Asset      string `json:"asset" binding:"required"`
	Department string `json:"department" binding:"required"`
	SetVariant string `json:"set_variant" binding:"required"`
	Variant    string `json:"variant" binding:"required"`
	Comment    string `json:"comment"`
}

func (h *VersionHandler) CreateVariantVersion(c *gin.Context) {
	var req createVariantVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	v, err := h.versionService.CreateVariantVersion(c.Request.Context(), req.Asset, req.Department, req.SetVariant, req.Variant, req.Comment)
	if err != nil {
		h.log.Error("CreateVariantVersion failed", "error", err, "variant", req.Variant)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"version": v})
}

type createDepartmentVersionRequest struct {
	Parent     parentRequest `json:"parent" binding:"required"`
	Department string        `json:"department" binding:"required"`
	Comment    string        `json:"comment"`
}

func (h *VersionHandler) CreateDepartmentVersion(c *gin.Context) {
	var req createDepartmentVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	v, err := h.versionService.CreateDepartmentVersion(c.Request.Context(), req.Parent.names(), req.Department, req.Comment)
	if err != nil {
		h.log.Error("CreateDepartmentVersion failed", "error", err, "department", req.Department)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"version": v})
}

// List expects scope_kind (variant|department) and scope_id query params.
func (h *VersionHandler) List(c *gin.Context) {
	scopeID, err := strconv.ParseInt(c.Query("scope_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	scope := types.VersionScope{Kind: types.ScopeKind(c.Query("scope_kind")), ID: scopeID}

	versions, err := h.versionService.List(c.Request.Context(), scope)
	if err != nil {
		h.log.Error("List failed", "error", err, "scope", scope.Kind, "id", scope.ID)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"versions": versions})
}

func (h *VersionHandler) Pin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.versionService.Pin(c.Request.Context(), id); err != nil {
		h.log.Error("Pin failed", "error", err, "id", id)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"pinned": id})
}

func (h *VersionHandler) Unpin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.versionService.Unpin(c.Request.Context(), id); err != nil {
		h.log.Error("Unpin failed", "error", err, "id", id)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"unpinned": id})
}
