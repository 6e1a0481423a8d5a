package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zarandamon/usd-mercury-pipeline/internal/http/response"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

type VariantHandler struct {
	log            *logger.Logger
	variantService services.VariantService
}

func NewVariantHandler(log *logger.Logger, variantService services.VariantService) *VariantHandler {
	return &VariantHandler{
		log:            log.With("handler", "VariantHandler"),
		variantService: variantService,
	}
}

type setVariantRequest struct {
	Asset      string `json:"asset" binding:"required"`
	Department string `json:"department" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

func (h *VariantHandler) CreateSetVariant(c *gin.Context) {
	var req setVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sv, err := h.variantService.CreateSetVariant(c.Request.Context(), req.Asset, req.Department, req.Name)
	if err != nil {
		h.log.Error("CreateSetVariant failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"set_variant": sv})
}

func (h *VariantHandler) ListSetVariants(c *gin.Context) {
	asset := c.Query("asset")
	department := c.Query("department")
	svs, err := h.variantService.ListSetVariants(c.Request.Context(), asset, department)
	if err != nil {
		h.log.Error("ListSetVariants failed", "error", err, "asset", asset)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"set_variants": svs})
}

func (h *VariantHandler) DeleteSetVariant(c *gin.Context) {
	var req setVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.variantService.DeleteSetVariant(c.Request.Context(), req.Asset, req.Department, req.Name); err != nil {
		h.log.Error("DeleteSetVariant failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": req.Name})
}

type variantRequest struct {
	Asset      string `json:"asset" binding:"required"`
	Department string `json:"department" binding:"required"`
	SetVariant string `json:"set_variant" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	v, err := h.variantService.CreateVariant(c.Request.Context(), req.Asset, req.Department, req.SetVariant, req.Name)
	if err != nil {
		h.log.Error("CreateVariant failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"variant": v})
}

func (h *VariantHandler) ListVariants(c *gin.Context) {
	asset := c.Query("asset")
	department := c.Query("department")
	setVariant := c.Query("set_variant")
	vs, err := h.variantService.ListVariants(c.Request.Context(), asset, department, setVariant)
	if err != nil {
		h.log.Error("ListVariants failed", "error", err, "set_variant", setVariant)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"variants": vs})
}

func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.variantService.DeleteVariant(c.Request.Context(), req.Asset, req.Department, req.SetVariant, req.Name); err != nil {
		h.log.Error("DeleteVariant failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": req.Name})
}

type defaultVariantRequest struct {
	Asset      string `json:"asset" binding:"required"`
	Department string `json:"department" binding:"required"`
	SetVariant string `json:"set_variant" binding:"required"`
	Variant    string `json:"variant" binding:"required"`
}

func (h *VariantHandler) SetDefaultVariant(c *gin.Context) {
	var req defaultVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	err := h.variantService.SetDefaultVariant(c.Request.Context(), req.Asset, req.Department, req.SetVariant, req.Variant)
	if err != nil {
		h.log.Error("SetDefaultVariant failed", "error", err, "variant", req.Variant)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"default": req.Variant})
}
