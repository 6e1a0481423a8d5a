package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zarandamon/usd-mercury-pipeline/internal/http/response"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

type DepartmentHandler struct {
	log               *logger.Logger
	departmentService services.DepartmentService
}

func NewDepartmentHandler(log *logger.Logger, departmentService services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		log:               log.With("handler", "DepartmentHandler"),
		departmentService: departmentService,
	}
}

type createDepartmentRequest struct {
	Parent parentRequest `json:"parent" binding:"required"`
	Name   string        `json:"name" binding:"required"`
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	dept, err := h.departmentService.Create(c.Request.Context(), req.Parent.names(), req.Name)
	if err != nil {
		h.log.Error("Create failed", "error", err, "parent", req.Parent.Name, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"department": dept})
}

func (h *DepartmentHandler) List(c *gin.Context) {
	var req parentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	depts, err := h.departmentService.List(c.Request.Context(), req.names())
	if err != nil {
		h.log.Error("List failed", "error", err, "parent", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"departments": depts})
}

type departmentSublayerRequest struct {
	Parent       parentRequest `json:"parent" binding:"required"`
	Name         string        `json:"name" binding:"required"`
	SublayerPath string        `json:"sublayer_path" binding:"required"`
}

func (h *DepartmentHandler) AddSublayer(c *gin.Context) {
	var req departmentSublayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.departmentService.AddSublayer(c.Request.Context(), req.Parent.names(), req.Name, req.SublayerPath); err != nil {
		h.log.Error("AddSublayer failed", "error", err, "name", req.Name, "sublayer", req.SublayerPath)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"added": req.SublayerPath})
}

func (h *DepartmentHandler) RemoveSublayer(c *gin.Context) {
	var req departmentSublayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.departmentService.RemoveSublayer(c.Request.Context(), req.Parent.names(), req.Name, req.SublayerPath); err != nil {
		h.log.Error("RemoveSublayer failed", "error", err, "name", req.Name, "sublayer", req.SublayerPath)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"removed": req.SublayerPath})
}

type deleteDepartmentRequest struct {
	Parent parentRequest `json:"parent" binding:"required"`
	Name   string        `json:"name" binding:"required"`
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	var req deleteDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.departmentService.Delete(c.Request.Context(), req.Parent.names(), req.Name); err != nil {
		h.log.Error("Delete failed", "error", err, "parent", req.Parent.Name, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": req.Name})
}
