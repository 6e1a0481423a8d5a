package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zarandamon/usd-mercury-pipeline/internal/http/response"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/services"
)

type WorkfileHandler struct {
	log             *logger.Logger
	workfileService services.WorkfileService
}

func NewWorkfileHandler(log *logger.Logger, workfileService services.WorkfileService) *WorkfileHandler {
	return &WorkfileHandler{
		log:             log.With("handler", "WorkfileHandler"),
		workfileService: workfileService,
	}
}

type createTaskRequest struct {
	Parent     parentRequest `json:"parent" binding:"required"`
	Department string        `json:"department" binding:"required"`
	Software   string        `json:"software" binding:"required"`
	Name       string        `json:"name" binding:"required"`
}

func (h *WorkfileHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	task, err := h.workfileService.CreateTask(c.Request.Context(), req.Parent.names(), req.Department, req.Software, req.Name)
	if err != nil {
		h.log.Error("CreateTask failed", "error", err, "name", req.Name)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"task": task})
}

func (h *WorkfileHandler) ListTasks(c *gin.Context) {
	var req parentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	department := c.Query("department")
	tasks, err := h.workfileService.ListTasks(c.Request.Context(), req.names(), department)
	if err != nil {
		h.log.Error("ListTasks failed", "error", err, "department", department)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"tasks": tasks})
}

type createFileRequest struct {
	Parent     parentRequest `json:"parent" binding:"required"`
	Department string        `json:"department" binding:"required"`
	Task       string        `json:"task" binding:"required"`
	Software   string        `json:"software" binding:"required"`
	Ext        string        `json:"ext" binding:"required"`
	Comment    string        `json:"comment"`
}

func (h *WorkfileHandler) CreateFile(c *gin.Context) {
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	f, err := h.workfileService.CreateFile(c.Request.Context(), req.Parent.names(), req.Department, req.Task, req.Software, req.Ext, req.Comment)
	if err != nil {
		h.log.Error("CreateFile failed", "error", err, "task", req.Task)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"file": f})
}

func (h *WorkfileHandler) ListFiles(c *gin.Context) {
	var req parentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	department := c.Query("department")
	task := c.Query("task")
	files, err := h.workfileService.ListFiles(c.Request.Context(), req.names(), department, task)
	if err != nil {
		h.log.Error("ListFiles failed", "error", err, "task", task)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"files": files})
}

func (h *WorkfileHandler) FilePath(c *gin.Context) {
	var req parentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	version, err := strconv.Atoi(c.Query("version"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	department := c.Query("department")
	task := c.Query("task")
	path, err := h.workfileService.FilePath(c.Request.Context(), req.names(), department, task, version)
	if err != nil {
		h.log.Error("FilePath failed", "error", err, "task", task, "version", version)
		response.RespondError(c, statusFor(err), codeFor(err), err)
		return
	}
	response.RespondOK(c, gin.H{"path": path})
}
