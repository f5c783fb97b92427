package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fixmycity/issue-service/internal/errs"
	"github.com/fixmycity/issue-service/internal/model"
	"github.com/fixmycity/issue-service/internal/service"
	"github.com/fixmycity/issue-service/internal/storage"
	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	svc     *service.IssueService
	uploads *storage.Store
}

func NewIssueHandler(svc *service.IssueService, uploads *storage.Store) *IssueHandler {
	return &IssueHandler{svc: svc, uploads: uploads}
}

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrIssueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrInvalidUpload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *IssueHandler) Create(c *gin.Context) {
	issue := &model.Issue{
		Title:         c.PostForm("title"),
		Category:      c.PostForm("category"),
		Location:      c.PostForm("location"),
		Description:   c.PostForm("description"),
		Priority:      c.PostForm("priority"),
		ReporterName:  c.PostForm("reporter_name"),
		ReporterEmail: c.PostForm("reporter_email"),
		ReporterPhone: c.PostForm("reporter_phone"),
	}

	// The image field is optional; a missing file is not an error.
	if file, err := c.FormFile("image"); err == nil {
		name, err := h.uploads.Save(file)
		if err != nil {
			respondError(c, err)
			return
		}
		issue.ImagePath = name
	}

	if err := h.svc.Create(c.Request.Context(), issue); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": issue.ID, "message": "Issue reported successfully"})
}

func (h *IssueHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	issue, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *IssueHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("status"); v != "" {
		filter["status = ?"] = v
	}
	if v := c.Query("category"); v != "" {
		filter["category = ?"] = v
	}
	if v := c.Query("priority"); v != "" {
		filter["priority = ?"] = v
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}
