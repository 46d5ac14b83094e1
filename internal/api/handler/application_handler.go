package handler

import (
	"net/http"

	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/gin-gonic/gin"
)

// Apply handles POST /api/v1/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "request body", err)
		return
	}

	app, err := h.tracker.Apply(c.Request.Context(), caller, req.JobID, req.IsGoalCompany)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplicationResponse{Success: true, Application: app})
}

// ListApplications handles GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	apps, err := h.tracker.ListForOwner(c.Request.Context(), caller)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{
		Success:      true,
		Count:        len(apps),
		Applications: apps,
	})
}

// Summary handles GET /api/v1/applications/summary
func (h *ApplicationHandler) Summary(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	summary, err := h.tracker.Summary(c.Request.Context(), caller)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Success: true, Summary: summary})
}

// UpdateStatus handles PATCH /api/v1/applications/:id
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "request body", err)
		return
	}

	app, err := h.tracker.SetStatus(c.Request.Context(), caller, c.Param("id"), service.StatusChange{
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		Notes:           req.Notes,
	})
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationResponse{Success: true, Application: app})
}
