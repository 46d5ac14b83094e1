package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/gin-gonic/gin"
)

// ListJobs handles GET /api/v1/jobs
// Lists postings with optional filters and a sort order
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, h.logger, "query parameters", err)
		return
	}

	jobs, err := h.catalog.ListJobs(c.Request.Context(), service.JobFilter{
		Search:         req.Search,
		Type:           req.Type,
		Location:       req.Location,
		Field:          req.Field,
		IncludeExpired: req.IncludeExpired,
	}, domain.ParseJobSort(req.SortBy))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Success: true,
		Count:   len(jobs),
		Jobs:    jobs,
	})
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.catalog.GetJob(c.Request.Context(), jobID)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobResponse{Success: true, Job: job})
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "request body", err)
		return
	}

	spec := service.JobSpec{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Field:        req.Field,
		Stipend:      req.Stipend,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       req.Skills,
	}
	if req.PostedAt != nil {
		spec.PostedAt = *req.PostedAt
	}

	job, err := h.catalog.CreateJob(c.Request.Context(), caller, spec)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	h.logger.Info("CreateJob succeeded",
		slog.String("job_id", job.ID),
		slog.String("user_id", caller.UserID),
	)

	c.JSON(http.StatusCreated, dto.JobResponse{Success: true, Job: job})
}
