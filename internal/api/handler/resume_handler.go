package handler

import (
	"net/http"

	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// Upload handles POST /api/v1/resume/upload
func (h *ResumeHandler) Upload(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.UploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "request body", err)
		return
	}

	resume, err := h.scorer.Analyze(c.Request.Context(), caller, req.FileName)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ResumeResponse{Success: true, Resume: resume})
}

// Current handles GET /api/v1/resume. The resume is null before the first
// upload.
func (h *ResumeHandler) Current(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	resume, err := h.scorer.Current(c.Request.Context(), caller)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResumeResponse{Success: true, Resume: resume})
}

// History handles GET /api/v1/resume/history
func (h *ResumeHandler) History(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	resumes, err := h.scorer.History(c.Request.Context(), caller)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResumesResponse{
		Success: true,
		Count:   len(resumes),
		Resumes: resumes,
	})
}
