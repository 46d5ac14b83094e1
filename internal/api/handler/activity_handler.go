package handler

import (
	"net/http"

	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// ListActivity handles GET /api/v1/activity
// Lists the caller's recent activity, newest first, with cursor pagination
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.ListActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, h.logger, "query parameters", err)
		return
	}

	cursor, err := DecodeActivityCursor(req.Cursor)
	if err != nil {
		badRequest(c, h.logger, "cursor", err)
		return
	}

	page, err := h.activity.Recent(c.Request.Context(), caller, req.Limit, cursor)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListActivityResponse{
		Success:    true,
		Count:      len(page.Activities),
		Activities: page.Activities,
		NextCursor: EncodeActivityCursor(page.Next),
	})
}
