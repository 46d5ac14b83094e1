package handler

import (
	"errors"
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// RespondError writes err as an error body with the status of its kind.
// Internal errors are logged and replaced by a generic message.
func RespondError(c *gin.Context, logger *slog.Logger, err error) {
	kind := domain.KindOf(err)
	message := err.Error()

	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	if kind == domain.KindInternal {
		logger.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		message = "internal server error"
	}

	c.AbortWithStatusJSON(kind.HTTPStatus(), dto.ErrorResponse{
		Error: dto.ErrorBody{Kind: string(kind), Message: message},
	})
}

func badRequest(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Info("Invalid "+what, slog.String("error", err.Error()))
	RespondError(c, logger, domain.NewError(domain.KindValidation, "invalid "+what+": "+err.Error()))
}
