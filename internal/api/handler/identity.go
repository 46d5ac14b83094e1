package handler

import (
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/gin-gonic/gin"
)

const identityKey = "interniq.identity"

// SetIdentity stores the authenticated caller on the request context
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the caller stored by the auth middleware
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

// requireCaller returns the authenticated identity or writes 401 and
// reports false
func requireCaller(c *gin.Context, logger *slog.Logger) (domain.Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		RespondError(c, logger, domain.NewError(domain.KindUnauthorized, "not authorized, no token"))
	}
	return id, ok
}
