package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/middleware"
)

func paramUUID(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, code, "Invalid identifier.")
		return uuid.Nil, false
	}
	return id, true
}

// mustActor is only used behind AuthMiddleware.
func mustActor(c *gin.Context) domain.Actor {
	return c.MustGet(middleware.ContextActor).(domain.Actor)
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", "Invalid request: "+err.Error())
}
