package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogLister interface {
	List(ctx context.Context, cleanerID uuid.UUID, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLogLister
	log  *zap.Logger
}

func NewAuditLogsHandler(logs AuditLogLister, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	cleanerID := mustActor(c).ID

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------
	if s := c.Query("from"); s != "" {
		from, err := models.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use the YYYY-MM-DD format.")
			return
		}
		f.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := models.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use the YYYY-MM-DD format.")
			return
		}
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), cleanerID, f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
