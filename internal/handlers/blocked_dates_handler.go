package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/httpresp"
	"github.com/bossofclean/cleaner-scheduler/internal/usecase/schedule"
)

type BlockedDatesHandler struct {
	blocked *schedule.BlockedDates
	log     *zap.Logger
}

func NewBlockedDatesHandler(blocked *schedule.BlockedDates, log *zap.Logger) *BlockedDatesHandler {
	return &BlockedDatesHandler{blocked: blocked, log: log}
}

type BlockDateRequest struct {
	Date   string `json:"date" binding:"required,date"`
	Reason string `json:"reason" binding:"max=255"`
}

func (h *BlockedDatesHandler) List(c *gin.Context) {
	includePast := c.Query("include_past") == "true"

	rows, err := h.blocked.List(c.Request.Context(), mustActor(c).ID, includePast)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *BlockedDatesHandler) Add(c *gin.Context) {
	var req BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	bd, err := h.blocked.Add(c.Request.Context(), mustActor(c).ID, req.Date, req.Reason)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, bd)
}

func (h *BlockedDatesHandler) Remove(c *gin.Context) {
	if err := h.blocked.Remove(c.Request.Context(), mustActor(c).ID, c.Param("date")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
