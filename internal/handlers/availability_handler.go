package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/httpresp"
	"github.com/bossofclean/cleaner-scheduler/internal/usecase/schedule"
)

// AvailabilityHandler manages the cleaner's own weekly rules.
type AvailabilityHandler struct {
	get    *schedule.GetWeeklyAvailability
	update *schedule.UpdateWeeklyAvailability
	log    *zap.Logger
}

func NewAvailabilityHandler(
	get *schedule.GetWeeklyAvailability,
	update *schedule.UpdateWeeklyAvailability,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{get: get, update: update, log: log}
}

type WeeklyRuleRequest struct {
	// Monday=0 .. Sunday=6
	DayOfWeek   *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required,clock"`
	EndTime     string `json:"end_time" binding:"required,clock"`
	IsAvailable *bool  `json:"is_available"`
}

type WeeklyAvailabilityRequest struct {
	Rules []WeeklyRuleRequest `json:"rules" binding:"dive"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	rows, err := h.get.Execute(c.Request.Context(), mustActor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

// Update replaces the whole week.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req WeeklyAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	rules := make([]schedule.WeeklyRuleInput, 0, len(req.Rules))
	for _, r := range req.Rules {
		available := true
		if r.IsAvailable != nil {
			available = *r.IsAvailable
		}
		rules = append(rules, schedule.WeeklyRuleInput{
			DayOfWeek:   *r.DayOfWeek,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			IsAvailable: available,
		})
	}

	rows, err := h.update.Execute(c.Request.Context(), mustActor(c).ID, rules)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}
