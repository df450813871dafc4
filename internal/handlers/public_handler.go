package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/httpresp"
	ucBooking "github.com/bossofclean/cleaner-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated booking flow of a cleaner's
// profile page.
type PublicHandler struct {
	availability *ucBooking.GetAvailability
	checkDate    *ucBooking.CheckDate
	log          *zap.Logger
}

func NewPublicHandler(
	availability *ucBooking.GetAvailability,
	checkDate *ucBooking.CheckDate,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		checkDate:    checkDate,
		log:          log,
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability answers GET /public/cleaners/:id/availability?date=&hours=.
func (h *PublicHandler) Availability(c *gin.Context) {
	cleanerID, ok := paramUUID(c, "id", "invalid_cleaner_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "The date query parameter is required.")
		return
	}

	hours, err := strconv.ParseFloat(c.Query("hours"), 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "The hours query parameter must be a number.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		CleanerID: cleanerID,
		Date:      date,
		Hours:     hours,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *PublicHandler) Eligibility(c *gin.Context) {
	cleanerID, ok := paramUUID(c, "id", "invalid_cleaner_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "The date query parameter is required.")
		return
	}

	out, err := h.checkDate.Execute(c.Request.Context(), cleanerID, date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}
