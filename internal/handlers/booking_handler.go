package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/httpresp"
	ucBooking "github.com/bossofclean/cleaner-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *ucBooking.CreateBooking
	get        *ucBooking.GetBooking
	reschedule *ucBooking.RescheduleBooking
	cancel     *ucBooking.CancelBooking
	complete   *ucBooking.CompleteBooking
	list       *ucBooking.ListBookings
	log        *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	get *ucBooking.GetBooking,
	reschedule *ucBooking.RescheduleBooking,
	cancel *ucBooking.CancelBooking,
	complete *ucBooking.CompleteBooking,
	list *ucBooking.ListBookings,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		get:        get,
		reschedule: reschedule,
		cancel:     cancel,
		complete:   complete,
		list:       list,
		log:        log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CleanerID      string  `json:"cleaner_id" binding:"required,uuid"`
	Date           string  `json:"date" binding:"required,date"`
	StartTime      string  `json:"start_time" binding:"required,clock"`
	EstimatedHours float64 `json:"estimated_hours" binding:"required,gt=0,lte=24"`
}

type RescheduleBookingRequest struct {
	Date      string `json:"date" binding:"required,date"`
	StartTime string `json:"start_time" binding:"required,clock"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Actor:          mustActor(c),
		CleanerID:      uuid.MustParse(req.CleanerID),
		Date:           req.Date,
		StartTime:      req.StartTime,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id", "invalid_booking_id")
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), mustActor(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := paramUUID(c, "id", "invalid_booking_id")
	if !ok {
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), ucBooking.RescheduleBookingInput{
		Actor:     mustActor(c),
		BookingID: id,
		Date:      req.Date,
		StartTime: req.StartTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := paramUUID(c, "id", "invalid_booking_id")
	if !ok {
		return
	}

	// The body is optional for customers. Chunked requests report no
	// length, so an empty body only shows up as io.EOF.
	var req CancelBookingRequest
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			invalidRequest(c, err)
			return
		}
	}

	b, err := h.cancel.Execute(c.Request.Context(), ucBooking.CancelBookingInput{
		Actor:     mustActor(c),
		BookingID: id,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := paramUUID(c, "id", "invalid_booking_id")
	if !ok {
		return
	}

	b, err := h.complete.Execute(c.Request.Context(), mustActor(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// AGENDA
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "The date query parameter is required.")
		return
	}

	out, err := h.list.ByDate(c.Request.Context(), mustActor(c).ID, date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Year and month are required (month 1-12).")
		return
	}

	out, err := h.list.ByMonth(c.Request.Context(), mustActor(c).ID, year, month)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}
