package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/render"
	"github.com/pcamargo/slotbook/internal/schedule"
	"github.com/pcamargo/slotbook/internal/service"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Handlers struct {
	users        *service.UserService
	availability *service.AvailabilityService
	bookings     *service.BookingService
	logger       *zap.Logger
}

func NewHandlers(
	users *service.UserService,
	availability *service.AvailabilityService,
	bookings *service.BookingService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		users:        users,
		availability: availability,
		bookings:     bookings,
		logger:       logger,
	}
}

type registerUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type timeIntervalsRequest struct {
	Intervals []model.WeekdayInterval `json:"intervals"`
}

type createBookingRequest struct {
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	GuestName   string `json:"guest_name"`
	GuestEmail  string `json:"guest_email"`
	GuestNotes  string `json:"guest_notes"`
}

type createBlockRequest struct {
	Date string `json:"date"`
}

// RegisterUser claims a username.
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Name)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser returns the public profile of a host.
func (h *Handlers) GetUser(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetTimeIntervals replaces the host's weekly availability.
func (h *Handlers) SetTimeIntervals(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}

	var req timeIntervalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.users.SetTimeIntervals(c.Request.Context(), user.ID, req.Intervals); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BlockedDates returns the month summary used to gray out calendar days.
func (h *Handlers) BlockedDates(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	blocked, err := h.availability.BlockedFor(c.Request.Context(), user.ID, year, month)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocked)
}

// MonthAvailability returns the month grid, week by week.
func (h *Handlers) MonthAvailability(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	weeks, err := h.availability.MonthWeeks(c.Request.Context(), user.ID, year, month)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": int(month), "weeks": weeks})
}

// DayAvailability returns the slot list for one day.
func (h *Handlers) DayAvailability(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	slots, err := h.availability.DaySlots(c.Request.Context(), user.ID, date)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format(dateLayout), "slots": slots})
}

// CreateBooking reserves one slot for a guest.
func (h *Handlers) CreateBooking(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	booking, err := h.bookings.Book(c.Request.Context(), user.ID, date, req.StartMinute, service.GuestInfo{
		Name:  req.GuestName,
		Email: req.GuestEmail,
		Notes: req.GuestNotes,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CreateBlock marks a whole day as unavailable.
func (h *Handlers) CreateBlock(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}

	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	block, err := h.availability.BlockDate(c.Request.Context(), user.ID, date)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// ListBlocks lists the manually blocked dates of one month.
func (h *Handlers) ListBlocks(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	dates, err := h.availability.BlockedDatesFor(c.Request.Context(), user.ID, year, month)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	c.JSON(http.StatusOK, gin.H{"dates": out})
}

// CalendarImage renders the month grid as a PNG.
func (h *Handlers) CalendarImage(c *gin.Context) {
	user, ok := h.host(c)
	if !ok {
		return
	}
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	weeks, err := h.availability.MonthWeeks(c.Request.Context(), user.ID, year, month)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	png, err := render.MonthPNG(year, month, weeks)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// host resolves the :username path parameter. On failure the response
// is already written.
func (h *Handlers) host(c *gin.Context) (*model.User, bool) {
	user, err := h.users.Resolve(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.abortWithError(c, err)
		return nil, false
	}
	return user, true
}

// yearMonth parses the year and month query parameters. On failure the
// response is already written.
func (h *Handlers) yearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a four digit number"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func (h *Handlers) abortWithError(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "slot or date is no longer available"})
	case errors.Is(err, service.ErrPastTime):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "slot start must be in the future"})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
