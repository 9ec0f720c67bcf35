package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/giquina/armora-sub001/internal/domain/booking"
	"github.com/giquina/armora-sub001/internal/domain/risk"
)

type updateBookingRequest struct {
	Origin         *string               `json:"origin"`
	Destination    *string               `json:"destination"`
	ScenarioID     *string               `json:"scenarioId"`
	TierID         *string               `json:"tierId"`
	Timing         *booking.TimingChoice `json:"timing"`
	ScheduledAt    *time.Time            `json:"scheduledAt"`
	Terms          map[string]bool       `json:"terms"`
	AcceptAllTerms bool                  `json:"acceptAllTerms"`
}

func (r updateBookingRequest) toUpdate() booking.Update {
	return booking.Update{
		Origin:         r.Origin,
		Destination:    r.Destination,
		ScenarioID:     r.ScenarioID,
		TierID:         r.TierID,
		Timing:         r.Timing,
		ScheduledAt:    r.ScheduledAt,
		Terms:          r.Terms,
		AcceptAllTerms: r.AcceptAllTerms,
	}
}

// StartBooking opens a new booking session for the caller.
func (h *Handler) StartBooking(c *gin.Context) {
	view, err := h.bookingSvc.Start(c.Request.Context(), getOwner(c))
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := h.bookingSvc.Get(c.Request.Context(), getOwner(c), id)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateBooking applies a partial edit. Omitted fields are left alone.
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	view, err := h.bookingSvc.Update(c.Request.Context(), getOwner(c), id, req.toUpdate())
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AssessBooking finalizes a complete answer set and attaches it to the draft.
func (h *Handler) AssessBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req struct {
		Answers []risk.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	view, err := h.bookingSvc.Assess(c.Request.Context(), getOwner(c), id, req.Answers)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitBooking charges the caller. It blocks until the gateway answers, the
// submission is cancelled, or the client goes away.
func (h *Handler) SubmitBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	assignment, err := h.bookingSvc.Submit(c.Request.Context(), getOwner(c), id)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *Handler) CancelSubmission(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	cancelled, err := h.bookingSvc.CancelSubmission(c.Request.Context(), getOwner(c), id)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

func (h *Handler) ExportBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	export, err := h.bookingSvc.Export(c.Request.Context(), getOwner(c), id)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}

func (h *Handler) ResumeBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := h.bookingSvc.Resume(c.Request.Context(), getOwner(c), id)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RecentDestinations lists the caller's recent destinations. Guests identify
// themselves with the session query parameter.
func (h *Handler) RecentDestinations(c *gin.Context) {
	owner := getOwner(c)
	key := owner.Key(uuid.Nil)
	if owner.Guest() {
		sessionID, err := uuid.Parse(c.Query("session"))
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "guests must pass a valid session id", err))
			return
		}
		key = owner.Key(sessionID)
	}
	items, err := h.bookingSvc.RecentDestinations(c.Request.Context(), key)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": items})
}

// Assignments lists confirmed bookings for the signed in caller.
func (h *Handler) Assignments(c *gin.Context) {
	items, err := h.bookingSvc.History(c.Request.Context(), getOwner(c))
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": items})
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "booking id must be a uuid", err))
		return uuid.Nil, false
	}
	return id, true
}
