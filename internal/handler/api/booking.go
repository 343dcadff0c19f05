package api

import (
	"context"
	"net/http"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/user"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Request a booking for an apartment over [start_date, end_date)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	in, err := req.ToInput(tenantID)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}

	created, err := h.cmds.Create(c.Request.Context(), in)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}

	c.Header("Location", "/api/bookings/"+created.ID().String())
	h.respondWithView(c, http.StatusCreated, created.ID())
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.q.ListByTenant(c.Request.Context(), userID, query.Limit)
	h.respondWithList(c, views, err)
}

// @Summary List bookings awaiting approval
// @Description Pending and admin-approved bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/pending [get]
func (h *BookingHandler) ListPending(c *gin.Context) {
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.q.ListPending(c.Request.Context(), query.Limit)
	h.respondWithList(c, views, err)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}

	// Tenants only see their own bookings; anything else reads as missing.
	if role, _ := middleware.GetUserRole(c); role == user.RoleTenant {
		if userID, _ := middleware.GetUserID(c); userID != view.TenantID {
			abortWithBookingError(c, errs.ErrBookingNotFound)
			return
		}
	}

	writeView(c, http.StatusOK, view)
}

// @Summary Admin approval
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/approve/admin [put]
func (h *BookingHandler) ApproveAdmin(c *gin.Context) {
	h.transition(c, h.cmds.AdminApprove)
}

// @Summary Owner approval
// @Description Re-prices the booking at the current rate and issues the invoice
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings/{id}/approve/owner [put]
func (h *BookingHandler) ApproveOwner(c *gin.Context) {
	h.transition(c, h.cmds.OwnerApprove)
}

// @Summary Reject booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/reject [put]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, h.cmds.Reject)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	if _, err := apply(c.Request.Context(), id); err != nil {
		abortWithBookingError(c, err)
		return
	}

	h.respondWithView(c, http.StatusOK, id)
}

func (h *BookingHandler) respondWithView(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	writeView(c, status, view)
}

func (h *BookingHandler) respondWithList(c *gin.Context, views []*queries.BookingView, err error) {
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookings", nil)
		return
	}
	resp, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeView(c *gin.Context, status int, view *queries.BookingView) {
	resp, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render booking", nil)
		return
	}
	c.JSON(status, resp)
}

func bookingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
