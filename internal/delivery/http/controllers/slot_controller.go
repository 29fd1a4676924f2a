package controllers

import (
	"log/slog"
	"net/http"

	"reservationportal/internal/delivery/http/helpers"
	"reservationportal/internal/delivery/http/middleware"
	"reservationportal/internal/domain"
)

// CancelResponse is the response body for DELETE /slots/{slotID}/reservation.
type CancelResponse struct {
	Canceled bool `json:"canceled"`
}

// ListSlotsSuccessResponse is the success response envelope for GET /slots (200).
type ListSlotsSuccessResponse struct {
	Data  []*domain.SlotAvailability `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// BookSuccessResponse is the success response envelope for POST /slots/{slotID}/reservation (201).
type BookSuccessResponse struct {
	Data  *domain.Reservation `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SlotController serves the member booking endpoints.
type SlotController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewSlotController(logger *slog.Logger, svc domain.BookingService) *SlotController {
	return &SlotController{Logger: logger, Service: svc}
}

// ListSlots godoc
// @Summary List bookable slots
// @Description All slots ordered by date and start time, with booked count, remaining seats and whether the caller holds each one.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSlotsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots [get]
func (c *SlotController) ListSlots(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	slots, err := c.Service.ListSlots(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// ListMyReservations godoc
// @Summary List my reservations
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains reservations with their slots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/me [get]
func (c *SlotController) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rs, err := c.Service.ListMyReservations(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rs)
}

// Book godoc
// @Summary Book a slot
// @Description Reserves one seat on the slot for the caller.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Success 201 {object} controllers.BookSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_booked or slot_full"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{slotID}/reservation [post]
func (c *SlotController) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reservation, err := c.Service.Book(r.Context(), userID, r.PathValue("slotID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reservation)
}

// Cancel godoc
// @Summary Cancel my reservation
// @Description Idempotent. data.canceled is false when there was nothing to cancel.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Success 200 {object} helpers.APIResponse "data.canceled"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{slotID}/reservation [delete]
func (c *SlotController) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	canceled, err := c.Service.Cancel(r.Context(), userID, r.PathValue("slotID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CancelResponse{Canceled: canceled})
}
