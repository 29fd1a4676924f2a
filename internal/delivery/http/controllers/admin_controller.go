package controllers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"reservationportal/internal/adapters/export"
	"reservationportal/internal/delivery/http/helpers"
	"reservationportal/internal/domain"
)

// CreateSlotRequest is the request body for POST /admin/slots. Capacity defaults to 5 when omitted.
type CreateSlotRequest struct {
	Date      string `json:"date" example:"2025-03-01"`
	TimeStart string `json:"time_start" example:"10:00"`
	TimeEnd   string `json:"time_end" example:"10:30"`
	Capacity  *int   `json:"capacity,omitempty" example:"5"`
}

// Validate implements Validator.
func (c CreateSlotRequest) Validate() []string {
	var errs []string
	if c.Date == "" {
		errs = append(errs, "date is required")
	}
	if c.TimeStart == "" {
		errs = append(errs, "time_start is required")
	}
	if c.TimeEnd == "" {
		errs = append(errs, "time_end is required")
	}
	return errs
}

// DeleteSlotResponse is the response body for DELETE /admin/slots/{slotID}.
type DeleteSlotResponse struct {
	Deleted              bool `json:"deleted"`
	CanceledReservations int  `json:"canceled_reservations"`
}

// CreateSlotSuccessResponse is the success response envelope for POST /admin/slots (201).
type CreateSlotSuccessResponse struct {
	Data  *domain.Slot      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminController serves slot management and reservation reporting.
type AdminController struct {
	Logger  *slog.Logger
	Booking domain.BookingService
	Slots   domain.SlotAdminService
}

func NewAdminController(logger *slog.Logger, booking domain.BookingService, slots domain.SlotAdminService) *AdminController {
	return &AdminController{Logger: logger, Booking: booking, Slots: slots}
}

// CreateSlot godoc
// @Summary Create a slot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSlotRequest true "Slot"
// @Success 201 {object} controllers.CreateSlotSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots [post]
func (c *AdminController) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	capacity := domain.DefaultSlotCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	slot, err := c.Slots.CreateSlot(r.Context(), req.Date, req.TimeStart, req.TimeEnd, capacity)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// DeleteSlot godoc
// @Summary Delete a slot
// @Description Deletes the slot and every reservation on it.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Success 200 {object} helpers.APIResponse "data contains canceled_reservations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{slotID} [delete]
func (c *AdminController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	canceled, err := c.Booking.DeleteSlot(r.Context(), r.PathValue("slotID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSlotResponse{Deleted: true, CanceledReservations: canceled})
}

// ListSlots godoc
// @Summary List slots with occupancy
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSlotsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/slots [get]
func (c *AdminController) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Slots.ListSlots(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// ListReservations godoc
// @Summary List all reservations
// @Description Every reservation with its member and slot, newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains reservation details"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/reservations [get]
func (c *AdminController) ListReservations(w http.ResponseWriter, r *http.Request) {
	rows, err := c.Slots.ListReservations(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// ExportReservations godoc
// @Summary Export reservations as CSV
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "reservations-YYYY-MM-DD.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/reservations/export [get]
func (c *AdminController) ExportReservations(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.Slots.ExportReservations(r.Context(), &buf); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
