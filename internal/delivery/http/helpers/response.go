package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"reservationportal/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeAlreadyBooked = "already_booked"
	ErrCodeSlotFull      = "slot_full"
	ErrCodeRateLimited   = "rate_limited"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// ErrorFor maps a service error to its HTTP status, error code and client message. ok is false for
// unexpected errors, which callers should log; their message is generic.
func ErrorFor(err error) (status int, code, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrInvalidLoginCode):
		return http.StatusUnauthorized, ErrCodeUnauthorized, domain.ErrInvalidLoginCode.Error(), true
	case errors.Is(err, domain.ErrNotAllowListed):
		return http.StatusForbidden, ErrCodeForbidden, domain.ErrNotAllowListed.Error(), true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden, domain.ErrForbidden.Error(), true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound, domain.ErrUserNotFound.Error(), true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, domain.ErrNotFound.Error(), true
	case errors.Is(err, domain.ErrAlreadyBooked):
		return http.StatusConflict, ErrCodeAlreadyBooked, domain.ErrAlreadyBooked.Error(), true
	case errors.Is(err, domain.ErrSlotFull):
		return http.StatusConflict, ErrCodeSlotFull, domain.ErrSlotFull.Error(), true
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, ErrCodeConflict, err.Error(), true
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrCodeRateLimited, domain.ErrRateLimited.Error(), true
	}
	return http.StatusInternalServerError, ErrCodeInternalError, "internal server error", false
}
