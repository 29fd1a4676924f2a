package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"reservationportal/internal/delivery/http/helpers"
	"reservationportal/internal/delivery/http/middleware"
	"reservationportal/internal/domain"
)

// LoginCodeRequest is the request body for POST /auth/login-code
type LoginCodeRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (l LoginCodeRequest) Validate() []string {
	email := domain.NormalizeEmail(l.Email)
	if email == "" {
		return []string{"email is required"}
	}
	if !domain.ValidEmail(email) {
		return []string{"invalid email format"}
	}
	return nil
}

// VerifyLoginCodeRequest is the request body for POST /auth/verify
type VerifyLoginCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate implements Validator.
func (v VerifyLoginCodeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(v.Code) == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/verify
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// LoginCodeSentResponse is the response body for POST /auth/login-code
type LoginCodeSentResponse struct {
	Sent bool `json:"sent"`
}

// LoginSuccessResponse is the success response envelope for POST /auth/verify (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetMeSuccessResponse is the success response envelope for GET /users/me (200).
type GetMeSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles login and profile endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// RequestLoginCode godoc
// @Summary Request a login code
// @Description Emails a 6-digit one-time code to an allow-listed member. The code expires after 15 minutes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginCodeRequest true "Member email"
// @Success 200 {object} helpers.APIResponse "data.sent is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (email not registered)"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login-code [post]
func (c *UserController) RequestLoginCode(w http.ResponseWriter, r *http.Request) {
	var req LoginCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.RequestLoginCode(r.Context(), req.Email); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginCodeSentResponse{Sent: true})
}

// VerifyLoginCode godoc
// @Summary Verify a login code
// @Description Exchanges a login code for a JWT. Each code can be used once.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyLoginCodeRequest true "Email and code"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/verify [post]
func (c *UserController) VerifyLoginCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyLoginCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.VerifyLoginCode(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: user})
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated member's profile. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetMeSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
