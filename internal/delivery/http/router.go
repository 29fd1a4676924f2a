package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"reservationportal/internal/delivery/http/controllers"
	"reservationportal/internal/delivery/http/middleware"
	"reservationportal/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Health *controllers.HealthController
	User   *controllers.UserController
	Slot   *controllers.SlotController
	Admin  *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, admins middleware.AdminChecker, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	admin := middleware.RequireAdmin(verifier, admins, logger)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Auth
	mux.HandleFunc("POST /auth/login-code", c.User.RequestLoginCode)
	mux.HandleFunc("POST /auth/verify", c.User.VerifyLoginCode)
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))

	// Member booking
	mux.HandleFunc("GET /slots", auth(c.Slot.ListSlots))
	mux.HandleFunc("GET /reservations/me", auth(c.Slot.ListMyReservations))
	mux.HandleFunc("POST /slots/{slotID}/reservation", auth(c.Slot.Book))
	mux.HandleFunc("DELETE /slots/{slotID}/reservation", auth(c.Slot.Cancel))

	// Admin
	mux.HandleFunc("GET /admin/slots", admin(c.Admin.ListSlots))
	mux.HandleFunc("POST /admin/slots", admin(c.Admin.CreateSlot))
	mux.HandleFunc("DELETE /admin/slots/{slotID}", admin(c.Admin.DeleteSlot))
	mux.HandleFunc("GET /admin/reservations", admin(c.Admin.ListReservations))
	mux.HandleFunc("GET /admin/reservations/export", admin(c.Admin.ExportReservations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with CORS and access logging.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.CORS(allowedOrigins, middleware.LoggingMiddleware(logger, mux))
}
