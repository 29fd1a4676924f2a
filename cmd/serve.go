package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "reservationportal/docs"
	"reservationportal/internal/adapters/auth"
	"reservationportal/internal/adapters/ratelimit"
	httpdelivery "reservationportal/internal/delivery/http"
	"reservationportal/internal/delivery/http/controllers"
	"reservationportal/internal/domain"
	"reservationportal/internal/services"
)

func newServeCmd() *cobra.Command {
	var (
		migrateUp  bool
		seedAdmin  string
		bcryptCost int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, migrateUp)
			if err != nil {
				return err
			}
			defer a.close()

			if seedAdmin != "" {
				if err := a.seedAdmin(ctx, seedAdmin); err != nil {
					return err
				}
			}

			rdb, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisOptions{
				Addr:     a.cfg.Redis.Addr,
				Password: a.cfg.Redis.Password,
				DB:       a.cfg.Redis.DB,
			})
			if err != nil {
				return err
			}
			if rdb != nil {
				a.closers = append(a.closers, rdb.Close)
			} else {
				a.logger.Warn("REDIS_ADDR not set, login code requests are not throttled")
			}
			throttle := ratelimit.NewLoginThrottle(rdb, a.cfg.Redis.LoginCodeLimit, a.cfg.Redis.LoginWindow)

			userSvc := services.NewUserService(a.allowList, a.loginCodes, auth.NewBcryptCodeHasher(bcryptCost), throttle,
				auth.NewJWTIssuer(a.cfg.JWTSecret), a.cfg.JWTExpiry, a.emailService, a.logger, a.cfg.ContextTimeout)

			health := controllers.NewHealthController(a.logger, nil)
			if a.db != nil {
				health.DB = a.db
			}
			mux := httpdelivery.NewRouter(httpdelivery.Controllers{
				Health: health,
				User:   controllers.NewUserController(a.logger, userSvc),
				Slot:   controllers.NewSlotController(a.logger, a.booking),
				Admin:  controllers.NewAdminController(a.logger, a.booking, a.slotAdmin),
			}, auth.NewJWTVerifier(a.cfg.JWTSecret), userSvc, a.logger)

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           httpdelivery.NewHandler(mux, a.cfg.CORSAllowedOrigins, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", "addr", srv.Addr, "env", a.cfg.Environment, "store", a.cfg.Store)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "apply database migrations on startup")
	cmd.Flags().StringVar(&seedAdmin, "seed-admin", "", "allow-list this email as an admin on startup")
	cmd.Flags().IntVar(&bcryptCost, "bcrypt-cost", 0, "bcrypt cost for login codes (0 uses the library default)")
	return cmd
}

// seedAdmin allow-lists email as an admin, promoting an existing member.
func (a *app) seedAdmin(ctx context.Context, email string) error {
	_, err := a.members.AddMember(ctx, email, "", "", true)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		_, err = a.members.SetAdmin(ctx, email, true)
	}
	return err
}
