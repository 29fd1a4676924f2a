package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"reservationportal/config"
	"reservationportal/internal/adapters/email"
	"reservationportal/internal/adapters/events"
	"reservationportal/internal/adapters/export"
	"reservationportal/internal/domain"
	"reservationportal/internal/repository/memory"
	"reservationportal/internal/repository/migrations"
	"reservationportal/internal/repository/postgres"
	"reservationportal/internal/services"
)

// app is the wiring shared by every command: configuration, the selected store and the services
// built on it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	slots        domain.SlotRepository
	reservations domain.ReservationRepository
	admission    domain.AdmissionStore
	allowList    domain.AllowListRepository
	loginCodes   domain.LoginCodeRepository

	emailService domain.EmailService
	publisher    domain.EventPublisher

	booking   domain.BookingService
	slotAdmin domain.SlotAdminService
	members   domain.MemberService

	closers []func() error
}

// newApp loads configuration and opens the store. With migrate set, pending Postgres migrations
// are applied before anything else touches the database.
func newApp(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: config.NewLogger(cfg.Environment, cfg.LogLevel)}

	switch cfg.Store {
	case "memory":
		a.logger.Warn("using in-memory store; data is lost on exit")
		store := memory.NewStore()
		a.slots = store.Slots()
		a.reservations = store.Reservations()
		a.admission = store
		a.allowList = store.AllowList()
		a.loginCodes = store.LoginCodes()
	default:
		db, err := openPostgres(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		if migrate {
			if _, err := migrations.Up(ctx, db, a.logger); err != nil {
				a.close()
				return nil, err
			}
		}
		a.slots = postgres.NewSlotRepository(db)
		a.reservations = postgres.NewReservationRepository(db)
		a.admission = postgres.NewAdmissionStore(db)
		a.allowList = postgres.NewAllowListRepository(db)
		a.loginCodes = postgres.NewLoginCodeRepository(db)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.emailService = services.NewEmailService(mailer, email.NewTemplateRenderer())
	a.publisher = a.newPublisher()

	a.booking = services.NewBookingService(a.slots, a.reservations, a.admission, a.allowList,
		a.emailService, a.publisher, a.logger, cfg.ContextTimeout, cfg.BookingMaxRetries)
	a.slotAdmin = services.NewSlotAdminService(a.slots, a.reservations, export.NewCSVExporter(), cfg.ContextTimeout)
	a.members = services.NewMemberService(a.allowList, cfg.ContextTimeout)
	return a, nil
}

// newPublisher connects to RabbitMQ when configured. A broker that cannot be reached degrades to
// logging events instead of failing the command.
func (a *app) newPublisher() domain.EventPublisher {
	if a.cfg.RabbitMQURL == "" {
		return &events.LogPublisher{Logger: a.logger}
	}
	pub, err := events.NewRabbitMQPublisher(a.cfg.RabbitMQURL, a.cfg.EventsExchange)
	if err != nil {
		a.logger.Warn("rabbitmq unavailable, logging reservation events instead", "err", err)
		return &events.LogPublisher{Logger: a.logger}
	}
	a.closers = append(a.closers, pub.Close)
	a.logger.Info("publishing reservation events", "exchange", a.cfg.EventsExchange)
	return pub
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

var errNeedsPostgres = errors.New("this command requires STORE=postgres")
