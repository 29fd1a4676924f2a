package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"reservationportal/internal/domain"
)

const (
	loginCodeDigits     = 6
	loginCodeExpiryMins = 15
)

var loginCodeRegex = regexp.MustCompile(`^\d{6}$`)

type userService struct {
	allowList      domain.AllowListRepository
	loginCodeRepo  domain.LoginCodeRepository
	hasher         domain.CodeHasher
	throttle       domain.LoginThrottle
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewUserService creates a UserService over the allow-list. throttle and emailService may be nil.
func NewUserService(
	allowList domain.AllowListRepository,
	loginCodeRepo domain.LoginCodeRepository,
	hasher domain.CodeHasher,
	throttle domain.LoginThrottle,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		allowList:      allowList,
		loginCodeRepo:  loginCodeRepo,
		hasher:         hasher,
		throttle:       throttle,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// RequestLoginCode emails a one-time code to an allow-listed member. Emails not on the list are
// rejected before a code is generated.
func (s *userService) RequestLoginCode(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.logger.WarnContext(ctx, "login throttle unavailable", "err", err)
		} else if !ok {
			return domain.ErrRateLimited
		}
	}
	user, err := s.allowList.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotAllowListed
		}
		return fmt.Errorf("failed to look up member: %w", err)
	}

	code, err := generateLoginCode(loginCodeDigits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}
	record := &domain.LoginCode{
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(loginCodeExpiryMins * time.Minute),
	}
	if err := s.loginCodeRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store login code: %w", err)
	}
	if s.emailService != nil {
		data := &domain.LoginCodeEmailData{
			Email:            email,
			FirstName:        user.FirstName,
			Code:             code,
			ExpiresInMinutes: loginCodeExpiryMins,
		}
		if err := s.emailService.SendLoginCode(ctx, data); err != nil {
			return fmt.Errorf("failed to send login code email: %w", err)
		}
	}
	return nil
}

// VerifyLoginCode consumes a matching unexpired code and issues a token. A code is single use: if
// another request consumed it first, verification fails.
func (s *userService) VerifyLoginCode(ctx context.Context, email, code string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return "", nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	code = strings.TrimSpace(code)
	if !loginCodeRegex.MatchString(code) {
		return "", nil, domain.ErrInvalidLoginCode
	}
	active, err := s.loginCodeRepo.ListActive(ctx, email, time.Now())
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify code: %w", err)
	}
	var match *domain.LoginCode
	for _, c := range active {
		if s.hasher.Compare(c.CodeHash, code) == nil {
			match = c
			break
		}
	}
	if match == nil {
		return "", nil, domain.ErrInvalidLoginCode
	}
	if err := s.loginCodeRepo.Delete(ctx, match.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidLoginCode
		}
		return "", nil, fmt.Errorf("failed to consume code: %w", err)
	}

	user, err := s.allowList.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrNotAllowListed
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Roles(), s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func generateLoginCode(digits int) (string, error) {
	const digitspace = "0123456789"
	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digitspace[int(b[i])%len(digitspace)]
	}
	return string(b), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.allowList.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// IsAdmin re-reads the member from the allow-list so a revoked flag takes effect on the next request.
func (s *userService) IsAdmin(ctx context.Context, id string) (bool, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
