package services

import (
	"context"
	"fmt"
	"time"

	"reservationportal/internal/domain"
)

type memberService struct {
	allowList      domain.AllowListRepository
	contextTimeout time.Duration
}

// NewMemberService returns the allow-list management service used by the CLI.
func NewMemberService(allowList domain.AllowListRepository, timeout time.Duration) domain.MemberService {
	return &memberService{allowList: allowList, contextTimeout: timeout}
}

func (s *memberService) AddMember(ctx context.Context, email, firstName, lastName string, isAdmin bool) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := domain.NewUser(email, firstName, lastName, isAdmin, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.allowList.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *memberService) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	return s.allowList.SetAdmin(ctx, email, isAdmin)
}

func (s *memberService) ListMembers(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.allowList.List(ctx)
}
