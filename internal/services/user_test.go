package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservationportal/internal/domain"
	"reservationportal/internal/repository/memory"
)

type userFixture struct {
	store    *memory.Store
	svc      domain.UserService
	email    *fakeEmailService
	issuer   *fakeTokenIssuer
	throttle *fakeThrottle
	member   *domain.User
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	store := memory.NewStore()
	member, err := domain.NewUser("ada@example.com", "Ada", "Lovelace", true, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.AllowList().Create(context.Background(), member))

	f := &userFixture{
		store:    store,
		email:    &fakeEmailService{},
		issuer:   &fakeTokenIssuer{},
		throttle: &fakeThrottle{allow: true},
		member:   member,
	}
	f.svc = NewUserService(store.AllowList(), store.LoginCodes(), fakeCodeHasher{}, f.throttle, f.issuer, time.Hour, f.email, discardLogger(), 5*time.Second)
	return f
}

func TestUserService_RequestLoginCode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		prepare   func(f *userFixture)
		errIs     error
		wantEmail bool
	}{
		{name: "member gets a code", email: "  ADA@example.com ", wantEmail: true},
		{name: "not allow-listed", email: "eve@example.com", errIs: domain.ErrNotAllowListed},
		{name: "malformed email", email: "nope", errIs: domain.ErrInvalidInput},
		{
			name:    "throttled",
			email:   "ada@example.com",
			prepare: func(f *userFixture) { f.throttle.allow = false },
			errIs:   domain.ErrRateLimited,
		},
		{
			name:      "throttle outage fails open",
			email:     "ada@example.com",
			prepare:   func(f *userFixture) { f.throttle.err = errors.New("redis down") },
			wantEmail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			err := f.svc.RequestLoginCode(ctx, tt.email)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Empty(t, f.email.loginCodes)
				return
			}
			require.NoError(t, err)
			require.Len(t, f.email.loginCodes, 1)
			sent := f.email.loginCodes[0]
			assert.Equal(t, "ada@example.com", sent.Email)
			assert.Equal(t, "Ada", sent.FirstName)
			assert.Regexp(t, `^\d{6}$`, sent.Code)
			assert.Equal(t, loginCodeExpiryMins, sent.ExpiresInMinutes)
		})
	}
}

func TestUserService_VerifyLoginCode(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	require.NoError(t, f.svc.RequestLoginCode(ctx, "ada@example.com"))
	code := f.email.loginCodes[0].Code

	_, _, err := f.svc.VerifyLoginCode(ctx, "ada@example.com", "000000x")
	require.ErrorIs(t, err, domain.ErrInvalidLoginCode)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, _, err = f.svc.VerifyLoginCode(ctx, "ada@example.com", wrong)
	require.ErrorIs(t, err, domain.ErrInvalidLoginCode)

	token, user, err := f.svc.VerifyLoginCode(ctx, "Ada@Example.com", code)
	require.NoError(t, err)
	assert.Equal(t, "token-"+f.member.ID, token)
	assert.Equal(t, f.member.ID, user.ID)
	assert.Equal(t, []string{domain.RoleMember, domain.RoleAdmin}, f.issuer.lastRoles)

	_, _, err = f.svc.VerifyLoginCode(ctx, "ada@example.com", code)
	require.ErrorIs(t, err, domain.ErrInvalidLoginCode, "codes are single use")
}

func TestUserService_VerifyLoginCode_Expired(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	require.NoError(t, f.store.LoginCodes().Create(ctx, &domain.LoginCode{
		Email:     "ada@example.com",
		CodeHash:  "hash-123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, _, err := f.svc.VerifyLoginCode(ctx, "ada@example.com", "123456")
	require.ErrorIs(t, err, domain.ErrInvalidLoginCode)
}

func TestUserService_IsAdmin(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)

	isAdmin, err := f.svc.IsAdmin(ctx, f.member.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	_, err = f.store.AllowList().SetAdmin(ctx, "ada@example.com", false)
	require.NoError(t, err)
	isAdmin, err = f.svc.IsAdmin(ctx, f.member.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = f.svc.IsAdmin(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
