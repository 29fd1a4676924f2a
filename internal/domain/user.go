package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for member operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Role codes carried in issued tokens.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// ValidEmail reports whether email (already normalized) looks like an address.
func ValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// User is an allow-listed member. Members are created by the allow-listing process and are
// immutable afterwards except for IsAdmin.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser validates and returns a new User. ID is typically set by the repository on create.
func NewUser(email, firstName, lastName string, isAdmin bool, createdAt time.Time) (*User, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return &User{
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		IsAdmin:   isAdmin,
		CreatedAt: createdAt,
	}, nil
}

// FullName returns "first last", trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Roles returns the role codes for the user's token.
func (u *User) Roles() []string {
	if u.IsAdmin {
		return []string{RoleMember, RoleAdmin}
	}
	return []string{RoleMember}
}

// LoginCode is a stored one-time login code. Only the hash is persisted.
type LoginCode struct {
	ID        string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
}

// CodeHasher hashes and verifies one-time login codes.
type CodeHasher interface {
	Hash(code string) (string, error)
	Compare(hash, code string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// LoginThrottle limits how often a key (an email) may request login codes.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AllowListRepository stores allow-listed members.
type AllowListRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// LoginCodeRepository defines the interface for one-time login code storage.
type LoginCodeRepository interface {
	Create(ctx context.Context, code *LoginCode) error
	// ListActive returns unexpired codes for the email, newest first.
	ListActive(ctx context.Context, email string, now time.Time) ([]*LoginCode, error)
	// Delete removes a code. It returns ErrNotFound when the code was already consumed.
	Delete(ctx context.Context, id string) error
}

// UserService defines member authentication and lookup.
type UserService interface {
	RequestLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	IsAdmin(ctx context.Context, id string) (bool, error)
}

// MemberService manages the allow-list. It backs the CLI used by the allow-listing process.
type MemberService interface {
	AddMember(ctx context.Context, email, firstName, lastName string, isAdmin bool) (*User, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*User, error)
	ListMembers(ctx context.Context) ([]*User, error)
}
