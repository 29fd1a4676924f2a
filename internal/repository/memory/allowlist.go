package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"reservationportal/internal/domain"
)

type allowListRepository struct {
	store *Store
}

func (r *allowListRepository) Create(_ context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.usersByEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	cp := *u
	r.store.users[u.ID] = &cp
	r.store.usersByEmail[u.Email] = u.ID
	return nil
}

func (r *allowListRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	id, ok := r.store.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.store.users[id]
	return &cp, nil
}

func (r *allowListRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *allowListRepository) SetAdmin(_ context.Context, email string, isAdmin bool) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	id, ok := r.store.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.store.users[id]
	u.IsAdmin = isAdmin
	cp := *u
	return &cp, nil
}

func (r *allowListRepository) List(_ context.Context) ([]*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	users := make([]*domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

type loginCodeRepository struct {
	store *Store
}

func (r *loginCodeRepository) Create(_ context.Context, code *domain.LoginCode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	code.ID = uuid.NewString()
	cp := *code
	r.store.codes[code.ID] = &cp
	return nil
}

func (r *loginCodeRepository) ListActive(_ context.Context, email string, now time.Time) ([]*domain.LoginCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	codes := make([]*domain.LoginCode, 0)
	for _, c := range r.store.codes {
		if c.Email == email && c.ExpiresAt.After(now) {
			cp := *c
			codes = append(codes, &cp)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ExpiresAt.After(codes[j].ExpiresAt) })
	return codes, nil
}

func (r *loginCodeRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.codes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.codes, id)
	return nil
}
