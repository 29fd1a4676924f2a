package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"reservationportal/internal/domain"
)

type bcryptCodeHasher struct {
	cost int
}

// NewBcryptCodeHasher returns a CodeHasher that stores login codes as bcrypt hashes.
func NewBcryptCodeHasher(cost int) domain.CodeHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptCodeHasher{cost: cost}
}

func (h *bcryptCodeHasher) Hash(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptCodeHasher) Compare(hash, code string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}
