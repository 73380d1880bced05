package security

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

// MinPasswordLen mirrors the binding rule on registration requests so
// the hasher never accepts what the API surface would have rejected.
const MinPasswordLen = 8

// PasswordHasher abstracts credential hashing for the auth service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

// BCryptHasher hashes passwords with bcrypt at a configurable cost.
type BCryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher at the given cost. Costs outside the
// bcrypt range are clamped to the library default.
func NewBcryptHasher(cost int) *BCryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BCryptHasher{cost: cost}
}

func (h *BCryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", apperrors.Validationf("password must be at least %d characters", MinPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return string(hash), nil
}

func (h *BCryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
