package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost количество раундов bcrypt (2^12 итераций)
const DefaultCost = 12

// ErrMismatch indicates that the password does not match the stored hash.
var ErrMismatch = errors.New("password does not match")

// PasswordHasher хеширует и проверяет пароли с помощью bcrypt
// Соль генерируется bcrypt для каждого хеша и хранится внутри него
type PasswordHasher struct {
	dummy []byte
	cost  int
}

// NewPasswordHasher создает hasher с заданной стоимостью
// Значения вне диапазона bcrypt заменяются на DefaultCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	// Хеш для выравнивания времени ответа, когда пользователь не найден
	dummy, err := bcrypt.GenerateFromPassword([]byte("capsort-timing-equalizer"), cost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt: %v", err))
	}

	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Hash хеширует plaintext пароль
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify сравнивает пароль с хешем
// Returns ErrMismatch for a wrong password and a wrapped error for a corrupt hash.
func (h *PasswordHasher) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("failed to verify password: %w", err)
}

// VerifyDummy burns the same bcrypt time as Verify against a fixed hash.
// Always returns ErrMismatch.
func (h *PasswordHasher) VerifyDummy(password string) error {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	return ErrMismatch
}

// NeedsRehash reports whether hash was produced with a lower cost than configured.
func (h *PasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < h.cost
}
