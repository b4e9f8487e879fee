package models

import "time"

// Role определяет уровень доступа пользователя
type Role string

const (
	// RoleStudent роль по умолчанию, выдается при публичной регистрации
	RoleStudent Role = "student"
	// RoleAdmin создается только out-of-band (bootstrap), никогда через регистрацию
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User представляет пользователя в системе
type User struct {
	CreatedAt     time.Time `json:"created_at"`     // время создания
	UpdatedAt     time.Time `json:"updated_at"`     // время последнего обновления
	FullName      string    `json:"full_name"`      // полное имя
	ContactNumber string    `json:"contact_number"` // контактный телефон
	Email         string    `json:"email"`          // уникальный email (lower-case)
	PasswordHash  string    `json:"-"`              // bcrypt хеш, наружу не отдается
	Role          Role      `json:"role"`           // student | admin
	ID            int64     `json:"id"`             // автоинкрементный идентификатор
}

// Identity is the user record without credential material.
// It is what the access gate attaches to the request context.
type Identity struct {
	CreatedAt     time.Time
	FullName      string
	ContactNumber string
	Email         string
	Role          Role
	ID            int64
}

// Identity возвращает представление пользователя без password hash
func (u *User) Identity() Identity {
	return Identity{
		ID:            u.ID,
		FullName:      u.FullName,
		ContactNumber: u.ContactNumber,
		Email:         u.Email,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
	}
}
