package api

import "time"

// RegisterRequest представляет запрос на регистрацию студента
type RegisterRequest struct {
	FullName      string `json:"fullName" validate:"required,min=2,max=100"`
	ContactNumber string `json:"contactNumber" validate:"required,phone"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Password      string `json:"password" validate:"required,password"`
	Role          string `json:"role,omitempty"` // admin запрещен, любое другое значение игнорируется
}

// LoginRequest представляет запрос на аутентификацию (student и admin)
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest запрос ссылки для сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest запрос на установку нового пароля
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// UpdateProfileRequest запрос на изменение профиля
type UpdateProfileRequest struct {
	FullName      string `json:"fullName" validate:"required,min=2,max=100"`
	ContactNumber string `json:"contactNumber" validate:"required,phone"`
	Email         string `json:"email" validate:"required,email,max=254"`
}

// User представление пользователя без password hash
type User struct {
	CreatedAt     time.Time `json:"createdAt"`
	FullName      string    `json:"fullName"`
	ContactNumber string    `json:"contactNumber"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	ID            int64     `json:"id"`
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
}

// MessageResponse ответ, содержащий только сообщение
type MessageResponse struct {
	Message string `json:"message"`
}

// FieldError описывает ошибку валидации поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string       `json:"error"`             // описание ошибки
	Kind    string       `json:"kind"`              // машинно-читаемый вид ошибки
	Message string       `json:"message,omitempty"` // дополнительное сообщение
	Details []FieldError `json:"details,omitempty"` // ошибки валидации по полям
}
