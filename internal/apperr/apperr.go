// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind классифицирует ошибку для внешнего представления
type Kind int

const (
	// KindInternal непредвиденная ошибка инфраструктуры; детали наружу не отдаются
	KindInternal Kind = iota
	// KindValidation некорректный или отсутствующий ввод
	KindValidation
	// KindConflict нарушение уникальности
	KindConflict
	// KindUnauthorized ошибка аутентификации
	KindUnauthorized
	// KindForbidden недостаточно прав
	KindForbidden
	// KindNotFound сущность не найдена
	KindNotFound
	// KindInvalidToken токен сброса пароля недействителен
	KindInvalidToken
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidToken:
		return "invalid_token"
	default:
		return "internal_error"
	}
}

// Коды ответов, которые формируются вне сервисного слоя и не имеют Kind
const (
	CodeMethodNotAllowed = "method_not_allowed"
	CodeRateLimited      = "rate_limited"
	CodeUnavailable      = "unavailable"
)

// CodeForStatus returns the wire kind for a response built from a bare HTTP status.
func CodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation.String()
	case http.StatusUnauthorized:
		return KindUnauthorized.String()
	case http.StatusForbidden:
		return KindForbidden.String()
	case http.StatusNotFound:
		return KindNotFound.String()
	case http.StatusConflict:
		return KindConflict.String()
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return KindInternal.String()
	}
}

// FieldError описывает ошибку валидации конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified error with a caller-safe message.
// Err holds the internal cause and is only meant for logs.
type Error struct {
	Err     error
	Message string
	Fields  []FieldError
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создает классифицированную ошибку без внутренней причины
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap создает классифицированную ошибку с внутренней причиной
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal оборачивает непредвиденную ошибку в generic InternalError
func Internal(err error) *Error {
	return Wrap(KindInternal, "internal server error", err)
}

// Validation создает ошибку валидации с деталями по полям
func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
