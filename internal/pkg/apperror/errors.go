package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInvalidState  ErrorCode = "INVALID_STATE"
	ErrCodeTransient     ErrorCode = "TRANSIENT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал с копиями сентинелов.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeInvalidState:
		return http.StatusConflict
	case ErrCodeTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или INTERNAL_ERROR для ошибок вне таксономии.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Retryable сообщает, имеет ли смысл повторять операцию.
// Conflict повторяется после перечитывания состояния, Transient с backoff.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case ErrCodeConflict, ErrCodeTransient:
		return true
	}
	return false
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

func IsInvalidState(err error) bool {
	return CodeOf(err) == ErrCodeInvalidState
}

func IsTransient(err error) bool {
	return CodeOf(err) == ErrCodeTransient
}

var (
	ErrPostNotFound       = New(ErrCodeNotFound, "пост не найден")
	ErrRequestNotFound    = New(ErrCodeNotFound, "заявка не найдена")
	ErrDisputeNotFound    = New(ErrCodeNotFound, "спор не найден")
	ErrUnauthorized       = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden          = New(ErrCodeForbidden, "недостаточно прав")
	ErrNotParty           = New(ErrCodeForbidden, "вы не участник этой заявки")
	ErrAdminOnly          = New(ErrCodeForbidden, "действие доступно только администратору")
	ErrVersionConflict    = New(ErrCodeConflict, "заявка была изменена параллельно, обновите данные")
	ErrDisputeExists      = New(ErrCodeConflict, "спор по этой заявке уже открыт")
	ErrAlreadyRated       = New(ErrCodeConflict, "вы уже оценили эту заявку")
	ErrPostUnavailable    = New(ErrCodeInvalidState, "у поста не осталось свободных свайпов")
	ErrStorageTimeout     = New(ErrCodeTransient, "хранилище не ответило вовремя, повторите попытку")
	ErrStorageUnavailable = New(ErrCodeTransient, "хранилище временно недоступно")
)
