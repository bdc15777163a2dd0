package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/listings-marketplace/internal/domain"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails возвращает копию ошибки с деталями (шаблоны не мутируются)
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// FromDomain переводит доменные ошибки в AppError с сообщением для пользователя
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		details := make(map[string]interface{}, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = fe.Tag()
		}
		return ErrInvalidRequest.WithDetails(details)
	}

	switch {
	case stderrors.Is(err, domain.ErrListingNotFound):
		return ErrListingNotFound
	case stderrors.Is(err, domain.ErrBlankField):
		return ErrInvalidRequest
	case stderrors.Is(err, domain.ErrEmptyLocation), stderrors.Is(err, domain.ErrNoResults):
		return ErrInvalidLocation
	case stderrors.Is(err, domain.ErrAuthConfig):
		return ErrGeocoderMisconfigured
	case stderrors.Is(err, domain.ErrQuotaExceeded):
		return ErrGeocoderQuota
	case stderrors.Is(err, domain.ErrProvider):
		return ErrGeocoder
	}

	return ErrInternalServer
}
