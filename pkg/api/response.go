package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "garment-oms/pkg/errors"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List       []T             `json:"list"`
	Pagination *PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// SuccessOne returns a single object wrapped in the standard envelope.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}

	if list == nil {
		list = make([]T, 0)
	}

	body := ListBody[T]{
		List: list,
		Pagination: &PaginationMeta{
			TotalCount: total,
			TotalPages: totalPages,
			Page:       page,
			Limit:      limit,
		},
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    body,
	})
}

// ErrorResponse maps application errors to HTTP statuses. HttpError takes
// priority; sentinel errors fall back to a fixed table.
func ErrorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	msg := err.Error()

	var httpErr *apperrors.HttpError
	var invalidInput *apperrors.InvalidInputError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		msg = httpErr.Message
	case errors.As(err, &invalidInput):
		code = http.StatusUnprocessableEntity
	case errors.As(err, &validationErrs):
		code = http.StatusUnprocessableEntity
		msg = "validation failed"
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, apperrors.ErrBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrTokenIsNotAccess):
		code = http.StatusUnauthorized
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: msg,
	})
}
