// Package httperr defines the error taxonomy shared by all resource services
// and its mapping to HTTP responses. Services return these types; handlers
// call ToHTTP and never invent status codes of their own.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrUnauthorized means the request carried no usable owner identity.
var ErrUnauthorized = errors.New("unauthorized")

// FieldError describes a single field-rule failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more field-rule failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Fields[0].Field + " " + e.Fields[0].Message
}

// Validation wraps field errors into a ValidationError.
func Validation(fields []FieldError) error {
	return &ValidationError{Fields: fields}
}

// NotFoundError means the record is absent or owned by another user. The two
// causes are indistinguishable on purpose so existence of other owners'
// records never leaks.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NotFound returns a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ConflictError means an insert-if-absent race the store could not resolve.
type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string {
	return e.Resource + " conflict"
}

// AssetError means the asset store failed to persist or serve a file.
type AssetError struct {
	Op  string
	Err error
}

func (e *AssetError) Error() string {
	return "asset " + e.Op + ": " + e.Err.Error()
}

func (e *AssetError) Unwrap() error { return e.Err }

// DeliveryError means the notifier failed to deliver a message.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ToHTTP maps a service error onto an echo HTTP error. Unrecognized errors
// become opaque 500s so internals never reach the client.
func ToHTTP(err error) error {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		ae *AssetError
		de *DeliveryError
	)
	switch {
	case errors.Is(err, ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{"errors": ve.Fields})
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	case errors.As(err, &ce):
		return echo.NewHTTPError(http.StatusConflict, ce.Error())
	case errors.As(err, &ae):
		return echo.NewHTTPError(http.StatusBadGateway, "asset storage failed")
	case errors.As(err, &de):
		return echo.NewHTTPError(http.StatusBadGateway, "email delivery failed")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
