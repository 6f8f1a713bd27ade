package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies business failures so the API layer can map each to a
// distinct response code.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "notFound"
	KindValidation     ErrorKind = "validation"
	KindConflict       ErrorKind = "conflict"
	KindForbidden      ErrorKind = "forbidden"
	KindInvalidState   ErrorKind = "invalidState"
	KindInfrastructure ErrorKind = "infrastructure"
)

// ServiceError is the error type returned by the service layer.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func NewNotFound(msg string) error     { return &ServiceError{Kind: KindNotFound, Message: msg} }
func NewValidation(msg string) error   { return &ServiceError{Kind: KindValidation, Message: msg} }
func NewConflict(msg string) error     { return &ServiceError{Kind: KindConflict, Message: msg} }
func NewForbidden(msg string) error    { return &ServiceError{Kind: KindForbidden, Message: msg} }
func NewInvalidState(msg string) error { return &ServiceError{Kind: KindInvalidState, Message: msg} }

// NewInfrastructure wraps a persistence or cache failure. The cause is kept
// for logging but never serialized to the client.
func NewInfrastructure(msg string, err error) error {
	return &ServiceError{Kind: KindInfrastructure, Message: msg, Err: err}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error to the appropriate HTTP status and writes
// the JSON error body. Infrastructure failures are logged with their cause and
// surfaced as a generic message.
func RespondError(c *gin.Context, err error) {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		GetLogger().Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
		return
	}

	switch svcErr.Kind {
	case KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Message: svcErr.Message})
	case KindValidation, KindInvalidState:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: svcErr.Message})
	case KindConflict:
		c.JSON(http.StatusConflict, ErrorResponse{Message: svcErr.Message})
	case KindForbidden:
		c.JSON(http.StatusForbidden, ErrorResponse{Message: svcErr.Message})
	default:
		GetLogger().Error("Infrastructure error", zap.String("message", svcErr.Message), zap.Error(svcErr.Err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
	}
}
