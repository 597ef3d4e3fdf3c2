package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrInvalidInput   = New(http.StatusBadRequest, "Invalid input", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrConflict       = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrTokenExpired       = New(http.StatusUnauthorized, "Token expired", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
	ErrTokenRequired      = New(http.StatusForbidden, "Token required", nil)
)

// Domain error types
var (
	ErrUserNotFound    = New(http.StatusNotFound, "User not found", nil)
	ErrCartNotFound    = New(http.StatusNotFound, "Cart not found", nil)
	ErrProductNotFound = New(http.StatusNotFound, "Product not found", nil)
	ErrEmailTaken      = New(http.StatusConflict, "Email already registered", nil)
)

// NewInvalidInput returns an InvalidInput error with a specific message.
func NewInvalidInput(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NewGatewayError wraps a payment gateway failure. The provider's payload is
// carried verbatim in the message so the caller sees the original error detail.
func NewGatewayError(detail string, err error) *Error {
	return New(http.StatusInternalServerError, detail, err)
}

// From converts any error into an *Error, defaulting to InternalServer.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// Respond writes err as a JSON response with the matching status code.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	c.JSON(appErr.Code, gin.H{"code": appErr.Code, "message": appErr.Message})
}

// ErrorMiddleware translates errors attached to the gin context into a JSON
// response. Handlers may call c.Error(err) and return.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			appErr := From(c.Errors.Last().Err)
			c.JSON(appErr.Code, gin.H{"code": appErr.Code, "message": appErr.Message})
			c.Abort()
		}
	}
}
