package errors

import (
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is a domain error carrying the HTTP status it maps to. Business
// rules return these; the response package translates them for clients.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrConflict            = New("conflict, retry the request", http.StatusConflict)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)

	InActiveUserError = New("user account is deactivated", http.StatusUnauthorized)

	// Redemption protocol failures. Both are detected inside the locked
	// transaction, never from a prior unlocked read.
	ErrInsufficientBalance = New("insufficient points balance", http.StatusBadRequest)
	ErrOutOfStock          = New("reward out of stock", http.StatusBadRequest)
)

// ErrorHandler is the gin-rate-limit handler for throttled requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error": "too many requests, try again later",
	})
}
