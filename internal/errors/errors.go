package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a failure for the HTTP layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindPersistence
)

// statusByKind is the single mapping from failure kind to HTTP status.
// Persistence failures surface as 400 to keep the public contract.
var statusByKind = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindConflict:       http.StatusBadRequest,
	KindAuthentication: http.StatusUnauthorized,
	KindUnauthorized:   http.StatusUnauthorized,
	KindForbidden:      http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindPersistence:    http.StatusBadRequest,
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status for k, or 500 for unknown kinds.
func (k Kind) Status() int {
	if status, ok := statusByKind[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error tags an underlying error with a Kind. Message, when set, replaces
// the error text in responses.
type Error struct {
	Kind    Kind
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with kind. A nil err stays nil.
func E(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// M wraps err with kind and a message safe to show to clients.
func M(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err, Message: message}
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Message != "" {
		return tagged.Message
	}
	return err.Error()
}

// KindOf returns the kind of the outermost tagged error in err's chain.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

// APIError represents an error response body
type APIError struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes one failed field validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// RespondWithError sends an error response and aborts the handler chain
func RespondWithError(c *gin.Context, statusCode int, body APIError) {
	c.AbortWithStatusJSON(statusCode, body)
}

// Respond sends err with the status derived from its kind. title becomes the
// "error" field and MessageOf(err) the "message".
func Respond(c *gin.Context, title string, err error) {
	_ = c.Error(err)
	RespondWithError(c, StatusOf(err), APIError{
		Error:   title,
		Message: MessageOf(err),
	})
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, APIError{Error: "Unauthorized", Message: message})
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	RespondWithError(c, http.StatusForbidden, APIError{Error: "Forbidden", Message: message})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, title string) {
	RespondWithError(c, http.StatusNotFound, APIError{Error: title})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, title, message string) {
	RespondWithError(c, http.StatusBadRequest, APIError{Error: title, Message: message})
}

// ValidationFailed sends a 400 response listing field errors
func ValidationFailed(c *gin.Context, fields []FieldError) {
	RespondWithError(c, http.StatusBadRequest, APIError{Error: "Validation failed", Errors: fields})
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, APIError{Error: "Internal server error", Message: message})
}
