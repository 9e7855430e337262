package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID is the gin context key holding the request ID.
	ContextKeyRequestID = "request_id"

	// HeaderRequestID carries the request ID on requests and responses.
	HeaderRequestID = "X-Request-ID"

	// BcryptCost is the work factor used when hashing passwords.
	BcryptCost = 10

	MinEmailLength = 6
	MaxEmailLength = 50

	// DefaultTaskStatus is assigned to tasks created without a status.
	DefaultTaskStatus = "open"

	// DefaultPort is used when PORT is not set.
	DefaultPort = 8660
)
