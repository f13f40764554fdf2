package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID   = "user_id"
	ContextKeyDocument = "document"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	SessionName       = "doctrack_session"
)
