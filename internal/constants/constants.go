package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID        = "user_id"
	ContextKeyProject       = "project"
	ContextKeyProjectMember = "project_member"
	ContextKeyColumn        = "column"
	ContextKeyTask          = "task"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
