package shared

// Background task types
const (
	TypeDeleteContentBlob = "content:delete_blob"
)

// Context keys set by middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)
