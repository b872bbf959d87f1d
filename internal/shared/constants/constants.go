package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys set by the auth middleware
	ContextKeySubject   = "subject"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Casbin resources and actions guarding the backend API
	ResourceOrder = "order"
	ActionRead    = "read"
	ActionCapture = "capture"
	ActionRelease = "release"
	ActionRefund  = "refund"
)
