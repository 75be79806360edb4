package domain

type CtxKey string

const (
	// KeyRequestID holds the per-request correlation ID on context.Context and gin.Context
	KeyRequestID CtxKey = "RequestID"
)

// RequestIDHeader is echoed on every response
const RequestIDHeader = "X-Request-ID"
