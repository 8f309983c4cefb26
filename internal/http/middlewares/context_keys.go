package middlewares

const (
	// gin context keys set by RequestID / RequireAuth
	CtxRequestID = "request_id"
	ctxUserIDKey = "auth.userID"
	ctxEmailKey  = "auth.email"
)
