package middleware

type ctxKey string

const (
	ContextRequestID ctxKey = "request_id"
	ContextSubject   ctxKey = "subject"
	ContextRole      ctxKey = "role"
)
