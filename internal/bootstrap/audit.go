package bootstrap

import "context"

// AuditLog is an operator-facing lifecycle event of the process itself,
// distinct from the business activity log.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
