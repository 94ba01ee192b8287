package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListByActor(ctx context.Context, actor string, limit int) ([]domain.AuditEvent, error)
}

// AuditRecorder accepts events for asynchronous persistence. Record must not
// block the request path beyond queue admission.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
