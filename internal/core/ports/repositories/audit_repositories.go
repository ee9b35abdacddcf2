package repositories

import (
	"context"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// AuditRepository appends best-effort audit trail records. Failures are logged
// by callers and never abort the enclosing operation.
type AuditRepository interface {
	AppendEvent(ctx context.Context, event domain.AuditEvent) error
}
