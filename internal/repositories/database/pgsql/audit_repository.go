package pgsql

import (
	"context"
	"fmt"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuditRepository creates a new repository for the audit trail. Writes
// are best-effort: callers log append failures and move on.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) AppendEvent(ctx context.Context, event domain.AuditEvent) error {
	query := `
		INSERT INTO audit_events (audit_event_id, entity_type, entity_id, action, actor, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		event.AuditEventID,
		event.EntityType,
		event.EntityID,
		event.Action,
		event.Actor,
		event.Details,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit event for %s %s: %w", event.EntityType, event.EntityID, err)
	}
	return nil
}
