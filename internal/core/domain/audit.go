package domain

import "time"

// AuditEvent is a best-effort trail record. Appending one must never abort
// the operation it describes.
type AuditEvent struct {
	AuditEventID string    `json:"auditEventID"`
	EntityType   string    `json:"entityType"` // e.g. "journal_entry", "transaction"
	EntityID     string    `json:"entityID"`
	Action       string    `json:"action"` // e.g. "posted", "reconciled"
	Actor        string    `json:"actor"`
	Details      string    `json:"details"`
	OccurredAt   time.Time `json:"occurredAt"`
}
