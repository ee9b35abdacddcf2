package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Actor reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Actor reference
}

// NewAuditFields returns audit fields for a freshly created entity, with the
// creation and last-update slots both stamped by the same actor.
func NewAuditFields(actor string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
}

// Touch records a modification by actor at the given time.
func (a *AuditFields) Touch(actor string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actor
}
