package dto

import (
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// ReconcileResponse reports the outcome of a reconciliation batch.
type ReconcileResponse struct {
	Reconciled int               `json:"reconciled"`
	Failures   map[string]string `json:"failures,omitempty"`
}

// ToReconcileResponse converts a domain.ReconcileResult to its DTO
func ToReconcileResponse(result *domain.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		Reconciled: result.Reconciled,
		Failures:   result.Failures,
	}
}
