package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a driver's ledger. TotalBalance accumulates gross lifetime
// revenue and never decreases; ActualBalance is what the driver can
// withdraw, net of platform fees; PendingDeduction is an admin fee owed
// but not yet collectible from the balance.
type Wallet struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	DriverID         uuid.UUID       `db:"driver_id" json:"driver_id"`
	TotalBalance     decimal.Decimal `db:"total_balance" json:"total_balance"`
	ActualBalance    decimal.Decimal `db:"actual_balance" json:"actual_balance"`
	PendingDeduction decimal.Decimal `db:"pending_deduction" json:"pending_deduction"`
	IsActive         bool            `db:"is_active" json:"is_active"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// ApplyPendingDeduction drains the deferred admin fee if the balance now
// covers it. Returns true when the wallet changed and needs persisting.
func (w *Wallet) ApplyPendingDeduction() bool {
	if w.PendingDeduction.IsPositive() && w.ActualBalance.GreaterThanOrEqual(w.PendingDeduction) {
		w.ActualBalance = w.ActualBalance.Sub(w.PendingDeduction)
		w.PendingDeduction = decimal.Zero
		return true
	}
	return false
}
