package withdrawal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the withdrawal lifecycle state. Only a closed set is
// accepted; REQUESTED must not coexist twice for one wallet.
type Status string

const (
	StatusRequested  Status = "REQUESTED"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions. Repeating
// COMPLETED would debit the wallet again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Withdrawal is a driver's payout request against their wallet
type Withdrawal struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	WalletID          uuid.UUID       `db:"wallet_id" json:"wallet_id"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	AccountHolderName string          `db:"account_holder_name" json:"account_holder_name"`
	BankName          string          `db:"bank_name" json:"bank_name"`
	IFSCCode          string          `db:"ifsc_code" json:"ifsc_code"`
	AccountNumber     string          `db:"account_number" json:"account_number"`
	ContactInfo       *string         `db:"contact_info" json:"contact_info,omitempty"`
	Status            Status          `db:"status" json:"status"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}
