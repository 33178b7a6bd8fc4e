package payment

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the payment order state. Transitions only move
// forward: PENDING -> SUCCESS or PENDING -> FAILED.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Method represents how the rider paid the fare
type Method string

const (
	MethodCard Method = "CARD"
	MethodUPI  Method = "UPI"
	MethodCash Method = "CASH"
)

// JSONRawMessage handles NULL json fields from DB
type JSONRawMessage []byte

func (j *JSONRawMessage) Scan(src any) error {
	if src == nil {
		*j = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = []byte(v)
	default:
		return fmt.Errorf("unsupported type: %T", src)
	}
	return nil
}

func (j JSONRawMessage) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// Value implements driver.Valuer so sqlx can serialize metadata → JSONB.
func (j JSONRawMessage) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Payment represents a gateway-backed payment intent for a ride
type Payment struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	WalletID  uuid.UUID       `db:"wallet_id" json:"wallet_id"`
	RideID    uuid.UUID       `db:"ride_id" json:"ride_id"`
	RiderID   uuid.UUID       `db:"rider_id" json:"rider_id"`
	DriverID  uuid.UUID       `db:"driver_id" json:"driver_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Method    Method          `db:"method" json:"payment_method"`
	Status    Status          `db:"status" json:"status"`
	Metadata  JSONRawMessage  `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// IsSettled reports whether the payment already reached SUCCESS and its
// settlement has been applied.
func (p *Payment) IsSettled() bool {
	return p.Status == StatusSuccess
}
