package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) BeginTxx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (r *Repository) Create(ctx context.Context, p *Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, wallet_id, ride_id, rider_id, driver_id, amount, method, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.WalletID, p.RideID, p.RiderID, p.DriverID, p.Amount, p.Method, p.Status, p.Metadata)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, `SELECT * FROM payments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDForUpdate loads a payment row with FOR UPDATE so a status
// transition and its settlement are exactly-once.
func (r *Repository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Payment, error) {
	var p Payment
	err := tx.GetContext(ctx, &p, `SELECT * FROM payments WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkSuccess flips a payment to SUCCESS with the merged confirmation
// payload. Caller holds the row lock.
func (r *Repository) MarkSuccess(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, metadata JSONRawMessage) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE payments SET status = $1, metadata = $2, updated_at = now() WHERE id = $3
	`, StatusSuccess, metadata, id)
	return err
}

// MarkFailed records the terminal FAILED state so no order is left
// PENDING forever after a gateway or signature failure.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = now() WHERE id = $2 AND status = $3
	`, StatusFailed, id, StatusPending)
	return err
}

// ListSuccessful returns SUCCESS payments, optionally filtered by wallet
// or ride.
func (r *Repository) ListSuccessful(ctx context.Context, walletID, rideID *uuid.UUID) ([]*Payment, error) {
	query := `SELECT * FROM payments WHERE status = $1`
	args := []interface{}{StatusSuccess}

	if walletID != nil {
		args = append(args, *walletID)
		query += ` AND wallet_id = $2`
	}
	if rideID != nil {
		args = append(args, *rideID)
		if walletID != nil {
			query += ` AND ride_id = $3`
		} else {
			query += ` AND ride_id = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	payments := []*Payment{}
	err := r.db.SelectContext(ctx, &payments, query, args...)
	return payments, err
}
