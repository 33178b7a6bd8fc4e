package wallet

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

// BeginTxx opens a transaction for a per-wallet serialized mutation.
func (r *Repository) BeginTxx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// GetOrCreate returns the wallet for a driver, creating a zero-balance
// wallet on first lookup. Idempotent by driver identity.
func (r *Repository) GetOrCreate(ctx context.Context, driverID uuid.UUID) (*Wallet, error) {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (id, driver_id)
		VALUES ($1, $2)
		ON CONFLICT (driver_id) DO NOTHING
	`, uuid.New(), driverID); err != nil {
		return nil, err
	}

	return r.GetByDriver(ctx, driverID)
}

func (r *Repository) GetByDriver(ctx context.Context, driverID uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT * FROM wallets WHERE driver_id = $1`, driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT * FROM wallets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// LockByID loads a wallet row with FOR UPDATE so the balance
// read-compute-write is serialized per wallet.
func (r *Repository) LockByID(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := tx.GetContext(ctx, &w, `SELECT * FROM wallets WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateBalances persists the balance fields of a locked wallet.
func (r *Repository) UpdateBalances(ctx context.Context, tx *sqlx.Tx, w *Wallet) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET total_balance = $1, actual_balance = $2, pending_deduction = $3, updated_at = now()
		WHERE id = $4
	`, w.TotalBalance, w.ActualBalance, w.PendingDeduction, w.ID)
	return err
}

// Deactivate soft-disables a wallet. Returns ErrAlreadyInactive when the
// wallet exists but is already inactive.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tx, err := r.BeginTxx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	w, err := r.LockByID(ctx, tx, id)
	if err != nil {
		return err
	}
	if !w.IsActive {
		return ErrAlreadyInactive
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE wallets SET is_active = FALSE, updated_at = now() WHERE id = $1
	`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// ListActiveIDs returns the ids of every active wallet, for bulk
// operations. Cross-wallet work needs no mutual exclusion.
func (r *Repository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM wallets WHERE is_active = TRUE ORDER BY created_at`)
	return ids, err
}
