package withdrawal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
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

// Create inserts a new REQUESTED withdrawal. The partial unique index on
// (wallet_id) WHERE status = 'REQUESTED' backs the single-outstanding-
// request rule; a violation maps to ErrRequestOutstanding.
func (r *Repository) Create(ctx context.Context, tx *sqlx.Tx, wd *Withdrawal) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO withdrawals (id, wallet_id, amount, account_holder_name, bank_name, ifsc_code, account_number, contact_info, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, wd.ID, wd.WalletID, wd.Amount, wd.AccountHolderName, wd.BankName, wd.IFSCCode, wd.AccountNumber, wd.ContactInfo, wd.Status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRequestOutstanding
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	var wd Withdrawal
	err := r.db.GetContext(ctx, &wd, `SELECT * FROM withdrawals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// GetByIDForUpdate row-locks a withdrawal for a status transition.
func (r *Repository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Withdrawal, error) {
	var wd Withdrawal
	err := tx.GetContext(ctx, &wd, `SELECT * FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// HasRequested reports whether the wallet already has an outstanding
// REQUESTED withdrawal.
func (r *Repository) HasRequested(ctx context.Context, tx *sqlx.Tx, walletID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM withdrawals WHERE wallet_id = $1 AND status = $2)
	`, walletID, StatusRequested)
	return exists, err
}

func (r *Repository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status Status) error {
	_, err := tx.ExecContext(ctx, `UPDATE withdrawals SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *Repository) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*Withdrawal, error) {
	withdrawals := []*Withdrawal{}
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM withdrawals WHERE wallet_id = $1 ORDER BY created_at DESC
	`, walletID)
	return withdrawals, err
}

// ListRequested returns the global queue of outstanding requests.
func (r *Repository) ListRequested(ctx context.Context) ([]*Withdrawal, error) {
	withdrawals := []*Withdrawal{}
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM withdrawals WHERE status = $1 ORDER BY created_at
	`, StatusRequested)
	return withdrawals, err
}
