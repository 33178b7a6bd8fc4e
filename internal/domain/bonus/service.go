package bonus

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
)

// Ledger is the wallet capability bonus dispensing needs.
// Implemented by *wallet.Service.
type Ledger interface {
	BeginTxx(ctx context.Context) (*sqlx.Tx, error)
	LockByID(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*wallet.Wallet, error)
	UpdateBalances(ctx context.Context, tx *sqlx.Tx, w *wallet.Wallet) error
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Invalidate(ctx context.Context, driverID uuid.UUID)
}

type Service struct {
	ledger Ledger
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Grant credits a bonus to a single wallet. Any outstanding
// pending_deduction is drained from the bonus before the remainder
// reaches the withdrawable balance.
func (s *Service) Grant(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*wallet.Wallet, error) {
	amount = amount.Truncate(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.ledger.BeginTxx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := s.grant(ctx, tx, walletID, amount)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.ledger.Invalidate(ctx, w.DriverID)

	log.Info().
		Str("wallet_id", walletID.String()).
		Str("amount", amount.String()).
		Msg("bonus granted")

	return w, nil
}

// GrantAll credits the same bonus to every active wallet, each in its
// own transaction. Wallets that fail are skipped and counted, the rest
// still receive theirs.
func (s *Service) GrantAll(ctx context.Context, amount decimal.Decimal) (granted, failed int, err error) {
	amount = amount.Truncate(2)
	if !amount.IsPositive() {
		return 0, 0, ErrInvalidAmount
	}

	ids, err := s.ledger.ListActiveIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range ids {
		if _, err := s.Grant(ctx, id, amount); err != nil {
			log.Error().Err(err).
				Str("wallet_id", id.String()).
				Msg("bulk bonus grant failed for wallet")
			failed++
			continue
		}
		granted++
	}

	log.Info().
		Int("granted", granted).
		Int("failed", failed).
		Str("amount", amount.String()).
		Msg("bulk bonus grant finished")

	return granted, failed, nil
}

func (s *Service) grant(ctx context.Context, tx *sqlx.Tx, walletID uuid.UUID, amount decimal.Decimal) (*wallet.Wallet, error) {
	w, err := s.ledger.LockByID(ctx, tx, walletID)
	if err != nil {
		return nil, err
	}
	if !w.IsActive {
		return nil, wallet.ErrInactive
	}

	credit := amount
	if w.PendingDeduction.IsPositive() {
		drained := decimal.Min(w.PendingDeduction, amount)
		w.PendingDeduction = w.PendingDeduction.Sub(drained)
		credit = amount.Sub(drained)
	}
	w.ActualBalance = w.ActualBalance.Add(credit)
	w.TotalBalance = w.TotalBalance.Add(amount)
	w.ApplyPendingDeduction()

	if err := s.ledger.UpdateBalances(ctx, tx, w); err != nil {
		return nil, err
	}
	return w, nil
}
