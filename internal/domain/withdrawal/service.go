package withdrawal

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
)

// Ledger is the wallet capability the withdrawal lifecycle needs.
// Implemented by *wallet.Service.
type Ledger interface {
	LockByID(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*wallet.Wallet, error)
	UpdateBalances(ctx context.Context, tx *sqlx.Tx, w *wallet.Wallet) error
	Invalidate(ctx context.Context, driverID uuid.UUID)
}

type Service struct {
	repo   *Repository
	ledger Ledger

	// debitOnlyOnCompleted guards the wallet debit to the COMPLETED
	// transition. The legacy behaviour debited on any transition,
	// including FAILED.
	debitOnlyOnCompleted bool
}

func NewService(repo *Repository, ledger Ledger, debitOnlyOnCompleted bool) *Service {
	return &Service{repo: repo, ledger: ledger, debitOnlyOnCompleted: debitOnlyOnCompleted}
}

// CreateRequest carries a driver's payout request
type CreateRequest struct {
	WalletID          uuid.UUID
	Amount            decimal.Decimal
	AccountHolderName string
	BankName          string
	IFSCCode          string
	AccountNumber     string
	ContactInfo       string
}

// Create validates and persists a payout request. The wallet must exist
// and be active, the amount must fit the withdrawable balance, and at
// most one REQUESTED withdrawal may be outstanding per wallet. Nothing
// is persisted on rejection.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Withdrawal, error) {
	amount := req.Amount.Truncate(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.repo.BeginTxx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := s.ledger.LockByID(ctx, tx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if !w.IsActive {
		return nil, wallet.ErrInactive
	}
	if amount.GreaterThan(w.ActualBalance) {
		return nil, ErrInsufficientBalance
	}

	outstanding, err := s.repo.HasRequested(ctx, tx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if outstanding {
		return nil, ErrRequestOutstanding
	}

	var contact *string
	if req.ContactInfo != "" {
		contact = &req.ContactInfo
	}

	wd := &Withdrawal{
		ID:                uuid.New(),
		WalletID:          req.WalletID,
		Amount:            amount,
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		IFSCCode:          req.IFSCCode,
		AccountNumber:     req.AccountNumber,
		ContactInfo:       contact,
		Status:            StatusRequested,
	}
	if err := s.repo.Create(ctx, tx, wd); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("withdrawal_id", wd.ID.String()).
		Str("wallet_id", wd.WalletID.String()).
		Str("amount", amount.String()).
		Msg("withdrawal requested")

	return wd, nil
}

// UpdateStatus moves a withdrawal to a new lifecycle state. The wallet
// debit happens in the same transaction; when the balance is short the
// whole transition is rejected and nothing changes.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Withdrawal, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tx, err := s.repo.BeginTxx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	wd, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if wd.Status.Terminal() {
		return nil, ErrAlreadyFinal
	}

	debit := !s.debitOnlyOnCompleted || status == StatusCompleted
	var w *wallet.Wallet
	if debit {
		w, err = s.ledger.LockByID(ctx, tx, wd.WalletID)
		if err != nil {
			return nil, err
		}
		if w.ActualBalance.LessThan(wd.Amount) {
			return nil, ErrInsufficientBalance
		}
		w.ActualBalance = w.ActualBalance.Sub(wd.Amount)
		if err := s.ledger.UpdateBalances(ctx, tx, w); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateStatus(ctx, tx, id, status); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if w != nil {
		s.ledger.Invalidate(ctx, w.DriverID)
	}

	wd.Status = status
	log.Info().
		Str("withdrawal_id", wd.ID.String()).
		Str("wallet_id", wd.WalletID.String()).
		Str("status", string(status)).
		Bool("debited", debit).
		Msg("withdrawal status updated")

	return wd, nil
}

func (s *Service) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*Withdrawal, error) {
	return s.repo.ListByWallet(ctx, walletID)
}

func (s *Service) ListRequested(ctx context.Context) ([]*Withdrawal, error) {
	return s.repo.ListRequested(ctx)
}
