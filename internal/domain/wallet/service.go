package wallet

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheTTL = 60 * time.Second

type Service struct {
	repo  *Repository
	cache *redis.Client // nil disables caching
}

func NewService(repo *Repository, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetOrCreate returns the driver's wallet, creating it lazily on first
// lookup.
func (s *Service) GetOrCreate(ctx context.Context, driverID uuid.UUID) (*Wallet, error) {
	w, err := s.repo.GetOrCreate(ctx, driverID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, w)
	return w, nil
}

// GetByDriver returns the driver's wallet, serving from cache when
// possible.
func (s *Service) GetByDriver(ctx context.Context, driverID uuid.UUID) (*Wallet, error) {
	if w := s.cacheGet(ctx, driverID); w != nil {
		return w, nil
	}

	w, err := s.repo.GetByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, w)
	return w, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	return s.repo.GetByID(ctx, id)
}

// Deactivate soft-disables a wallet. Inactive wallets are excluded from
// bulk bonuses and withdrawal issuance; reactivation is not supported.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.Invalidate(ctx, w.DriverID)
	log.Info().Str("wallet_id", id.String()).Str("driver_id", w.DriverID.String()).Msg("wallet deactivated")
	return nil
}

// ApplyPendingDeduction opportunistically drains the deferred admin fee.
// No-op (no write) when nothing is owed or the balance is short.
func (s *Service) ApplyPendingDeduction(ctx context.Context, walletID uuid.UUID) error {
	tx, err := s.repo.BeginTxx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	w, err := s.repo.LockByID(ctx, tx, walletID)
	if err != nil {
		return err
	}

	if !w.ApplyPendingDeduction() {
		return nil
	}

	if err := s.repo.UpdateBalances(ctx, tx, w); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.Invalidate(ctx, w.DriverID)
	log.Info().
		Str("wallet_id", w.ID.String()).
		Str("actual_balance", w.ActualBalance.String()).
		Msg("pending deduction drained")
	return nil
}

// BeginTxx opens a transaction for callers composing a wallet mutation
// with their own rows (settlement, withdrawal debit).
func (s *Service) BeginTxx(ctx context.Context) (*sqlx.Tx, error) {
	return s.repo.BeginTxx(ctx)
}

// LockByID loads and row-locks a wallet inside an open transaction.
func (s *Service) LockByID(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Wallet, error) {
	return s.repo.LockByID(ctx, tx, id)
}

// UpdateBalances persists the balance fields of a locked wallet.
func (s *Service) UpdateBalances(ctx context.Context, tx *sqlx.Tx, w *Wallet) error {
	return s.repo.UpdateBalances(ctx, tx, w)
}

// ListActiveIDs returns every active wallet id.
func (s *Service) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListActiveIDs(ctx)
}

// Invalidate drops the cached wallet for a driver after any mutation.
func (s *Service) Invalidate(ctx context.Context, driverID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(driverID)).Err(); err != nil {
		log.Warn().Err(err).Str("driver_id", driverID.String()).Msg("wallet cache invalidation failed")
	}
}

func (s *Service) cacheGet(ctx context.Context, driverID uuid.UUID) *Wallet {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, cacheKey(driverID)).Bytes()
	if err != nil {
		return nil
	}
	var w Wallet
	if err := json.Unmarshal(data, &w); err != nil {
		return nil
	}
	return &w
}

func (s *Service) cacheSet(ctx context.Context, w *Wallet) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(w.DriverID), data, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("driver_id", w.DriverID.String()).Msg("wallet cache write failed")
	}
}

func cacheKey(driverID uuid.UUID) string {
	return "wallet:driver:" + driverID.String()
}
