// Package ledgerservice manages business logic layer of the point ledger.
package ledgerservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nicebyy/point-ledger/internal/domain"
	"github.com/nicebyy/point-ledger/internal/events"
	"github.com/nicebyy/point-ledger/pkg/keylock"
)

// BalanceRepo provides data access layer interface needed by the ledger service.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type BalanceRepo interface {
	Read(ctx context.Context, accountID int64) (domain.Balance, error)
	Write(ctx context.Context, accountID, amount int64) (domain.Balance, error)
}

// HistoryRepo provides data access layer interface for the transaction log.
type HistoryRepo interface {
	Append(ctx context.Context, accountID, amount int64, kind domain.Kind, createdAt time.Time) (domain.Transaction, error)
	ReadAll(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Service is the only component that mutates account balances. Every
// mutation runs its read-validate-write-append sequence while holding the
// account's lock, so calls for the same account are linearized and the
// balance and its history stay mutually consistent. Calls for different
// accounts never block each other.
type Service struct {
	balanceRepo BalanceRepo
	historyRepo HistoryRepo
	policy      Policy
	locks       *keylock.Manager
	publisher   events.Publisher
}

// New returns a ledger service. The publisher may be nil to disable
// post-commit event publishing.
func New(br BalanceRepo, hr HistoryRepo, pub events.Publisher) *Service {
	return &Service{
		balanceRepo: br,
		historyRepo: hr,
		locks:       keylock.New(),
		publisher:   pub,
	}
}

// GetBalance returns the account's current balance. It does not take the
// account lock: writers serialize among themselves, so a plain read is at
// worst one commit stale.
func (s *Service) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	balance, err := s.balanceRepo.Read(ctx, accountID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return domain.Balance{}, err
	}

	return balance, nil
}

// GetHistory returns the account's transaction records in append order. An
// unseen account yields an empty sequence.
func (s *Service) GetHistory(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	records, err := s.historyRepo.ReadAll(ctx, accountID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return nil, err
	}

	return records, nil
}

// Charge increases the account's balance by amount and appends a CHARGE
// record. It fails with domain.ErrBalanceExceedsLimit without changing any
// state when the result would exceed the cap.
func (s *Service) Charge(ctx context.Context, accountID, amount int64) (domain.Balance, error) {
	balance, tx, err := s.commit(ctx, accountID, amount, domain.KindCharge)
	if err != nil {
		return domain.Balance{}, err
	}

	s.publish(ctx, tx, balance)

	return balance, nil
}

// Use decreases the account's balance by amount and appends a USE record. It
// fails with domain.ErrNotEnoughBalance without changing any state when the
// balance cannot cover the amount.
func (s *Service) Use(ctx context.Context, accountID, amount int64) (domain.Balance, error) {
	balance, tx, err := s.commit(ctx, accountID, amount, domain.KindUse)
	if err != nil {
		return domain.Balance{}, err
	}

	s.publish(ctx, tx, balance)

	return balance, nil
}

// commit executes read-validate-write-append as one unit under the account's
// lock. The lock is released on every exit path; nothing slow or external
// runs while it is held.
func (s *Service) commit(ctx context.Context, accountID, amount int64, kind domain.Kind) (domain.Balance, domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	balance, err := s.balanceRepo.Read(ctx, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Balance{}, domain.Transaction{}, err
	}

	var next int64

	switch kind {
	case domain.KindCharge:
		err = s.policy.ValidateCharge(balance, amount)
		next = balance.Amount + amount
	case domain.KindUse:
		err = s.policy.ValidateUse(balance, amount)
		next = balance.Amount - amount
	}

	if err != nil {
		l.Info().Int64("account_id", accountID).Int64("amount", amount).Err(err).Send()
		return domain.Balance{}, domain.Transaction{}, err
	}

	updated, err := s.balanceRepo.Write(ctx, accountID, next)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Balance{}, domain.Transaction{}, err
	}

	tx, err := s.historyRepo.Append(ctx, accountID, amount, kind, updated.UpdatedAt)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Balance{}, domain.Transaction{}, err
	}

	return updated, tx, nil
}

// publish emits the committed transaction. Publishing is best effort: a
// failure is logged and never rolls back or masks the commit.
func (s *Service) publish(ctx context.Context, tx domain.Transaction, balance domain.Balance) {
	if s.publisher == nil {
		return
	}

	event := events.TransactionCommitted{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Amount:        tx.Amount,
		Kind:          tx.Kind,
		Balance:       balance.Amount,
		OccurredAt:    tx.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("cannot publish transaction event")
	}
}
