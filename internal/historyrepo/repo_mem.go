// Package historyrepo manages data access layer of the transaction history.
package historyrepo

import (
	"context"
	"sync"
	"time"

	"github.com/nicebyy/point-ledger/internal/domain"
)

// RepoMem is an in-memory append-only transaction log shared by all accounts.
//
// Sequence ids are global across accounts and strictly increase in append
// order. Records are never mutated or deleted after Append returns.
type RepoMem struct {
	mu      sync.RWMutex
	lastID  int64
	records map[int64][]domain.Transaction
}

// NewRepoMem returns an empty in-memory transaction log.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		records: make(map[int64][]domain.Transaction),
	}
}

// Append assigns the next sequence id and stores the record.
func (r *RepoMem) Append(ctx context.Context, accountID, amount int64, kind domain.Kind, createdAt time.Time) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	tx := domain.Transaction{
		ID:        r.lastID,
		AccountID: accountID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: createdAt,
	}
	r.records[accountID] = append(r.records[accountID], tx)

	return tx, nil
}

// ReadAll returns the account's records in append order. The returned slice
// is a copy so callers cannot modify the log.
func (r *RepoMem) ReadAll(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, len(r.records[accountID]))
	copy(out, r.records[accountID])

	return out, nil
}
