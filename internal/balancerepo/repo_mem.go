// Package balancerepo manages data access layer of account balances.
package balancerepo

import (
	"context"
	"sync"
	"time"

	"github.com/nicebyy/point-ledger/internal/domain"
)

// RepoMem is an in-memory implementation of the balance store.
//
// Single reads and writes are safe on their own; the read-modify-write
// sequence around them is serialized per account by the ledger service.
type RepoMem struct {
	mu       sync.RWMutex
	balances map[int64]domain.Balance
}

// NewRepoMem returns an empty in-memory balance store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		balances: make(map[int64]domain.Balance),
	}
}

// Read returns the balance of the given account. An account that has never
// been written reads as a zero balance.
func (r *RepoMem) Read(ctx context.Context, accountID int64) (domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.balances[accountID]
	if !ok {
		return domain.Balance{AccountID: accountID}, nil
	}

	return b, nil
}

// Write stores the new amount for the given account and stamps the
// modification time.
func (r *RepoMem) Write(ctx context.Context, accountID, amount int64) (domain.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := domain.Balance{
		AccountID: accountID,
		Amount:    amount,
		UpdatedAt: time.Now().UTC(),
	}
	r.balances[accountID] = b

	return b, nil
}
