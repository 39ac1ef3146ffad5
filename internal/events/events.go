// Package events defines the committed-transaction event contract.
package events

import (
	"context"
	"time"

	"github.com/nicebyy/point-ledger/internal/domain"
)

// TransactionCommitted is emitted after a balance write and its history
// record committed together.
type TransactionCommitted struct {
	TransactionID int64       `json:"transaction_id"`
	AccountID     int64       `json:"account_id"`
	Amount        int64       `json:"amount"`
	Kind          domain.Kind `json:"kind"`
	Balance       int64       `json:"balance"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// Publisher delivers committed-transaction events to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCommitted) error
}
