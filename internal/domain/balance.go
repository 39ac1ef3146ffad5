// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

// MaxBalance is the cap an account balance can never exceed.
const MaxBalance int64 = 100000

var (
	// ErrNotEnoughBalance indicates that the use amount exceeds the current balance.
	ErrNotEnoughBalance = errors.New("not enough balance")
	// ErrBalanceExceedsLimit indicates that the charge would push the balance above the maximum limit.
	ErrBalanceExceedsLimit = errors.New("balance exceeds the maximum limit")
)

// Balance holds the current point amount of an account.
//
// Accounts come into being implicitly: an account that has never been
// written reads as a zero balance.
type Balance struct {
	AccountID int64     `json:"account_id"`
	Amount    int64     `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}
