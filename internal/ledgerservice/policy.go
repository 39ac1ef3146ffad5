package ledgerservice

import "github.com/nicebyy/point-ledger/internal/domain"

// Policy validates balance mutations against the business rules. It is
// stateless, has no side effects and is safe to call without holding any
// account lock.
type Policy struct{}

// ValidateCharge fails with domain.ErrBalanceExceedsLimit when the charge
// would push the balance above domain.MaxBalance. The check compares against
// the remaining headroom instead of the sum, which would wrap around for
// amounts near MaxInt64.
func (Policy) ValidateCharge(balance domain.Balance, amount int64) error {
	if amount > domain.MaxBalance-balance.Amount {
		return domain.ErrBalanceExceedsLimit
	}

	return nil
}

// ValidateUse fails with domain.ErrNotEnoughBalance when the use amount
// exceeds the current balance.
func (Policy) ValidateUse(balance domain.Balance, amount int64) error {
	if amount > balance.Amount {
		return domain.ErrNotEnoughBalance
	}

	return nil
}
