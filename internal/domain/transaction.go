package domain

import "time"

// Kind labels the direction of a balance change.
type Kind string

const (
	// KindCharge marks a transaction that increased the balance.
	KindCharge Kind = "CHARGE"
	// KindUse marks a transaction that decreased the balance.
	KindUse Kind = "USE"
)

// Transaction holds one committed balance change of an account.
//
// ID is assigned at append time and increases monotonically across the whole
// log. CreatedAt equals the UpdatedAt of the balance written in the same
// commit. Records are immutable once appended.
type Transaction struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Amount    int64     `json:"amount"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
