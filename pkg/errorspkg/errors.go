// Package errorspkg provides errors shared across the ledger's layers.
package errorspkg

import "errors"

// ErrInternal stands in for unclassified faults; the delivery layer returns
// it in place of any error that is not a business rejection.
var ErrInternal = errors.New("internal")
