package ledgerservice

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicebyy/point-ledger/internal/balancerepo"
	"github.com/nicebyy/point-ledger/internal/domain"
	"github.com/nicebyy/point-ledger/internal/historyrepo"
	"github.com/nicebyy/point-ledger/pkg/randompkg"
)

// newRealService wires the service to real in-memory stores. The concurrency
// tests below exercise the full read-validate-write-append path instead of
// mocking the stores away.
func newRealService() *Service {
	return New(balancerepo.NewRepoMem(), historyrepo.NewRepoMem(), nil)
}

func TestConcurrentChargesLoseNoUpdate(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	const (
		callers = 100
		amount  = 1000
	)

	var wg sync.WaitGroup

	wg.Add(callers)

	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()

			_, err := service.Charge(context.Background(), accountID, amount)
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, int64(callers*amount), balance.Amount)
	require.Equal(t, domain.MaxBalance, balance.Amount)

	history, err := service.GetHistory(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, history, callers)
}

func TestConcurrentMixedOperationsKeepInvariant(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	const callers = 200

	var (
		wg        sync.WaitGroup
		committed int64
	)

	wg.Add(callers)

	for i := 0; i < callers; i++ {
		i := i

		go func() {
			defer wg.Done()

			if i%2 == 0 {
				if _, err := service.Charge(context.Background(), accountID, 900); err == nil {
					atomic.AddInt64(&committed, 900)
				}
			} else {
				if _, err := service.Use(context.Background(), accountID, 400); err == nil {
					atomic.AddInt64(&committed, -400)
				}
			}
		}()
	}

	wg.Wait()

	balance, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, atomic.LoadInt64(&committed), balance.Amount)
	require.GreaterOrEqual(t, balance.Amount, int64(0))
	require.LessOrEqual(t, balance.Amount, domain.MaxBalance)
}

func TestAccountsDoNotContend(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountA := randompkg.AccountID()
	accountB := accountA + 1

	const callers = 50

	var wg sync.WaitGroup

	wg.Add(callers * 2)

	errs := make(chan error, callers*2)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()

			_, err := service.Charge(context.Background(), accountA, 100)
			errs <- err
		}()
		go func() {
			defer wg.Done()

			_, err := service.Charge(context.Background(), accountB, 200)
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	balanceA, err := service.GetBalance(context.Background(), accountA)
	require.NoError(t, err)
	require.Equal(t, int64(callers*100), balanceA.Amount)

	balanceB, err := service.GetBalance(context.Background(), accountB)
	require.NoError(t, err)
	require.Equal(t, int64(callers*200), balanceB.Amount)
}

func TestRejectionIsANoOp(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	before, err := service.Charge(context.Background(), accountID, 500)
	require.NoError(t, err)

	_, err = service.Use(context.Background(), accountID, 501)
	require.ErrorIs(t, err, domain.ErrNotEnoughBalance)

	after, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, before, after)

	history, err := service.GetHistory(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestChargeAtCapIsRejected(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	_, err := service.Charge(context.Background(), accountID, domain.MaxBalance)
	require.NoError(t, err)

	_, err = service.Charge(context.Background(), accountID, 1)
	require.ErrorIs(t, err, domain.ErrBalanceExceedsLimit)

	balance, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, domain.MaxBalance, balance.Amount)
}

func TestHugeChargeCannotWrapBalance(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	_, err := service.Charge(context.Background(), accountID, 1000)
	require.NoError(t, err)

	_, err = service.Charge(context.Background(), accountID, math.MaxInt64)
	require.ErrorIs(t, err, domain.ErrBalanceExceedsLimit)

	balance, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), balance.Amount)
	require.GreaterOrEqual(t, balance.Amount, int64(0))

	history, err := service.GetHistory(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestHistoryReflectsCommitOrder(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	_, err := service.Charge(context.Background(), accountID, 10000)
	require.NoError(t, err)

	_, err = service.Use(context.Background(), accountID, 5000)
	require.NoError(t, err)

	balance, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, int64(5000), balance.Amount)

	history, err := service.GetHistory(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	require.Equal(t, domain.KindCharge, history[0].Kind)
	require.Equal(t, int64(10000), history[0].Amount)
	require.Equal(t, domain.KindUse, history[1].Kind)
	require.Equal(t, int64(5000), history[1].Amount)
	require.Greater(t, history[1].ID, history[0].ID)
}

func TestUnseenAccountReadsZero(t *testing.T) {
	t.Parallel()

	service := newRealService()
	accountID := randompkg.AccountID()

	balance, err := service.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, accountID, balance.AccountID)
	require.Zero(t, balance.Amount)

	history, err := service.GetHistory(context.Background(), accountID)
	require.NoError(t, err)
	require.Empty(t, history)
}
