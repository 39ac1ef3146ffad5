package balancerepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nicebyy/point-ledger/pkg/randompkg"
)

func TestReadUnseenAccount(t *testing.T) {
	t.Parallel()

	repo := NewRepoMem()
	accountID := randompkg.AccountID()

	got, err := repo.Read(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, accountID, got.AccountID)
	require.Zero(t, got.Amount)
	require.True(t, got.UpdatedAt.IsZero())
}

func TestWriteThenRead(t *testing.T) {
	t.Parallel()

	repo := NewRepoMem()
	accountID := randompkg.AccountID()

	written, err := repo.Write(context.Background(), accountID, 500)
	require.NoError(t, err)
	require.Equal(t, int64(500), written.Amount)
	require.WithinDuration(t, time.Now().UTC(), written.UpdatedAt, time.Second)

	got, err := repo.Read(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, written, got)
}

func TestWriteOverwrites(t *testing.T) {
	t.Parallel()

	repo := NewRepoMem()
	accountID := randompkg.AccountID()

	_, err := repo.Write(context.Background(), accountID, 500)
	require.NoError(t, err)

	_, err = repo.Write(context.Background(), accountID, 300)
	require.NoError(t, err)

	got, err := repo.Read(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, int64(300), got.Amount)
}
