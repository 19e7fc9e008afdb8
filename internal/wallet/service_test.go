package wallet_test

import (
	"testing"

	"chain-ledger/internal/mocks"
	"chain-ledger/internal/wallet"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGetWalletZeroWhenMissing(t *testing.T) {
	svc := wallet.NewService(mocks.NewWalletRepo())

	w, err := svc.GetWallet(7, 1)
	require.NoError(t, err)
	require.True(t, w.Balance.IsZero())
	require.True(t, w.Locked.IsZero())
	require.Equal(t, uint(7), w.UserID)
	require.Equal(t, uint(1), w.AssetID)
}

func TestGetWalletExisting(t *testing.T) {
	repo := mocks.NewWalletRepo()
	repo.Seed(7, 1, decimal.NewFromInt(100), decimal.NewFromInt(30))
	svc := wallet.NewService(repo)

	w, err := svc.GetWallet(7, 1)
	require.NoError(t, err)
	require.True(t, w.Balance.Equal(decimal.NewFromInt(100)))
	require.True(t, w.Available().Equal(decimal.NewFromInt(70)))
}
