package withdrawal_test

import (
	"context"
	"testing"
	"time"

	"chain-ledger/internal/asset"
	"chain-ledger/internal/audit"
	"chain-ledger/internal/chain"
	"chain-ledger/internal/mocks"
	"chain-ledger/internal/transaction"
	"chain-ledger/internal/withdrawal"
	"chain-ledger/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const validAddress = "0x52908400098527886E0F7030069857D2E4169EE7"

func d(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

type fixture struct {
	svc     withdrawal.Service
	txRepo  *mocks.TransactionRepo
	wallets *mocks.WalletRepo
	audits  *mocks.AuditRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry := mocks.NewAssetRegistry()
	registry.Add(&asset.Config{
		Asset:   &asset.Asset{ID: 1, Symbol: "USDT", Active: true},
		Network: &asset.Network{ID: 2, Name: "ethereum", Family: chain.FamilyEVM, Active: true},
		Pair: &asset.AssetNetwork{
			AssetID:     1,
			NetworkID:   2,
			Decimals:    6,
			MinDeposit:  d(10),
			MinWithdraw: d(20),
			WithdrawFee: d(2),
			CanDeposit:  true,
			CanWithdraw: true,
			Active:      true,
		},
	})

	txRepo := mocks.NewTransactionRepo()
	wallets := mocks.NewWalletRepo()
	audits := mocks.NewAuditRepo()
	machine := transaction.NewManager(mocks.Transactor{}, txRepo, wallets)

	return &fixture{
		svc: withdrawal.NewService(
			registry, txRepo, wallets, machine, mocks.Transactor{}, audit.NewService(audits), nil,
		),
		txRepo:  txRepo,
		wallets: wallets,
		audits:  audits,
	}
}

func request(amount decimal.Decimal) *withdrawal.RequestInput {
	return &withdrawal.RequestInput{
		UserID:    7,
		AssetID:   1,
		NetworkID: 2,
		Amount:    amount,
		ToAddress: validAddress,
	}
}

func TestRequestLocksFunds(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)
	require.Equal(t, transaction.StatusPending, row.Status)
	require.Equal(t, transaction.DirectionWithdraw, row.Direction)
	require.True(t, row.Fee.Equal(d(2)))
	require.Nil(t, row.ExternalRef)

	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Balance.Equal(d(100)))
	require.True(t, w.Locked.Equal(d(30)))
	require.True(t, w.Available().Equal(d(70)))
}

func TestRequestInsufficientAvailable(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(20), decimal.Zero)

	_, err := f.svc.Request(context.Background(), request(d(30)))
	require.ErrorIs(t, err, apperr.ErrLowWalletBalance)
	require.Empty(t, f.txRepo.Rows)

	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Locked.IsZero())
}

func TestRequestLockedReducesAvailable(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), d(80))

	_, err := f.svc.Request(context.Background(), request(d(30)))
	require.ErrorIs(t, err, apperr.ErrLowWalletBalance)
}

func TestRequestNoWallet(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Request(context.Background(), request(d(30)))
	require.ErrorIs(t, err, apperr.ErrLowWalletBalance)
}

func TestRequestBelowMinimum(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	_, err := f.svc.Request(context.Background(), request(d(15)))
	require.ErrorIs(t, err, apperr.ErrMinWithdraw)
}

func TestRequestInvalidAddress(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	req := request(d(30))
	req.ToAddress = "not-an-evm-address"
	_, err := f.svc.Request(context.Background(), req)
	require.ErrorIs(t, err, apperr.ErrInvalidWalletAddress)
}

func TestReviewApproveDebits(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)

	out, err := f.svc.Review(context.Background(), row.UUID, true, "")
	require.NoError(t, err)
	require.Equal(t, transaction.StatusAccepted, out.Status)

	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Balance.Equal(d(70)))
	require.True(t, w.Locked.IsZero())
}

func TestReviewRejectUnlocks(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)

	out, err := f.svc.Review(context.Background(), row.UUID, false, "suspicious destination")
	require.NoError(t, err)
	require.Equal(t, transaction.StatusRejected, out.Status)
	require.Equal(t, "suspicious destination", out.Reason)

	// 拒绝只解锁，余额不变
	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Balance.Equal(d(100)))
	require.True(t, w.Locked.IsZero())
	require.True(t, w.Available().Equal(d(100)))
}

func TestReviewTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), row.UUID, true, "")
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), row.UUID, false, "changed my mind")
	require.ErrorIs(t, err, apperr.ErrAlreadyProcessed)

	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Balance.Equal(d(70)))
}

func TestMarkSentRecordsHash(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), row.UUID, true, "")
	require.NoError(t, err)

	out, err := f.svc.MarkSent(context.Background(), row.UUID, "0xbroadcast")
	require.NoError(t, err)
	require.Equal(t, transaction.StatusSent, out.Status)
	require.NotNil(t, out.ExternalRef)
	require.Equal(t, "0xbroadcast", *out.ExternalRef)

	// 广播不再触碰余额
	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Balance.Equal(d(70)))
}

func TestMarkSentBeforeReview(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)

	_, err = f.svc.MarkSent(context.Background(), row.UUID, "0xbroadcast")
	require.ErrorIs(t, err, apperr.ErrAlreadyProcessed)
}

func TestMarkFailedRefunds(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), row.UUID, true, "")
	require.NoError(t, err)

	out, err := f.svc.MarkFailed(context.Background(), row.UUID, "nonce too low")
	require.NoError(t, err)
	require.Equal(t, transaction.StatusFailed, out.Status)
	require.Equal(t, "nonce too low", out.Reason)

	w, _ := f.wallets.Get(7, 1)
	require.True(t, w.Balance.Equal(d(100)))
	require.True(t, w.Locked.IsZero())
}

func TestReviewRejectsDepositRow(t *testing.T) {
	f := newFixture(t)

	ref := "0xdeposit"
	depositRow := &transaction.WalletTransaction{
		UUID:        "deposit-row",
		UserID:      7,
		AssetID:     1,
		NetworkID:   2,
		Direction:   transaction.DirectionDeposit,
		ExternalRef: &ref,
		Amount:      d(100),
		Status:      transaction.StatusPending,
	}
	require.NoError(t, f.txRepo.Create(depositRow))

	_, err := f.svc.Review(context.Background(), "deposit-row", true, "")
	require.ErrorIs(t, err, apperr.ErrTransactionNotFound)
}

func TestRedispatchStale(t *testing.T) {
	f := newFixture(t)
	f.wallets.Seed(7, 1, d(100), decimal.Zero)

	row, err := f.svc.Request(context.Background(), request(d(30)))
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), row.UUID, true, "")
	require.NoError(t, err)

	f.txRepo.Rows[0].UpdatedAt = time.Now().Add(-time.Hour)

	n, err := f.svc.RedispatchStale(context.Background(), time.Now().Add(-30*time.Minute), 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// 重发不改变状态，等签名方回报
	require.Equal(t, transaction.StatusAccepted, f.txRepo.Rows[0].Status)
}
