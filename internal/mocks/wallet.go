package mocks

import (
	"fmt"

	"chain-ledger/internal/wallet"
	"chain-ledger/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletRepo 内存余额仓储，校验规则与真实实现保持一致
type WalletRepo struct {
	Wallets map[string]*wallet.Wallet
}

// NewWalletRepo 创建内存余额仓储
func NewWalletRepo() *WalletRepo {
	return &WalletRepo{Wallets: map[string]*wallet.Wallet{}}
}

func walletKey(userID, assetID uint) string {
	return fmt.Sprintf("%d:%d", userID, assetID)
}

// Seed 预置一条余额记录
func (m *WalletRepo) Seed(userID, assetID uint, balance, locked decimal.Decimal) *wallet.Wallet {
	w := &wallet.Wallet{
		UserID:  userID,
		AssetID: assetID,
		Balance: balance,
		Locked:  locked,
	}
	m.Wallets[walletKey(userID, assetID)] = w
	return w
}

// WithTx 内存实现无事务，返回自身
func (m *WalletRepo) WithTx(tx *gorm.DB) wallet.Repository {
	return m
}

// Get 获取余额记录
func (m *WalletRepo) Get(userID, assetID uint) (*wallet.Wallet, error) {
	return m.Wallets[walletKey(userID, assetID)], nil
}

// ListByUser 列出用户余额记录
func (m *WalletRepo) ListByUser(userID uint) ([]*wallet.Wallet, error) {
	var out []*wallet.Wallet
	for _, w := range m.Wallets {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// Credit 入账
func (m *WalletRepo) Credit(userID, assetID uint, amount decimal.Decimal) error {
	k := walletKey(userID, assetID)
	w := m.Wallets[k]
	if w == nil {
		m.Wallets[k] = &wallet.Wallet{
			UserID:  userID,
			AssetID: assetID,
			Balance: amount,
			Locked:  decimal.Zero,
		}
		return nil
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Lock 锁定
func (m *WalletRepo) Lock(userID, assetID uint, amount decimal.Decimal) error {
	w := m.Wallets[walletKey(userID, assetID)]
	if w == nil || w.Available().LessThan(amount) {
		return apperr.ErrLowWalletBalance
	}
	w.Locked = w.Locked.Add(amount)
	return nil
}

// Release 解锁
func (m *WalletRepo) Release(userID, assetID uint, amount decimal.Decimal, debit bool) error {
	w := m.Wallets[walletKey(userID, assetID)]
	if w == nil || w.Locked.LessThan(amount) {
		return wallet.ErrLockedBelowRelease
	}
	w.Locked = w.Locked.Sub(amount)
	if debit {
		w.Balance = w.Balance.Sub(amount)
	}
	return nil
}
