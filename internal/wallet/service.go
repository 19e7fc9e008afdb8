package wallet

import (
	"github.com/shopspring/decimal"
)

// Service 余额查询服务，变更一律走状态机，不经过这里
type Service interface {
	GetWallet(userID, assetID uint) (*Wallet, error)
	ListWallets(userID uint) ([]*Wallet, error)
}

type service struct {
	repo Repository
}

// NewService 创建余额查询服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetWallet 获取余额，未入账过的返回零余额
func (s *service) GetWallet(userID, assetID uint) (*Wallet, error) {
	w, err := s.repo.Get(userID, assetID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return &Wallet{
			UserID:  userID,
			AssetID: assetID,
			Balance: decimal.Zero,
			Locked:  decimal.Zero,
		}, nil
	}
	return w, nil
}

// ListWallets 列出用户余额
func (s *service) ListWallets(userID uint) ([]*Wallet, error) {
	return s.repo.ListByUser(userID)
}
