package transaction

import (
	"chain-ledger/pkg/apperr"
)

// Service 对账单查询服务
type Service interface {
	GetByUUID(uuid string) (*WalletTransaction, error)
	ListByUser(userID uint, direction Direction, page, pageSize int) ([]*WalletTransaction, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建对账单查询服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetByUUID 通过公开ID获取
func (s *service) GetByUUID(uuid string) (*WalletTransaction, error) {
	wt, err := s.repo.GetByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if wt == nil {
		return nil, apperr.ErrTransactionNotFound
	}
	return wt, nil
}

// ListByUser 列出用户对账单
func (s *service) ListByUser(userID uint, direction Direction, page, pageSize int) ([]*WalletTransaction, int64, error) {
	return s.repo.ListByUser(userID, direction, page, pageSize)
}
