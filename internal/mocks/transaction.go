package mocks

import (
	"fmt"
	"time"

	"chain-ledger/internal/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRepo 内存对账单仓储，模拟幂等键唯一索引与乐观状态写入
type TransactionRepo struct {
	Rows   []*transaction.WalletTransaction
	nextID uint
}

// NewTransactionRepo 创建内存对账单仓储
func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{}
}

// WithTx 内存实现无事务，返回自身
func (m *TransactionRepo) WithTx(tx *gorm.DB) transaction.Repository {
	return m
}

// Create 创建对账单，幂等键冲突时报错
func (m *TransactionRepo) Create(wt *transaction.WalletTransaction) error {
	if wt.ExternalRef != nil {
		for _, row := range m.Rows {
			if row.Direction == wt.Direction && row.NetworkID == wt.NetworkID &&
				row.ExternalRef != nil && *row.ExternalRef == *wt.ExternalRef {
				return fmt.Errorf("duplicate key idx_dir_net_ref")
			}
		}
	}

	m.nextID++
	wt.ID = m.nextID
	now := time.Now()
	wt.CreatedAt = now
	wt.UpdatedAt = now
	m.Rows = append(m.Rows, wt)
	return nil
}

// GetByUUID 通过公开ID获取
func (m *TransactionRepo) GetByUUID(uuid string) (*transaction.WalletTransaction, error) {
	for _, row := range m.Rows {
		if row.UUID == uuid {
			return row, nil
		}
	}
	return nil, nil
}

// GetByUUIDForUpdate 内存实现与无锁读取一致
func (m *TransactionRepo) GetByUUIDForUpdate(uuid string) (*transaction.WalletTransaction, error) {
	return m.GetByUUID(uuid)
}

// GetByReferenceForUpdate 通过幂等键获取，内存实现无行锁
func (m *TransactionRepo) GetByReferenceForUpdate(direction transaction.Direction, networkID uint, externalRef string) (*transaction.WalletTransaction, error) {
	for _, row := range m.Rows {
		if row.Direction == direction && row.NetworkID == networkID &&
			row.ExternalRef != nil && *row.ExternalRef == externalRef {
			return row, nil
		}
	}
	return nil, nil
}

// UpdateStatus 带状态前置条件的更新
func (m *TransactionRepo) UpdateStatus(id uint, from, to transaction.Status, fields map[string]interface{}) (bool, error) {
	for _, row := range m.Rows {
		if row.ID != id {
			continue
		}
		if row.Status != from {
			return false, nil
		}
		row.Status = to
		if v, ok := fields["reason"].(string); ok {
			row.Reason = v
		}
		if v, ok := fields["external_ref"].(string); ok {
			ref := v
			row.ExternalRef = &ref
		}
		if v, ok := fields["amount"].(decimal.Decimal); ok {
			row.Amount = v
		}
		row.UpdatedAt = time.Now()
		return true, nil
	}
	return false, nil
}

// ListByUser 列出用户对账单
func (m *TransactionRepo) ListByUser(userID uint, direction transaction.Direction, page, pageSize int) ([]*transaction.WalletTransaction, int64, error) {
	var matched []*transaction.WalletTransaction
	for _, row := range m.Rows {
		if row.UserID != userID {
			continue
		}
		if direction != "" && row.Direction != direction {
			continue
		}
		matched = append(matched, row)
	}

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// ListByStatusBefore 列出某状态下早于截止时间的对账单
func (m *TransactionRepo) ListByStatusBefore(direction transaction.Direction, status transaction.Status, before time.Time, limit int) ([]*transaction.WalletTransaction, error) {
	var out []*transaction.WalletTransaction
	for _, row := range m.Rows {
		if row.Direction == direction && row.Status == status && row.UpdatedAt.Before(before) {
			out = append(out, row)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
