package transaction

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 对账单仓储接口
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(wt *WalletTransaction) error
	GetByUUID(uuid string) (*WalletTransaction, error)
	GetByUUIDForUpdate(uuid string) (*WalletTransaction, error)
	GetByReferenceForUpdate(direction Direction, networkID uint, externalRef string) (*WalletTransaction, error)

	// UpdateStatus 乐观状态写入，WHERE携带期望的当前状态，返回是否命中
	UpdateStatus(id uint, from, to Status, fields map[string]interface{}) (bool, error)

	ListByUser(userID uint, direction Direction, page, pageSize int) ([]*WalletTransaction, int64, error)
	ListByStatusBefore(direction Direction, status Status, before time.Time, limit int) ([]*WalletTransaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository 创建对账单仓储
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx 绑定到事务
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Create 创建对账单
func (r *repository) Create(wt *WalletTransaction) error {
	return r.db.Create(wt).Error
}

// GetByUUID 通过公开ID获取
func (r *repository) GetByUUID(uuid string) (*WalletTransaction, error) {
	return r.first("uuid = ?", uuid)
}

// GetByUUIDForUpdate 通过公开ID行锁获取
func (r *repository) GetByUUIDForUpdate(uuid string) (*WalletTransaction, error) {
	return r.firstForUpdate("uuid = ?", uuid)
}

// GetByReferenceForUpdate 通过幂等键行锁获取
func (r *repository) GetByReferenceForUpdate(direction Direction, networkID uint, externalRef string) (*WalletTransaction, error) {
	return r.firstForUpdate("direction = ? AND network_id = ? AND external_ref = ?", direction, networkID, externalRef)
}

func (r *repository) first(query string, args ...interface{}) (*WalletTransaction, error) {
	var wt WalletTransaction
	if err := r.db.Where(query, args...).First(&wt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wt, nil
}

func (r *repository) firstForUpdate(query string, args ...interface{}) (*WalletTransaction, error) {
	var wt WalletTransaction
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(query, args...).First(&wt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wt, nil
}

// UpdateStatus 带状态前置条件的更新
func (r *repository) UpdateStatus(id uint, from, to Status, fields map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	result := r.db.Model(&WalletTransaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByUser 列出用户对账单
func (r *repository) ListByUser(userID uint, direction Direction, page, pageSize int) ([]*WalletTransaction, int64, error) {
	var wts []*WalletTransaction
	var total int64

	query := r.db.Model(&WalletTransaction{}).Where("user_id = ?", userID)
	if direction != "" {
		query = query.Where("direction = ?", direction)
	}
	query.Count(&total)

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&wts).Error; err != nil {
		return nil, 0, err
	}

	return wts, total, nil
}

// ListByStatusBefore 列出某状态下早于截止时间的对账单，供后台任务使用
func (r *repository) ListByStatusBefore(direction Direction, status Status, before time.Time, limit int) ([]*WalletTransaction, error) {
	var wts []*WalletTransaction
	if err := r.db.Where("direction = ? AND status = ? AND updated_at < ?", direction, status, before).
		Order("updated_at ASC").Limit(limit).
		Find(&wts).Error; err != nil {
		return nil, err
	}
	return wts, nil
}
