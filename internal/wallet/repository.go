package wallet

import (
	"errors"

	"chain-ledger/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLockedBelowRelease 解锁金额超过当前锁定额，属于内部状态损坏
var ErrLockedBelowRelease = errors.New("locked balance below release amount")

// Repository 余额仓储。三个变更原语必须在调用方事务内执行，
// 行锁保证同一 (user_id, asset_id) 的读改写串行
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Get(userID, assetID uint) (*Wallet, error)
	ListByUser(userID uint) ([]*Wallet, error)

	Credit(userID, assetID uint, amount decimal.Decimal) error
	Lock(userID, assetID uint, amount decimal.Decimal) error
	Release(userID, assetID uint, amount decimal.Decimal, debit bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository 创建余额仓储
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx 绑定到事务
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Get 获取余额记录
func (r *repository) Get(userID, assetID uint) (*Wallet, error) {
	var w Wallet
	if err := r.db.Where("user_id = ? AND asset_id = ?", userID, assetID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// ListByUser 列出用户的全部余额记录
func (r *repository) ListByUser(userID uint) ([]*Wallet, error) {
	var wallets []*Wallet
	if err := r.db.Where("user_id = ?", userID).Order("asset_id ASC").Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

// getForUpdate 行锁读取
func (r *repository) getForUpdate(userID, assetID uint) (*Wallet, error) {
	var w Wallet
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// Credit 入账: balance += amount，仅由充值状态机调用
func (r *repository) Credit(userID, assetID uint, amount decimal.Decimal) error {
	w, err := r.getForUpdate(userID, assetID)
	if err != nil {
		return err
	}
	if w == nil {
		return r.db.Create(&Wallet{
			UserID:  userID,
			AssetID: assetID,
			Balance: amount,
			Locked:  decimal.Zero,
		}).Error
	}

	return r.db.Model(w).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// Lock 锁定: available >= amount 时 locked += amount
func (r *repository) Lock(userID, assetID uint, amount decimal.Decimal) error {
	w, err := r.getForUpdate(userID, assetID)
	if err != nil {
		return err
	}
	if w == nil || w.Available().LessThan(amount) {
		return apperr.ErrLowWalletBalance
	}

	return r.db.Model(w).
		Update("locked", gorm.Expr("locked + ?", amount)).Error
}

// Release 解锁: locked -= amount，debit 时同时 balance -= amount
func (r *repository) Release(userID, assetID uint, amount decimal.Decimal, debit bool) error {
	w, err := r.getForUpdate(userID, assetID)
	if err != nil {
		return err
	}
	if w == nil || w.Locked.LessThan(amount) {
		return ErrLockedBelowRelease
	}

	updates := map[string]interface{}{
		"locked": gorm.Expr("locked - ?", amount),
	}
	if debit {
		updates["balance"] = gorm.Expr("balance - ?", amount)
	}
	return r.db.Model(w).Updates(updates).Error
}
