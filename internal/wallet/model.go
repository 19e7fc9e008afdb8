package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet 用户某资产的余额记录，首笔入账时惰性创建
// Balance/Locked 为最小单位整数，不变量: 0 <= Locked <= Balance
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"uniqueIndex:idx_user_asset;not null" json:"user_id"`
	AssetID   uint            `gorm:"uniqueIndex:idx_user_asset;not null" json:"asset_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(78,0);default:0" json:"balance"`
	Locked    decimal.Decimal `gorm:"type:numeric(78,0);default:0" json:"locked"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Available 可用余额
func (w *Wallet) Available() decimal.Decimal {
	return w.Balance.Sub(w.Locked)
}

// TableName 表名
func (Wallet) TableName() string {
	return "wallets"
}
