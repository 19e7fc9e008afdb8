package asset

import (
	"time"

	"chain-ledger/internal/chain"

	"github.com/shopspring/decimal"
)

// Asset 资产（可替代代币）
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"symbol"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	LogoURL   string    `gorm:"type:varchar(500)" json:"logo_url"`
	Active    bool      `gorm:"default:true" json:"active"`
	Visible   bool      `gorm:"default:true" json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Network 区块链网络
type Network struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Name              string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Family            chain.Family `gorm:"type:varchar(20);not null" json:"family"`
	CollectionAddress string       `gorm:"type:varchar(255)" json:"collection_address"`
	ExplorerURL       string       `gorm:"type:varchar(500)" json:"explorer_url"`
	Active            bool         `gorm:"default:true" json:"active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// AssetNetwork 资产在某条网络上的配置
// 金额字段一律为该配置精度下的最小单位整数
type AssetNetwork struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	AssetID         uint            `gorm:"uniqueIndex:idx_asset_network;not null" json:"asset_id"`
	NetworkID       uint            `gorm:"uniqueIndex:idx_asset_network;not null" json:"network_id"`
	ContractAddress string          `gorm:"type:varchar(255)" json:"contract_address"` // 原生币为空
	Decimals        int32           `gorm:"default:18" json:"decimals"`
	MinDeposit      decimal.Decimal `gorm:"type:numeric(78,0);default:0" json:"min_deposit"`
	MinWithdraw     decimal.Decimal `gorm:"type:numeric(78,0);default:0" json:"min_withdraw"`
	WithdrawFee     decimal.Decimal `gorm:"type:numeric(78,0);default:0" json:"withdraw_fee"`
	CanDeposit      bool            `gorm:"default:true" json:"can_deposit"`
	CanWithdraw     bool            `gorm:"default:true" json:"can_withdraw"`
	Active          bool            `gorm:"default:true" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName 表名
func (Asset) TableName() string {
	return "assets"
}

func (Network) TableName() string {
	return "networks"
}

func (AssetNetwork) TableName() string {
	return "asset_networks"
}
