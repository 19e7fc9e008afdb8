package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction 流向
type Direction string

const (
	DirectionDeposit  Direction = "DEPOSIT"
	DirectionWithdraw Direction = "WITHDRAW"
)

// Status 对账状态，两个方向共用同一枚举，合法迁移按方向区分
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusCredited Status = "CREDITED" // 充值终态：已入账
	StatusAccepted Status = "ACCEPTED" // 提现：审核通过，已出账待广播
	StatusSent     Status = "SENT"     // 提现终态：已交给签名方广播
	StatusRejected Status = "REJECTED" // 终态：审核拒绝或凭证无效
	StatusFailed   Status = "FAILED"   // 提现终态：广播失败，已退回余额
)

// Terminal 正常流程下是否不再迁移。充值的 REJECTED 是一个例外：
// 超期作废的凭证可被迟到的链上确认复活，见 legalTransitions
func (s Status) Terminal() bool {
	switch s {
	case StatusCredited, StatusSent, StatusRejected, StatusFailed:
		return true
	}
	return false
}

// legalTransitions 方向 -> 当前状态 -> 可迁移状态。
// 充值 REJECTED -> CREDITED 仅服务于凭证超期作废后迟到的链上确认，
// 回调是至少一次投递，真实入账不能因作废扫描永久失败
var legalTransitions = map[Direction]map[Status][]Status{
	DirectionDeposit: {
		StatusPending:  {StatusCredited, StatusRejected},
		StatusRejected: {StatusCredited},
	},
	DirectionWithdraw: {
		StatusPending:  {StatusAccepted, StatusRejected},
		StatusAccepted: {StatusSent, StatusFailed},
	},
}

// CanTransition 校验迁移是否合法
func CanTransition(direction Direction, from, to Status) bool {
	for _, next := range legalTransitions[direction][from] {
		if next == to {
			return true
		}
	}
	return false
}

// WalletTransaction 对账单元，一次充值或提现尝试，只追加不删除
// (direction, network_id, external_ref) 唯一，是防止重复入账的幂等键；
// 提现在广播前没有链上哈希，external_ref 为 NULL
type WalletTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	UUID        string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	AssetID     uint            `gorm:"index;not null" json:"asset_id"`
	NetworkID   uint            `gorm:"uniqueIndex:idx_dir_net_ref;not null" json:"network_id"`
	Direction   Direction       `gorm:"type:varchar(10);uniqueIndex:idx_dir_net_ref;not null" json:"direction"`
	ExternalRef *string         `gorm:"type:varchar(255);uniqueIndex:idx_dir_net_ref" json:"external_ref"`
	FromAddress string          `gorm:"type:varchar(255)" json:"from_address"`
	ToAddress   string          `gorm:"type:varchar(255)" json:"to_address"`
	Amount      decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"amount"`
	Fee         decimal.Decimal `gorm:"type:numeric(78,0);default:0" json:"fee"`
	Status      Status          `gorm:"type:varchar(10);index;not null" json:"status"`
	Reason      string          `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName 表名
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
