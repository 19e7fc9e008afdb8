package transaction

import (
	"chain-ledger/internal/wallet"
	"chain-ledger/pkg/apperr"
	"chain-ledger/pkg/database"
	"chain-ledger/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Opts 迁移附带的写入
type Opts struct {
	// Reason 拒绝/失败原因
	Reason string
	// ExternalRef 提现广播后回填的链上哈希
	ExternalRef string
	// Amount 链上确认金额覆盖客户端申报金额（入账以链上为准）
	Amount *decimal.Decimal
}

// Manager 对账状态机。每次迁移是一个原子提交：
// 状态前置校验 + 余额效果 + 状态写入，要么全部生效要么全部回滚。
// 余额变更只能经由这里发生。
type Manager struct {
	transactor database.Transactor
	repo       Repository
	wallets    wallet.Repository
}

// NewManager 创建状态机
func NewManager(transactor database.Transactor, repo Repository, wallets wallet.Repository) *Manager {
	return &Manager{
		transactor: transactor,
		repo:       repo,
		wallets:    wallets,
	}
}

// Transition 在独立事务中执行一次迁移
func (m *Manager) Transition(uuid string, to Status, opts Opts) (*WalletTransaction, error) {
	var out *WalletTransaction
	err := m.transactor.Transaction(func(tx *gorm.DB) error {
		row, err := m.repo.WithTx(tx).GetByUUIDForUpdate(uuid)
		if err != nil {
			return err
		}
		if row == nil {
			return apperr.ErrTransactionNotFound
		}
		out, err = m.TransitionTx(tx, row, to, opts)
		return err
	})
	return out, err
}

// TransitionTx 在调用方事务内执行一次迁移，row 须已持有行锁。
// 已处于目标终态的重复投递是无操作，返回现有行。
func (m *Manager) TransitionTx(tx *gorm.DB, row *WalletTransaction, to Status, opts Opts) (*WalletTransaction, error) {
	if row.Status == to {
		return row, nil
	}
	if !CanTransition(row.Direction, row.Status, to) {
		return nil, apperr.ErrAlreadyProcessed
	}

	amount := row.Amount
	fields := map[string]interface{}{}
	if opts.Amount != nil && !opts.Amount.Equal(row.Amount) {
		logger.Warnf("wallet transaction %s: confirmed amount %s overrides claimed %s",
			row.UUID, opts.Amount.String(), row.Amount.String())
		amount = *opts.Amount
		fields["amount"] = amount
	}
	if opts.Reason != "" {
		fields["reason"] = opts.Reason
	}
	if opts.ExternalRef != "" {
		fields["external_ref"] = opts.ExternalRef
	}

	if err := m.applyLedgerEffect(tx, row, to, amount); err != nil {
		return nil, err
	}

	ok, err := m.repo.WithTx(tx).UpdateStatus(row.ID, row.Status, to, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrAlreadyProcessed
	}

	logger.Infof("wallet transaction %s (%s): %s -> %s", row.UUID, row.Direction, row.Status, to)

	row.Status = to
	row.Amount = amount
	if opts.Reason != "" {
		row.Reason = opts.Reason
	}
	if opts.ExternalRef != "" {
		ref := opts.ExternalRef
		row.ExternalRef = &ref
	}
	return row, nil
}

// applyLedgerEffect 每个 (方向, 目标状态) 的余额效果：
//
//	DEPOSIT  -> CREDITED: balance += amount
//	WITHDRAW -> ACCEPTED: locked -= amount; balance -= amount（出账）
//	WITHDRAW -> REJECTED: locked -= amount（解锁，余额不变）
//	WITHDRAW -> FAILED:   balance += amount（广播失败，退回）
//
// 其余迁移不触碰余额。
func (m *Manager) applyLedgerEffect(tx *gorm.DB, row *WalletTransaction, to Status, amount decimal.Decimal) error {
	w := m.wallets.WithTx(tx)

	switch {
	case row.Direction == DirectionDeposit && to == StatusCredited:
		return w.Credit(row.UserID, row.AssetID, amount)
	case row.Direction == DirectionWithdraw && to == StatusAccepted:
		return w.Release(row.UserID, row.AssetID, row.Amount, true)
	case row.Direction == DirectionWithdraw && to == StatusRejected:
		return w.Release(row.UserID, row.AssetID, row.Amount, false)
	case row.Direction == DirectionWithdraw && to == StatusFailed:
		return w.Credit(row.UserID, row.AssetID, row.Amount)
	}
	return nil
}
