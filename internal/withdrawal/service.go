package withdrawal

import (
	"context"
	"fmt"
	"time"

	"chain-ledger/internal/asset"
	"chain-ledger/internal/audit"
	"chain-ledger/internal/transaction"
	"chain-ledger/internal/wallet"
	"chain-ledger/pkg/apperr"
	"chain-ledger/pkg/cache"
	"chain-ledger/pkg/database"
	"chain-ledger/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DispatchQueue 签名方消费的派发队列
const DispatchQueue = "signer:dispatch"

// RequestInput 提现请求
type RequestInput struct {
	UserID    uint
	AssetID   uint
	NetworkID uint
	Amount    decimal.Decimal // 最小单位
	ToAddress string
}

// PayoutJob 交给外部签名方的派发任务，净额 = 申请金额 - 手续费
type PayoutJob struct {
	TransactionID string `json:"transaction_id"`
	AssetID       uint   `json:"asset_id"`
	NetworkID     uint   `json:"network_id"`
	ToAddress     string `json:"to_address"`
	NetAmount     string `json:"net_amount"`
}

// Service 提现管理。请求校验并锁定资金；审核决定放行或退回；
// 广播结果由签名方经回调回报
type Service interface {
	Request(ctx context.Context, req *RequestInput) (*transaction.WalletTransaction, error)
	Review(ctx context.Context, txUUID string, approve bool, note string) (*transaction.WalletTransaction, error)
	MarkSent(ctx context.Context, txUUID, txHash string) (*transaction.WalletTransaction, error)
	MarkFailed(ctx context.Context, txUUID, reason string) (*transaction.WalletTransaction, error)

	// RedispatchStale 重发已通过但迟迟未广播的派发任务
	RedispatchStale(ctx context.Context, olderThan time.Time, limit int) (int, error)
}

type service struct {
	registry   asset.Service
	txRepo     transaction.Repository
	walletRepo wallet.Repository
	machine    *transaction.Manager
	transactor database.Transactor
	auditor    audit.Service
	queue      *cache.Client // 可为nil（测试环境）
}

// NewService 创建提现服务
func NewService(
	registry asset.Service,
	txRepo transaction.Repository,
	walletRepo wallet.Repository,
	machine *transaction.Manager,
	transactor database.Transactor,
	auditor audit.Service,
	queue *cache.Client,
) Service {
	return &service{
		registry:   registry,
		txRepo:     txRepo,
		walletRepo: walletRepo,
		machine:    machine,
		transactor: transactor,
		auditor:    auditor,
		queue:      queue,
	}
}

// Request 受理提现：校验配置与限额、校验地址、锁定资金、建 PENDING 单。
// 锁定与建单在同一事务内提交
func (s *service) Request(ctx context.Context, req *RequestInput) (*transaction.WalletTransaction, error) {
	cfg, err := s.registry.ResolveWithdraw(ctx, req.AssetID, req.NetworkID)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.ErrInvalidAmount
	}
	if req.Amount.LessThan(cfg.Pair.MinWithdraw) {
		return nil, apperr.ErrMinWithdraw
	}
	if !cfg.Network.Family.ValidateAddress(req.ToAddress) {
		return nil, apperr.ErrInvalidWalletAddress
	}

	row := &transaction.WalletTransaction{
		UUID:      uuid.New().String(),
		UserID:    req.UserID,
		AssetID:   req.AssetID,
		NetworkID: req.NetworkID,
		Direction: transaction.DirectionWithdraw,
		ToAddress: req.ToAddress,
		Amount:    req.Amount,
		Fee:       cfg.Pair.WithdrawFee,
		Status:    transaction.StatusPending,
	}

	err = s.transactor.Transaction(func(tx *gorm.DB) error {
		if err := s.walletRepo.WithTx(tx).Lock(req.UserID, req.AssetID, req.Amount); err != nil {
			return err
		}
		return s.txRepo.WithTx(tx).Create(row)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(req.UserID, audit.ModuleWithdrawal, audit.ActionRequest, row.UUID,
		fmt.Sprintf("withdrawal of %s (asset %d, network %d) to %s", req.Amount, req.AssetID, req.NetworkID, req.ToAddress))
	return row, nil
}

// Review 审核：通过则出账并派发给签名方，拒绝则解锁退回
func (s *service) Review(ctx context.Context, txUUID string, approve bool, note string) (*transaction.WalletTransaction, error) {
	if err := s.mustBeWithdrawal(txUUID); err != nil {
		return nil, err
	}

	target := transaction.StatusRejected
	action := audit.ActionReject
	if approve {
		target = transaction.StatusAccepted
		action = audit.ActionApprove
	}

	row, err := s.machine.Transition(txUUID, target, transaction.Opts{Reason: note})
	if err != nil {
		return nil, err
	}

	if approve {
		s.dispatch(ctx, row)
	}

	s.auditor.Record(row.UserID, audit.ModuleWithdrawal, action, row.UUID, note)
	return row, nil
}

// MarkSent 签名方回报广播成功，回填链上哈希
func (s *service) MarkSent(ctx context.Context, txUUID, txHash string) (*transaction.WalletTransaction, error) {
	if err := s.mustBeWithdrawal(txUUID); err != nil {
		return nil, err
	}

	row, err := s.machine.Transition(txUUID, transaction.StatusSent, transaction.Opts{ExternalRef: txHash})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(row.UserID, audit.ModuleWithdrawal, audit.ActionSent, row.UUID,
		fmt.Sprintf("broadcast as %s", txHash))
	return row, nil
}

// MarkFailed 签名方回报广播失败，资金退回余额
func (s *service) MarkFailed(ctx context.Context, txUUID, reason string) (*transaction.WalletTransaction, error) {
	if err := s.mustBeWithdrawal(txUUID); err != nil {
		return nil, err
	}

	row, err := s.machine.Transition(txUUID, transaction.StatusFailed, transaction.Opts{Reason: reason})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(row.UserID, audit.ModuleWithdrawal, audit.ActionFailed, row.UUID, reason)
	return row, nil
}

// RedispatchStale 重发长时间停留在 ACCEPTED 的派发任务，派发是幂等的
func (s *service) RedispatchStale(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	rows, err := s.txRepo.ListByStatusBefore(transaction.DirectionWithdraw, transaction.StatusAccepted, olderThan, limit)
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		s.dispatch(ctx, row)
	}
	return len(rows), nil
}

func (s *service) mustBeWithdrawal(txUUID string) error {
	row, err := s.txRepo.GetByUUID(txUUID)
	if err != nil {
		return err
	}
	if row == nil || row.Direction != transaction.DirectionWithdraw {
		return apperr.ErrTransactionNotFound
	}
	return nil
}

// dispatch 入队失败不回滚账本，靠 RedispatchStale 兜底
func (s *service) dispatch(ctx context.Context, row *transaction.WalletTransaction) {
	if s.queue == nil {
		return
	}

	job := &PayoutJob{
		TransactionID: row.UUID,
		AssetID:       row.AssetID,
		NetworkID:     row.NetworkID,
		ToAddress:     row.ToAddress,
		NetAmount:     row.Amount.Sub(row.Fee).String(),
	}
	if err := s.queue.Push(ctx, DispatchQueue, job); err != nil {
		logger.Errorf("Failed to dispatch payout %s to signer queue: %v", row.UUID, err)
	}
}
