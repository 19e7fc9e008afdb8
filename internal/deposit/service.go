package deposit

import (
	"context"
	"fmt"
	"time"

	"chain-ledger/internal/asset"
	"chain-ledger/internal/audit"
	"chain-ledger/internal/transaction"
	"chain-ledger/pkg/apperr"
	"chain-ledger/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EvidenceRequest 客户端提交的充值凭证，仅登记意图，不入账
type EvidenceRequest struct {
	UserID      uint
	AssetID     uint
	NetworkID   uint
	TxID        string
	Amount      decimal.Decimal // 最小单位
	FromAddress string
}

// ConfirmationRequest 链上监控方推送的确认。UserID/AssetID 仅在
// 回调先于客户端凭证到达、需要凭回调直接建单时才必须携带
type ConfirmationRequest struct {
	NetworkID uint
	TxID      string
	Amount    decimal.Decimal // 最小单位
	ToAddress string
	UserID    uint
	AssetID   uint
}

// Service 充值接收器。两个入口喂给同一套对账逻辑：
// 客户端凭证只建 PENDING 单，入账必须有经过认证的链上确认
type Service interface {
	SubmitEvidence(ctx context.Context, req *EvidenceRequest) (*transaction.WalletTransaction, error)
	ApplyConfirmation(ctx context.Context, req *ConfirmationRequest) (*transaction.WalletTransaction, error)

	// ExpireStale 作废超期未获链上确认的客户端凭证
	ExpireStale(ctx context.Context, olderThan time.Time, limit int) (int, error)
}

type service struct {
	registry   asset.Service
	txRepo     transaction.Repository
	machine    *transaction.Manager
	transactor database.Transactor
	auditor    audit.Service
}

// NewService 创建充值服务
func NewService(
	registry asset.Service,
	txRepo transaction.Repository,
	machine *transaction.Manager,
	transactor database.Transactor,
	auditor audit.Service,
) Service {
	return &service{
		registry:   registry,
		txRepo:     txRepo,
		machine:    machine,
		transactor: transactor,
		auditor:    auditor,
	}
}

// SubmitEvidence 登记客户端充值凭证。同一幂等键重复提交返回现有单；
// 金额与已有单矛盾则报冲突
func (s *service) SubmitEvidence(ctx context.Context, req *EvidenceRequest) (*transaction.WalletTransaction, error) {
	cfg, err := s.registry.ResolveDeposit(ctx, req.AssetID, req.NetworkID)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.ErrInvalidAmount
	}
	if req.Amount.LessThan(cfg.Pair.MinDeposit) {
		return nil, apperr.ErrMinDeposit
	}

	var row *transaction.WalletTransaction
	created := false
	err = s.transactor.Transaction(func(tx *gorm.DB) error {
		txRepo := s.txRepo.WithTx(tx)

		existing, err := txRepo.GetByReferenceForUpdate(transaction.DirectionDeposit, req.NetworkID, req.TxID)
		if err != nil {
			return err
		}
		if existing != nil {
			if !existing.Amount.Equal(req.Amount) {
				return apperr.ErrAmountMismatch
			}
			row = existing
			return nil
		}

		ref := req.TxID
		row = &transaction.WalletTransaction{
			UUID:        uuid.New().String(),
			UserID:      req.UserID,
			AssetID:     req.AssetID,
			NetworkID:   req.NetworkID,
			Direction:   transaction.DirectionDeposit,
			ExternalRef: &ref,
			FromAddress: req.FromAddress,
			Amount:      req.Amount,
			Status:      transaction.StatusPending,
		}
		created = true
		return txRepo.Create(row)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.auditor.Record(req.UserID, audit.ModuleDeposit, audit.ActionEvidence, row.UUID,
			fmt.Sprintf("deposit evidence %s on network %d, amount %s", req.TxID, req.NetworkID, req.Amount))
	}
	return row, nil
}

// ApplyConfirmation 应用链上确认。已有 PENDING 单则入账；没有单且回调
// 携带归属信息则直接建单入账，回调本身即充分凭证。重复投递是无操作
func (s *service) ApplyConfirmation(ctx context.Context, req *ConfirmationRequest) (*transaction.WalletTransaction, error) {
	var row *transaction.WalletTransaction
	err := s.transactor.Transaction(func(tx *gorm.DB) error {
		txRepo := s.txRepo.WithTx(tx)

		existing, err := txRepo.GetByReferenceForUpdate(transaction.DirectionDeposit, req.NetworkID, req.TxID)
		if err != nil {
			return err
		}

		if existing == nil {
			if req.UserID == 0 || req.AssetID == 0 {
				// 无单可对，回调又没带归属，无法入账
				return apperr.ErrTransactionNotFound
			}
			existing, err = s.createFromConfirmation(ctx, tx, req)
			if err != nil {
				return err
			}
		}

		row, err = s.credit(ctx, tx, existing, req.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionCredit
	if row.Status == transaction.StatusRejected {
		action = audit.ActionReject
	}
	s.auditor.Record(row.UserID, audit.ModuleDeposit, action, row.UUID,
		fmt.Sprintf("deposit confirmation %s on network %d, amount %s", req.TxID, req.NetworkID, req.Amount))
	return row, nil
}

func (s *service) createFromConfirmation(ctx context.Context, tx *gorm.DB, req *ConfirmationRequest) (*transaction.WalletTransaction, error) {
	if _, err := s.registry.ResolveDeposit(ctx, req.AssetID, req.NetworkID); err != nil {
		return nil, err
	}

	ref := req.TxID
	row := &transaction.WalletTransaction{
		UUID:        uuid.New().String(),
		UserID:      req.UserID,
		AssetID:     req.AssetID,
		NetworkID:   req.NetworkID,
		Direction:   transaction.DirectionDeposit,
		ExternalRef: &ref,
		ToAddress:   req.ToAddress,
		Amount:      req.Amount,
		Status:      transaction.StatusPending,
	}
	if err := s.txRepo.WithTx(tx).Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

// ReasonEvidenceExpired 超期作废的拒绝原因。携带此原因的 REJECTED
// 充值单可被迟到的链上确认复活入账
const ReasonEvidenceExpired = "evidence expired without on-chain confirmation"

// ExpireStale 把早于截止时间仍停留在 PENDING 的充值凭证转为 REJECTED
func (s *service) ExpireStale(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	rows, err := s.txRepo.ListByStatusBefore(transaction.DirectionDeposit, transaction.StatusPending, olderThan, limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, row := range rows {
		if _, err := s.machine.Transition(row.UUID, transaction.StatusRejected, transaction.Opts{
			Reason: ReasonEvidenceExpired,
		}); err != nil {
			// 并发确认赢了也没关系，跳过即可
			continue
		}
		s.auditor.Record(row.UserID, audit.ModuleDeposit, audit.ActionReject, row.UUID,
			"deposit evidence expired")
		expired++
	}
	return expired, nil
}

// credit 入账或按最低限额拒绝。链上确认金额为准，与申报不一致时覆盖。
// 超期作废的单被迟到的确认复活；其余 REJECTED 维持原判
func (s *service) credit(ctx context.Context, tx *gorm.DB, row *transaction.WalletTransaction, confirmed decimal.Decimal) (*transaction.WalletTransaction, error) {
	if row.Status == transaction.StatusCredited {
		return row, nil
	}
	if row.Status == transaction.StatusRejected && row.Reason != ReasonEvidenceExpired {
		return nil, apperr.ErrAlreadyProcessed
	}

	cfg, err := s.registry.ResolveDeposit(ctx, row.AssetID, row.NetworkID)
	if err != nil {
		return nil, err
	}

	if confirmed.LessThan(cfg.Pair.MinDeposit) {
		if row.Status == transaction.StatusRejected {
			return row, nil
		}
		return s.machine.TransitionTx(tx, row, transaction.StatusRejected, transaction.Opts{
			Reason: "confirmed amount below minimum deposit",
			Amount: &confirmed,
		})
	}

	return s.machine.TransitionTx(tx, row, transaction.StatusCredited, transaction.Opts{
		Amount: &confirmed,
	})
}
