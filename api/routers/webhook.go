package routers

import (
	"chain-ledger/internal/deposit"
	"chain-ledger/internal/withdrawal"
	"chain-ledger/pkg/httputil"
	"chain-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebhookHandler 链上监控方与签名方的回调入口。
// 认证之外不做业务，只转发给充值/提现服务
type WebhookHandler struct {
	deposits    deposit.Service
	withdrawals withdrawal.Service
}

// NewWebhookHandler 创建回调处理器
func NewWebhookHandler(deposits deposit.Service, withdrawals withdrawal.Service) *WebhookHandler {
	return &WebhookHandler{deposits: deposits, withdrawals: withdrawals}
}

// Register 注册路由
func (h *WebhookHandler) Register(r *gin.RouterGroup) {
	r.POST("/deposits", h.ConfirmDeposit)
	r.POST("/withdrawals", h.ReportWithdrawal)
}

// ConfirmDepositRequest 充值确认回调。金额为链上口径的最小单位整数；
// user_id/asset_id 在回调先于客户端凭证时用于直接建单
type ConfirmDepositRequest struct {
	NetworkID uint   `json:"network_id" binding:"required"`
	TxID      string `json:"tx_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	ToAddress string `json:"to_address"`
	UserID    uint   `json:"user_id"`
	AssetID   uint   `json:"asset_id"`
}

// ConfirmDeposit 充值确认。回调是至少一次投递，重复与乱序都安全
func (h *WebhookHandler) ConfirmDeposit(c *gin.Context) {
	var req ConfirmDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	amount, err := parseMinorUnits(req.Amount)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	row, err := h.deposits.ApplyConfirmation(c.Request.Context(), &deposit.ConfirmationRequest{
		NetworkID: req.NetworkID,
		TxID:      req.TxID,
		Amount:    amount,
		ToAddress: req.ToAddress,
		UserID:    req.UserID,
		AssetID:   req.AssetID,
	})
	if err != nil {
		logger.Errorf("Deposit confirmation %s (network %d) failed: %v", req.TxID, req.NetworkID, err)
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, row)
}

// ReportWithdrawalRequest 提现广播结果回调
type ReportWithdrawalRequest struct {
	WalletTransactionID string `json:"wallet_transaction_id" binding:"required"`
	Success             *bool  `json:"success" binding:"required"`
	TxHash              string `json:"tx_hash"`
	Reason              string `json:"reason"`
}

// ReportWithdrawal 签名方回报广播结果
func (h *WebhookHandler) ReportWithdrawal(c *gin.Context) {
	var req ReportWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	var err error
	var row interface{}
	if *req.Success {
		row, err = h.withdrawals.MarkSent(c.Request.Context(), req.WalletTransactionID, req.TxHash)
	} else {
		row, err = h.withdrawals.MarkFailed(c.Request.Context(), req.WalletTransactionID, req.Reason)
	}
	if err != nil {
		logger.Errorf("Withdrawal report for %s failed: %v", req.WalletTransactionID, err)
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, row)
}
