package routers

import (
	"strconv"

	"chain-ledger/internal/asset"
	"chain-ledger/internal/deposit"
	"chain-ledger/internal/transaction"
	"chain-ledger/internal/withdrawal"
	"chain-ledger/pkg/apperr"
	"chain-ledger/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// DepositHandler 充值处理器
type DepositHandler struct {
	service  deposit.Service
	registry asset.Service
}

// NewDepositHandler 创建充值处理器
func NewDepositHandler(service deposit.Service, registry asset.Service) *DepositHandler {
	return &DepositHandler{service: service, registry: registry}
}

// Register 注册路由
func (h *DepositHandler) Register(r *gin.RouterGroup) {
	r.POST("/deposits", h.SubmitEvidence)
}

// SubmitEvidenceRequest 客户端充值凭证
type SubmitEvidenceRequest struct {
	TxID        string `json:"tx_id" binding:"required"`
	AssetID     uint   `json:"asset_id" binding:"required"`
	NetworkID   uint   `json:"network_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	FromAddress string `json:"from_address" binding:"required"`
}

// SubmitEvidence 提交充值凭证
func (h *DepositHandler) SubmitEvidence(c *gin.Context) {
	userID := GetUserID(c)
	var req SubmitEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.registry.ResolveDeposit(c.Request.Context(), req.AssetID, req.NetworkID)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	amount, err := toMinorUnits(req.Amount, cfg.Pair.Decimals)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	row, err := h.service.SubmitEvidence(c.Request.Context(), &deposit.EvidenceRequest{
		UserID:      userID,
		AssetID:     req.AssetID,
		NetworkID:   req.NetworkID,
		TxID:        req.TxID,
		Amount:      amount,
		FromAddress: req.FromAddress,
	})
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, row)
}

// WithdrawalHandler 提现处理器
type WithdrawalHandler struct {
	service  withdrawal.Service
	registry asset.Service
}

// NewWithdrawalHandler 创建提现处理器
func NewWithdrawalHandler(service withdrawal.Service, registry asset.Service) *WithdrawalHandler {
	return &WithdrawalHandler{service: service, registry: registry}
}

// Register 注册路由
func (h *WithdrawalHandler) Register(r *gin.RouterGroup) {
	r.POST("/withdrawals", h.RequestWithdrawal)
}

// RequestWithdrawalRequest 提现请求
type RequestWithdrawalRequest struct {
	AssetID   uint   `json:"asset_id" binding:"required"`
	NetworkID uint   `json:"network_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	ToAddress string `json:"to_address" binding:"required"`
}

// RequestWithdrawal 发起提现
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	userID := GetUserID(c)
	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.registry.ResolveWithdraw(c.Request.Context(), req.AssetID, req.NetworkID)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	amount, err := toMinorUnits(req.Amount, cfg.Pair.Decimals)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	row, err := h.service.Request(c.Request.Context(), &withdrawal.RequestInput{
		UserID:    userID,
		AssetID:   req.AssetID,
		NetworkID: req.NetworkID,
		Amount:    amount,
		ToAddress: req.ToAddress,
	})
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, row)
}

// TransactionHandler 对账单查询处理器
type TransactionHandler struct {
	service transaction.Service
}

// NewTransactionHandler 创建对账单查询处理器
func NewTransactionHandler(service transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Register 注册路由
func (h *TransactionHandler) Register(r *gin.RouterGroup) {
	r.GET("/deposits", h.listDirection(transaction.DirectionDeposit))
	r.GET("/withdrawals", h.listDirection(transaction.DirectionWithdraw))
	r.GET("/transactions/:uuid", h.GetTransaction)
}

func (h *TransactionHandler) listDirection(direction transaction.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		rows, total, err := h.service.ListByUser(userID, direction, page, pageSize)
		if err != nil {
			httputil.Fail(c, err)
			return
		}
		httputil.SuccessWithPage(c, total, page, pageSize, rows)
	}
}

// GetTransaction 获取单条对账单，只允许归属用户访问
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID := GetUserID(c)
	row, err := h.service.GetByUUID(c.Param("uuid"))
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	if row.UserID != userID {
		httputil.Fail(c, apperr.ErrTransactionNotFound)
		return
	}
	httputil.Success(c, row)
}
