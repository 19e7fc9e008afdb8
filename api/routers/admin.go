package routers

import (
	"chain-ledger/internal/withdrawal"
	"chain-ledger/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// AdminHandler 后台审核处理器，只触发状态迁移，界面在别处
type AdminHandler struct {
	withdrawals withdrawal.Service
}

// NewAdminHandler 创建后台审核处理器
func NewAdminHandler(withdrawals withdrawal.Service) *AdminHandler {
	return &AdminHandler{withdrawals: withdrawals}
}

// Register 注册路由
func (h *AdminHandler) Register(r *gin.RouterGroup) {
	r.POST("/withdrawals/review", h.ReviewWithdrawal)
}

// ReviewWithdrawalRequest 提现审核请求
type ReviewWithdrawalRequest struct {
	WalletTransactionID string `json:"wallet_transaction_id" binding:"required"`
	Status              string `json:"status" binding:"required,oneof=Accepted Rejected"`
	Note                string `json:"note"`
}

// ReviewWithdrawal 审核提现
func (h *AdminHandler) ReviewWithdrawal(c *gin.Context) {
	var req ReviewWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	row, err := h.withdrawals.Review(c.Request.Context(), req.WalletTransactionID, req.Status == "Accepted", req.Note)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, row)
}
