package routers

import (
	"strconv"

	"chain-ledger/internal/wallet"
	"chain-ledger/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// WalletHandler 余额查询处理器
type WalletHandler struct {
	service wallet.Service
}

// NewWalletHandler 创建余额查询处理器
func NewWalletHandler(service wallet.Service) *WalletHandler {
	return &WalletHandler{service: service}
}

// Register 注册路由
func (h *WalletHandler) Register(r *gin.RouterGroup) {
	r.GET("/wallets", h.ListWallets)
	r.GET("/wallets/:asset_id", h.GetWallet)
}

// ListWallets 列出当前用户余额
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID := GetUserID(c)
	wallets, err := h.service.ListWallets(userID)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, wallets)
}

// GetWallet 获取单资产余额，未入账过的返回零余额
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID := GetUserID(c)
	assetID, err := strconv.ParseUint(c.Param("asset_id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid asset id")
		return
	}

	w, err := h.service.GetWallet(userID, uint(assetID))
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, w)
}
