package routers

import (
	"strconv"

	"chain-ledger/internal/asset"
	"chain-ledger/internal/chain"
	"chain-ledger/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// AssetHandler 资产查询处理器
type AssetHandler struct {
	service asset.Service
}

// NewAssetHandler 创建资产查询处理器
func NewAssetHandler(service asset.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

// Register 注册路由
func (h *AssetHandler) Register(r *gin.RouterGroup) {
	r.GET("/assets", h.ListAssets)
}

// RegisterAdmin 注册管理员路由
func (h *AssetHandler) RegisterAdmin(r *gin.RouterGroup) {
	r.POST("/assets", h.CreateAsset)
	r.POST("/networks", h.CreateNetwork)
	r.POST("/asset-networks", h.CreateAssetNetwork)
	r.POST("/assets/:id/enable", h.setActive(true))
	r.POST("/assets/:id/disable", h.setActive(false))
}

// ListAssets 列出可见资产及网络配置
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets, err := h.service.ListAssets()
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, assets)
}

// CreateAssetRequest 创建资产
type CreateAssetRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url"`
	Visible *bool  `json:"visible"`
}

// CreateAsset 创建资产，默认启用且可见
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	a := &asset.Asset{
		Symbol:  req.Symbol,
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Active:  true,
		Visible: req.Visible == nil || *req.Visible,
	}
	if err := h.service.CreateAsset(a); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, a)
}

// CreateNetworkRequest 创建网络
type CreateNetworkRequest struct {
	Name              string `json:"name" binding:"required"`
	Family            string `json:"family" binding:"required"`
	CollectionAddress string `json:"collection_address"`
	ExplorerURL       string `json:"explorer_url"`
}

// CreateNetwork 创建网络
func (h *AssetHandler) CreateNetwork(c *gin.Context) {
	var req CreateNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	n := &asset.Network{
		Name:              req.Name,
		Family:            chain.Family(req.Family),
		CollectionAddress: req.CollectionAddress,
		ExplorerURL:       req.ExplorerURL,
		Active:            true,
	}
	if err := h.service.CreateNetwork(n); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, n)
}

// CreateAssetNetworkRequest 创建资产网络配置，限额与手续费为最小单位整数
type CreateAssetNetworkRequest struct {
	AssetID         uint   `json:"asset_id" binding:"required"`
	NetworkID       uint   `json:"network_id" binding:"required"`
	ContractAddress string `json:"contract_address"`
	Decimals        *int32 `json:"decimals" binding:"required"`
	MinDeposit      string `json:"min_deposit"`
	MinWithdraw     string `json:"min_withdraw"`
	WithdrawFee     string `json:"withdraw_fee"`
	CanDeposit      *bool  `json:"can_deposit"`
	CanWithdraw     *bool  `json:"can_withdraw"`
}

// CreateAssetNetwork 创建资产网络配置
func (h *AssetHandler) CreateAssetNetwork(c *gin.Context) {
	var req CreateAssetNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	an := &asset.AssetNetwork{
		AssetID:         req.AssetID,
		NetworkID:       req.NetworkID,
		ContractAddress: req.ContractAddress,
		Decimals:        *req.Decimals,
		CanDeposit:      req.CanDeposit == nil || *req.CanDeposit,
		CanWithdraw:     req.CanWithdraw == nil || *req.CanWithdraw,
		Active:          true,
	}

	var err error
	if an.MinDeposit, err = optionalMinorUnits(req.MinDeposit); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if an.MinWithdraw, err = optionalMinorUnits(req.MinWithdraw); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if an.WithdrawFee, err = optionalMinorUnits(req.WithdrawFee); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if err := h.service.CreateAssetNetwork(an); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Success(c, an)
}

func (h *AssetHandler) setActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httputil.BadRequest(c, "invalid asset id")
			return
		}
		if err := h.service.SetAssetActive(uint(id), active); err != nil {
			httputil.Fail(c, err)
			return
		}
		httputil.Success(c, nil)
	}
}
