package routers

import (
	"net/http"
	"time"

	"chain-ledger/internal/asset"
	"chain-ledger/internal/audit"
	"chain-ledger/internal/deposit"
	"chain-ledger/internal/transaction"
	"chain-ledger/internal/wallet"
	"chain-ledger/internal/withdrawal"
	"chain-ledger/pkg/config"

	"github.com/gin-gonic/gin"
)

// Services 服务集合
type Services struct {
	Asset       asset.Service
	Wallet      wallet.Service
	Transaction transaction.Service
	Deposit     deposit.Service
	Withdrawal  withdrawal.Service
	Audit       audit.Service
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	router := gin.New()
	router.Use(LoggerMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(CORSMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		assetHandler := NewAssetHandler(svc.Asset)
		assetHandler.Register(apiV1)

		protected := apiV1.Group("")
		protected.Use(AuthMiddleware(cfg.JWT.Secret))
		{
			NewDepositHandler(svc.Deposit, svc.Asset).Register(protected)
			NewWithdrawalHandler(svc.Withdrawal, svc.Asset).Register(protected)
			NewTransactionHandler(svc.Transaction).Register(protected)
			NewWalletHandler(svc.Wallet).Register(protected)
			NewAuditHandler(svc.Audit).Register(protected)

			admin := protected.Group("/admin")
			admin.Use(AdminMiddleware())
			{
				NewAdminHandler(svc.Withdrawal).Register(admin)
				assetHandler.RegisterAdmin(admin)
			}
		}
	}

	// 链上监控方与签名方回调，共享密钥认证
	webhooks := router.Group("/webhooks/:secret")
	webhooks.Use(WebhookAuthMiddleware(cfg.Webhook.Secret))
	{
		NewWebhookHandler(svc.Deposit, svc.Withdrawal).Register(webhooks)
	}

	return router
}
