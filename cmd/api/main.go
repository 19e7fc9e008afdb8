package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chain-ledger/api/routers"
	"chain-ledger/internal/asset"
	"chain-ledger/internal/audit"
	"chain-ledger/internal/deposit"
	"chain-ledger/internal/transaction"
	"chain-ledger/internal/wallet"
	"chain-ledger/internal/withdrawal"
	"chain-ledger/pkg/cache"
	"chain-ledger/pkg/config"
	"chain-ledger/pkg/database"
	"chain-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Init(cfg.App.Env)
	defer logger.Sync()

	logger.Infof("Starting %s v%s", cfg.App.Name, cfg.App.Version)

	// 初始化数据库
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	// 自动迁移
	if err := autoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化Redis
	redisClient, err := cache.New(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// 初始化服务
	services := initServices(db, redisClient)

	// 初始化Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := routers.SetupRouter(cfg, services)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      httpRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("HTTP server listening on port %d", cfg.App.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&asset.Asset{},
		&asset.Network{},
		&asset.AssetNetwork{},
		&wallet.Wallet{},
		&transaction.WalletTransaction{},
		&audit.AuditLog{},
	)
}

func initServices(db *gorm.DB, redisClient *cache.Client) *routers.Services {
	// Repositories
	assetRepo := asset.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	txRepo := transaction.NewRepository(db)
	auditRepo := audit.NewRepository(db)

	// Services
	transactor := database.NewTransactor(db)
	machine := transaction.NewManager(transactor, txRepo, walletRepo)

	assetSvc := asset.NewService(assetRepo, redisClient)
	auditSvc := audit.NewService(auditRepo)

	return &routers.Services{
		Asset:       assetSvc,
		Wallet:      wallet.NewService(walletRepo),
		Transaction: transaction.NewService(txRepo),
		Deposit:     deposit.NewService(assetSvc, txRepo, machine, transactor, auditSvc),
		Withdrawal:  withdrawal.NewService(assetSvc, txRepo, walletRepo, machine, transactor, auditSvc, redisClient),
		Audit:       auditSvc,
	}
}
