package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

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
)

const sweepBatchSize = 100

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Init(cfg.App.Env)
	defer logger.Sync()

	logger.Info("Starting worker...")

	// 初始化数据库
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	// 初始化Redis
	redisClient, err := cache.New(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// 初始化服务
	assetRepo := asset.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	txRepo := transaction.NewRepository(db)
	auditRepo := audit.NewRepository(db)

	transactor := database.NewTransactor(db)
	machine := transaction.NewManager(transactor, txRepo, walletRepo)
	assetSvc := asset.NewService(assetRepo, redisClient)
	auditSvc := audit.NewService(auditRepo)

	depositSvc := deposit.NewService(assetSvc, txRepo, machine, transactor, auditSvc)
	withdrawalSvc := withdrawal.NewService(assetSvc, txRepo, walletRepo, machine, transactor, auditSvc, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动后台任务
	go runPayoutRedispatcher(ctx, withdrawalSvc, cfg.Worker)
	go runEvidenceSweeper(ctx, depositSvc, cfg.Worker)

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	logger.Info("Worker exited")
}

// runPayoutRedispatcher 周期性重发停留在 ACCEPTED 的派发任务
func runPayoutRedispatcher(ctx context.Context, svc withdrawal.Service, cfg config.WorkerConfig) {
	ticker := time.NewTicker(cfg.DispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-cfg.DispatchStaleAfter)
			n, err := svc.RedispatchStale(ctx, cutoff, sweepBatchSize)
			if err != nil {
				logger.Errorf("Payout redispatch failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Infof("Re-dispatched %d stale payouts", n)
			}
		}
	}
}

// runEvidenceSweeper 周期性作废超期未确认的充值凭证
func runEvidenceSweeper(ctx context.Context, svc deposit.Service, cfg config.WorkerConfig) {
	ticker := time.NewTicker(cfg.DispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-cfg.EvidenceExpiry)
			n, err := svc.ExpireStale(ctx, cutoff, sweepBatchSize)
			if err != nil {
				logger.Errorf("Evidence sweep failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Infof("Expired %d stale deposit evidences", n)
			}
		}
	}
}
