package config

import (
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Webhook  WebhookConfig
	Worker   WorkerConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string
	Version string
	Port    int
	Env     string // development, staging, production
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret string
}

// WebhookConfig 回调配置
type WebhookConfig struct {
	// Secret 链上监控方回调使用的共享密钥（路径参数）
	Secret string
}

// WorkerConfig 后台任务配置
type WorkerConfig struct {
	// DispatchInterval 重发未广播提现的轮询间隔
	DispatchInterval time.Duration
	// DispatchStaleAfter 已通过但未广播多久后重发
	DispatchStaleAfter time.Duration
	// EvidenceExpiry 客户端凭证超过此时长未被链上确认则作废
	EvidenceExpiry time.Duration
}

// Load 加载配置
func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "chain-ledger"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Port:    getEnvInt("APP_PORT", 8080),
			Env:     getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "chain_ledger"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 100),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Webhook: WebhookConfig{
			Secret: getEnv("WEBHOOK_SECRET", ""),
		},
		Worker: WorkerConfig{
			DispatchInterval:   time.Duration(getEnvInt("WORKER_DISPATCH_INTERVAL_SEC", 60)) * time.Second,
			DispatchStaleAfter: time.Duration(getEnvInt("WORKER_DISPATCH_STALE_MIN", 10)) * time.Minute,
			EvidenceExpiry:     time.Duration(getEnvInt("WORKER_EVIDENCE_EXPIRY_HOURS", 72)) * time.Hour,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
