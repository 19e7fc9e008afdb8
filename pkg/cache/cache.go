package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chain-ledger/pkg/config"
	"chain-ledger/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Client Redis客户端包装，由入口构造并注入
type Client struct {
	rdb *redis.Client
}

// New 建立Redis连接
func New(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connected successfully")
	return &Client{rdb: rdb}, nil
}

// Close 关闭Redis连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Set 设置缓存
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, expiration).Err()
}

// Get 获取缓存，未命中返回redis.Nil
func (c *Client) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// Push 入队（左进），供外部消费方右出
func (c *Client) Push(ctx context.Context, queue string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.LPush(ctx, queue, data).Err()
}

// IsMiss 判断是否为缓存未命中
func IsMiss(err error) bool {
	return err == redis.Nil
}
