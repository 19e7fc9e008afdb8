package mocks

import (
	"context"
	"fmt"

	"chain-ledger/internal/asset"
	"chain-ledger/pkg/apperr"
)

// AssetRegistry 内存资产注册表，方向开关判定与真实实现一致
type AssetRegistry struct {
	Configs map[string]*asset.Config

	CreatedAssets   []*asset.Asset
	CreatedNetworks []*asset.Network
	CreatedPairs    []*asset.AssetNetwork
}

// NewAssetRegistry 创建内存资产注册表
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{Configs: map[string]*asset.Config{}}
}

// Add 预置一条生效配置
func (m *AssetRegistry) Add(cfg *asset.Config) {
	key := fmt.Sprintf("%d:%d", cfg.Pair.AssetID, cfg.Pair.NetworkID)
	m.Configs[key] = cfg
}

// ResolveDeposit 解析充值方向的配置
func (m *AssetRegistry) ResolveDeposit(ctx context.Context, assetID, networkID uint) (*asset.Config, error) {
	cfg := m.Configs[fmt.Sprintf("%d:%d", assetID, networkID)]
	if cfg == nil || !cfg.Pair.CanDeposit {
		return nil, apperr.ErrAssetNetworkNotFound
	}
	return cfg, nil
}

// ResolveWithdraw 解析提现方向的配置
func (m *AssetRegistry) ResolveWithdraw(ctx context.Context, assetID, networkID uint) (*asset.Config, error) {
	cfg := m.Configs[fmt.Sprintf("%d:%d", assetID, networkID)]
	if cfg == nil || !cfg.Pair.CanWithdraw {
		return nil, apperr.ErrAssetNetworkNotFound
	}
	return cfg, nil
}

// ListAssets 列出资产
func (m *AssetRegistry) ListAssets() ([]*asset.AssetDetail, error) {
	return nil, nil
}

// CreateAsset 创建资产
func (m *AssetRegistry) CreateAsset(a *asset.Asset) error {
	m.CreatedAssets = append(m.CreatedAssets, a)
	return nil
}

// CreateNetwork 创建网络
func (m *AssetRegistry) CreateNetwork(n *asset.Network) error {
	m.CreatedNetworks = append(m.CreatedNetworks, n)
	return nil
}

// CreateAssetNetwork 创建资产网络配置
func (m *AssetRegistry) CreateAssetNetwork(an *asset.AssetNetwork) error {
	m.CreatedPairs = append(m.CreatedPairs, an)
	return nil
}

// SetAssetActive 启用/禁用资产
func (m *AssetRegistry) SetAssetActive(assetID uint, active bool) error { return nil }
