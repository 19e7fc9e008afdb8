package asset

import (
	"context"
	"fmt"
	"time"

	"chain-ledger/pkg/apperr"
	"chain-ledger/pkg/cache"
	"chain-ledger/pkg/logger"
)

const resolveCacheTTL = 5 * time.Minute

// Config 解析后的生效配置
type Config struct {
	Asset   *Asset        `json:"asset"`
	Network *Network      `json:"network"`
	Pair    *AssetNetwork `json:"pair"`
}

// Service 资产注册表，读多写少，无副作用
type Service interface {
	ResolveDeposit(ctx context.Context, assetID, networkID uint) (*Config, error)
	ResolveWithdraw(ctx context.Context, assetID, networkID uint) (*Config, error)

	ListAssets() ([]*AssetDetail, error)

	CreateAsset(asset *Asset) error
	CreateNetwork(network *Network) error
	CreateAssetNetwork(an *AssetNetwork) error
	SetAssetActive(assetID uint, active bool) error
}

// AssetDetail 资产及其各网络配置
type AssetDetail struct {
	Asset    *Asset          `json:"asset"`
	Networks []*AssetNetwork `json:"networks"`
}

type service struct {
	repo  Repository
	cache *cache.Client // 可为nil（测试环境）
}

// NewService 创建资产注册表服务
func NewService(repo Repository, cacheClient *cache.Client) Service {
	return &service{repo: repo, cache: cacheClient}
}

// ResolveDeposit 解析充值方向的配置
func (s *service) ResolveDeposit(ctx context.Context, assetID, networkID uint) (*Config, error) {
	cfg, err := s.resolve(ctx, assetID, networkID)
	if err != nil {
		return nil, err
	}
	if !cfg.Pair.CanDeposit {
		return nil, apperr.ErrAssetNetworkNotFound
	}
	return cfg, nil
}

// ResolveWithdraw 解析提现方向的配置
func (s *service) ResolveWithdraw(ctx context.Context, assetID, networkID uint) (*Config, error) {
	cfg, err := s.resolve(ctx, assetID, networkID)
	if err != nil {
		return nil, err
	}
	if !cfg.Pair.CanWithdraw {
		return nil, apperr.ErrAssetNetworkNotFound
	}
	return cfg, nil
}

func (s *service) resolve(ctx context.Context, assetID, networkID uint) (*Config, error) {
	key := fmt.Sprintf("assetnet:%d:%d", assetID, networkID)
	if s.cache != nil {
		var cached Config
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return s.check(&cached)
		} else if !cache.IsMiss(err) {
			logger.Warnf("asset config cache read failed: %v", err)
		}
	}

	a, err := s.repo.GetAssetByID(assetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.ErrAssetNotFound
	}

	n, err := s.repo.GetNetworkByID(networkID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.ErrNetworkNotFound
	}

	an, err := s.repo.GetAssetNetwork(assetID, networkID)
	if err != nil {
		return nil, err
	}
	if an == nil {
		return nil, apperr.ErrAssetNetworkNotFound
	}

	cfg := &Config{Asset: a, Network: n, Pair: an}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cfg, resolveCacheTTL); err != nil {
			logger.Warnf("asset config cache write failed: %v", err)
		}
	}
	return s.check(cfg)
}

// check 三层中任一处于禁用状态即视为不存在
func (s *service) check(cfg *Config) (*Config, error) {
	if !cfg.Asset.Active {
		return nil, apperr.ErrAssetNotFound
	}
	if !cfg.Network.Active {
		return nil, apperr.ErrNetworkNotFound
	}
	if !cfg.Pair.Active {
		return nil, apperr.ErrAssetNetworkNotFound
	}
	return cfg, nil
}

// ListAssets 列出可见资产及其网络配置
func (s *service) ListAssets() ([]*AssetDetail, error) {
	assets, err := s.repo.ListVisibleAssets()
	if err != nil {
		return nil, err
	}

	result := make([]*AssetDetail, 0, len(assets))
	for _, a := range assets {
		networks, err := s.repo.ListAssetNetworks(a.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &AssetDetail{Asset: a, Networks: networks})
	}
	return result, nil
}

// CreateAsset 创建资产
func (s *service) CreateAsset(asset *Asset) error {
	existing, err := s.repo.GetAssetBySymbol(asset.Symbol)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.New(apperr.KindConflict, "AssetExists", "asset already exists")
	}

	if err := s.repo.CreateAsset(asset); err != nil {
		return err
	}
	logger.Infof("Asset created: %s", asset.Symbol)
	return nil
}

// CreateNetwork 创建网络
func (s *service) CreateNetwork(network *Network) error {
	if !network.Family.Valid() {
		return apperr.New(apperr.KindValidation, "UnknownNetworkFamily", "unknown network family")
	}
	if err := s.repo.CreateNetwork(network); err != nil {
		return err
	}
	logger.Infof("Network created: %s (%s)", network.Name, network.Family)
	return nil
}

// CreateAssetNetwork 创建资产网络配置
func (s *service) CreateAssetNetwork(an *AssetNetwork) error {
	if err := s.repo.CreateAssetNetwork(an); err != nil {
		return err
	}
	s.invalidate(an.AssetID, an.NetworkID)
	logger.Infof("AssetNetwork created: asset %d on network %d", an.AssetID, an.NetworkID)
	return nil
}

// SetAssetActive 启用/禁用资产
func (s *service) SetAssetActive(assetID uint, active bool) error {
	a, err := s.repo.GetAssetByID(assetID)
	if err != nil {
		return err
	}
	if a == nil {
		return apperr.ErrAssetNotFound
	}
	a.Active = active
	if err := s.repo.UpdateAsset(a); err != nil {
		return err
	}
	s.invalidateAsset(assetID)
	logger.Infof("Asset %s active=%v", a.Symbol, active)
	return nil
}

// invalidateAsset 资产开关翻转后清掉其全部网络配置缓存，
// 否则禁用在缓存TTL内仍可解析通过
func (s *service) invalidateAsset(assetID uint) {
	pairs, err := s.repo.ListAssetNetworks(assetID)
	if err != nil {
		logger.Warnf("asset config cache invalidate failed: %v", err)
		return
	}
	for _, an := range pairs {
		s.invalidate(an.AssetID, an.NetworkID)
	}
}

func (s *service) invalidate(assetID, networkID uint) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("assetnet:%d:%d", assetID, networkID)
	if err := s.cache.Delete(context.Background(), key); err != nil {
		logger.Warnf("asset config cache invalidate failed: %v", err)
	}
}
