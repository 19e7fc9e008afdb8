package asset

import (
	"errors"

	"gorm.io/gorm"
)

// Repository 资产仓储接口
type Repository interface {
	CreateAsset(asset *Asset) error
	GetAssetByID(id uint) (*Asset, error)
	GetAssetBySymbol(symbol string) (*Asset, error)
	ListVisibleAssets() ([]*Asset, error)
	UpdateAsset(asset *Asset) error

	CreateNetwork(network *Network) error
	GetNetworkByID(id uint) (*Network, error)
	ListNetworks() ([]*Network, error)

	CreateAssetNetwork(an *AssetNetwork) error
	GetAssetNetwork(assetID, networkID uint) (*AssetNetwork, error)
	ListAssetNetworks(assetID uint) ([]*AssetNetwork, error)
	UpdateAssetNetwork(an *AssetNetwork) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository 创建资产仓储
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateAsset 创建资产
func (r *repository) CreateAsset(asset *Asset) error {
	return r.db.Create(asset).Error
}

// GetAssetByID 通过ID获取资产
func (r *repository) GetAssetByID(id uint) (*Asset, error) {
	var asset Asset
	if err := r.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// GetAssetBySymbol 通过符号获取资产
func (r *repository) GetAssetBySymbol(symbol string) (*Asset, error) {
	var asset Asset
	if err := r.db.Where("symbol = ?", symbol).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// ListVisibleAssets 列出前端可见资产
func (r *repository) ListVisibleAssets() ([]*Asset, error) {
	var assets []*Asset
	if err := r.db.Where("visible = ?", true).Order("id ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateAsset 更新资产
func (r *repository) UpdateAsset(asset *Asset) error {
	return r.db.Save(asset).Error
}

// CreateNetwork 创建网络
func (r *repository) CreateNetwork(network *Network) error {
	return r.db.Create(network).Error
}

// GetNetworkByID 通过ID获取网络
func (r *repository) GetNetworkByID(id uint) (*Network, error) {
	var network Network
	if err := r.db.First(&network, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &network, nil
}

// ListNetworks 列出网络
func (r *repository) ListNetworks() ([]*Network, error) {
	var networks []*Network
	if err := r.db.Order("id ASC").Find(&networks).Error; err != nil {
		return nil, err
	}
	return networks, nil
}

// CreateAssetNetwork 创建资产网络配置
func (r *repository) CreateAssetNetwork(an *AssetNetwork) error {
	return r.db.Create(an).Error
}

// GetAssetNetwork 获取资产网络配置
func (r *repository) GetAssetNetwork(assetID, networkID uint) (*AssetNetwork, error) {
	var an AssetNetwork
	if err := r.db.Where("asset_id = ? AND network_id = ?", assetID, networkID).First(&an).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &an, nil
}

// ListAssetNetworks 列出资产的网络配置
func (r *repository) ListAssetNetworks(assetID uint) ([]*AssetNetwork, error) {
	var ans []*AssetNetwork
	if err := r.db.Where("asset_id = ?", assetID).Order("network_id ASC").Find(&ans).Error; err != nil {
		return nil, err
	}
	return ans, nil
}

// UpdateAssetNetwork 更新资产网络配置
func (r *repository) UpdateAssetNetwork(an *AssetNetwork) error {
	return r.db.Save(an).Error
}
