package asset

import (
	"context"
	"testing"

	"chain-ledger/internal/chain"
	"chain-ledger/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	assets   map[uint]*Asset
	networks map[uint]*Network
	pairs    map[[2]uint]*AssetNetwork

	pairListings []uint // ListAssetNetworks 调用记录
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		assets:   map[uint]*Asset{},
		networks: map[uint]*Network{},
		pairs:    map[[2]uint]*AssetNetwork{},
	}
}

func (r *fakeRepo) CreateAsset(a *Asset) error {
	r.assets[a.ID] = a
	return nil
}

func (r *fakeRepo) GetAssetByID(id uint) (*Asset, error) {
	return r.assets[id], nil
}

func (r *fakeRepo) GetAssetBySymbol(symbol string) (*Asset, error) {
	for _, a := range r.assets {
		if a.Symbol == symbol {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListVisibleAssets() ([]*Asset, error) {
	var out []*Asset
	for _, a := range r.assets {
		if a.Visible {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateAsset(a *Asset) error {
	r.assets[a.ID] = a
	return nil
}

func (r *fakeRepo) CreateNetwork(n *Network) error {
	r.networks[n.ID] = n
	return nil
}

func (r *fakeRepo) GetNetworkByID(id uint) (*Network, error) {
	return r.networks[id], nil
}

func (r *fakeRepo) ListNetworks() ([]*Network, error) {
	var out []*Network
	for _, n := range r.networks {
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeRepo) CreateAssetNetwork(an *AssetNetwork) error {
	r.pairs[[2]uint{an.AssetID, an.NetworkID}] = an
	return nil
}

func (r *fakeRepo) GetAssetNetwork(assetID, networkID uint) (*AssetNetwork, error) {
	return r.pairs[[2]uint{assetID, networkID}], nil
}

func (r *fakeRepo) ListAssetNetworks(assetID uint) ([]*AssetNetwork, error) {
	r.pairListings = append(r.pairListings, assetID)
	var out []*AssetNetwork
	for _, an := range r.pairs {
		if an.AssetID == assetID {
			out = append(out, an)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateAssetNetwork(an *AssetNetwork) error {
	r.pairs[[2]uint{an.AssetID, an.NetworkID}] = an
	return nil
}

func seed(repo *fakeRepo) {
	repo.assets[1] = &Asset{ID: 1, Symbol: "USDT", Active: true, Visible: true}
	repo.networks[2] = &Network{ID: 2, Name: "ethereum", Family: chain.FamilyEVM, Active: true}
	repo.pairs[[2]uint{1, 2}] = &AssetNetwork{
		AssetID:     1,
		NetworkID:   2,
		Decimals:    6,
		MinDeposit:  decimal.NewFromInt(10),
		MinWithdraw: decimal.NewFromInt(20),
		CanDeposit:  true,
		CanWithdraw: true,
		Active:      true,
	}
}

func TestResolveDeposit(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	cfg, err := svc.ResolveDeposit(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, "USDT", cfg.Asset.Symbol)
	require.Equal(t, int32(6), cfg.Pair.Decimals)
}

func TestResolveUnknownAsset(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	_, err := svc.ResolveDeposit(context.Background(), 99, 2)
	require.ErrorIs(t, err, apperr.ErrAssetNotFound)
}

func TestResolveUnknownNetwork(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	_, err := svc.ResolveDeposit(context.Background(), 1, 99)
	require.ErrorIs(t, err, apperr.ErrNetworkNotFound)
}

func TestResolveMissingPair(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	repo.networks[3] = &Network{ID: 3, Name: "tron", Family: chain.FamilyTron, Active: true}
	svc := NewService(repo, nil)

	_, err := svc.ResolveDeposit(context.Background(), 1, 3)
	require.ErrorIs(t, err, apperr.ErrAssetNetworkNotFound)
}

func TestResolveInactiveLayers(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	repo.assets[1].Active = false
	_, err := svc.ResolveDeposit(context.Background(), 1, 2)
	require.ErrorIs(t, err, apperr.ErrAssetNotFound)
	repo.assets[1].Active = true

	repo.networks[2].Active = false
	_, err = svc.ResolveDeposit(context.Background(), 1, 2)
	require.ErrorIs(t, err, apperr.ErrNetworkNotFound)
	repo.networks[2].Active = true

	repo.pairs[[2]uint{1, 2}].Active = false
	_, err = svc.ResolveDeposit(context.Background(), 1, 2)
	require.ErrorIs(t, err, apperr.ErrAssetNetworkNotFound)
}

func TestResolveDirectionFlags(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	repo.pairs[[2]uint{1, 2}].CanDeposit = false
	svc := NewService(repo, nil)

	_, err := svc.ResolveDeposit(context.Background(), 1, 2)
	require.ErrorIs(t, err, apperr.ErrAssetNetworkNotFound)

	// 提现方向不受充值开关影响
	_, err = svc.ResolveWithdraw(context.Background(), 1, 2)
	require.NoError(t, err)
}

func TestCreateAssetDuplicateSymbol(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	err := svc.CreateAsset(&Asset{ID: 5, Symbol: "USDT"})
	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateNetworkUnknownFamily(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	err := svc.CreateNetwork(&Network{ID: 9, Name: "mystery", Family: "mystery"})
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetAssetActive(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	require.NoError(t, svc.SetAssetActive(1, false))
	require.False(t, repo.assets[1].Active)

	err := svc.SetAssetActive(99, false)
	require.ErrorIs(t, err, apperr.ErrAssetNotFound)
}

func TestSetAssetActiveInvalidatesConfigs(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nil)

	// 开关翻转必须遍历该资产的网络配置来清缓存键，
	// 不能等TTL过期才停止解析
	require.NoError(t, svc.SetAssetActive(1, false))
	require.Equal(t, []uint{1}, repo.pairListings)

	_, err := svc.ResolveDeposit(context.Background(), 1, 2)
	require.ErrorIs(t, err, apperr.ErrAssetNotFound)
}
