package routers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chain-ledger/internal/chain"
	"chain-ledger/internal/mocks"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func adminAssetRouter(registry *mocks.AssetRegistry) http.Handler {
	r := gin.New()
	NewAssetHandler(registry).RegisterAdmin(r.Group("/admin"))
	return r
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	return w
}

func TestCreateAssetRoute(t *testing.T) {
	registry := mocks.NewAssetRegistry()
	h := adminAssetRouter(registry)

	w := postJSON(t, h, "/admin/assets", `{"symbol":"USDT","name":"Tether USD"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, registry.CreatedAssets, 1)

	created := registry.CreatedAssets[0]
	require.Equal(t, "USDT", created.Symbol)
	require.True(t, created.Active)
	require.True(t, created.Visible)

	w = postJSON(t, h, "/admin/assets", `{"name":"missing symbol"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNetworkRoute(t *testing.T) {
	registry := mocks.NewAssetRegistry()
	h := adminAssetRouter(registry)

	w := postJSON(t, h, "/admin/networks", `{"name":"ethereum","family":"evm"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, registry.CreatedNetworks, 1)
	require.Equal(t, chain.FamilyEVM, registry.CreatedNetworks[0].Family)
	require.True(t, registry.CreatedNetworks[0].Active)
}

func TestCreateAssetNetworkRoute(t *testing.T) {
	registry := mocks.NewAssetRegistry()
	h := adminAssetRouter(registry)

	w := postJSON(t, h, "/admin/asset-networks",
		`{"asset_id":1,"network_id":2,"decimals":6,"min_deposit":"10","withdraw_fee":"2","can_withdraw":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, registry.CreatedPairs, 1)

	pair := registry.CreatedPairs[0]
	require.Equal(t, int32(6), pair.Decimals)
	require.True(t, pair.MinDeposit.Equal(decimal.NewFromInt(10)))
	require.True(t, pair.MinWithdraw.IsZero())
	require.True(t, pair.WithdrawFee.Equal(decimal.NewFromInt(2)))
	require.True(t, pair.CanDeposit)
	require.False(t, pair.CanWithdraw)
	require.True(t, pair.Active)
}

func TestCreateAssetNetworkRouteRejectsFractional(t *testing.T) {
	registry := mocks.NewAssetRegistry()
	h := adminAssetRouter(registry)

	// 限额按最小单位整数传入，不接受小数
	w := postJSON(t, h, "/admin/asset-networks",
		`{"asset_id":1,"network_id":2,"decimals":6,"min_deposit":"1.5"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, registry.CreatedPairs)
}
