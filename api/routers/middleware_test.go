package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chain-ledger/pkg/httputil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const jwtSecret = "test-jwt-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

func authRouter() *gin.Engine {
	r := gin.New()
	g := r.Group("/")
	g.Use(AuthMiddleware(jwtSecret))
	g.GET("/me", func(c *gin.Context) {
		httputil.Success(c, gin.H{"user_id": GetUserID(c)})
	})

	admin := g.Group("/admin")
	admin.Use(AdminMiddleware())
	admin.GET("/ping", func(c *gin.Context) {
		httputil.Success(c, nil)
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	authRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	authRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 42.0})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	authRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"user_id": 42.0})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	authRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAdminMiddleware(t *testing.T) {
	// 普通用户进不了管理端
	signed := signToken(t, jwt.MapClaims{"user_id": 42.0})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	authRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	signed = signToken(t, jwt.MapClaims{"user_id": 1.0, "admin": true})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	authRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func webhookRouter(secret string) *gin.Engine {
	r := gin.New()
	g := r.Group("/webhooks/:secret")
	g.Use(WebhookAuthMiddleware(secret))
	g.POST("/deposits", func(c *gin.Context) {
		httputil.Success(c, nil)
	})
	return r
}

func TestWebhookAuthValidSecret(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/s3cret/deposits", nil)
	webhookRouter("s3cret").ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookAuthWrongSecret(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/guess/deposits", nil)
	webhookRouter("s3cret").ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAuthEmptyConfiguredSecret(t *testing.T) {
	// 未配置密钥时一律拒绝，不能变成任意放行
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks//deposits", nil)
	webhookRouter("").ServeHTTP(w, req)
	require.NotEqual(t, http.StatusOK, w.Code)
}
