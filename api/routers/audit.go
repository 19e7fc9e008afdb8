package routers

import (
	"strconv"

	"chain-ledger/internal/audit"
	"chain-ledger/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// AuditHandler 审计日志查询处理器
type AuditHandler struct {
	service audit.Service
}

// NewAuditHandler 创建审计日志查询处理器
func NewAuditHandler(service audit.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

// Register 注册路由
func (h *AuditHandler) Register(r *gin.RouterGroup) {
	r.GET("/audit-logs", h.ListAuditLogs)
}

// ListAuditLogs 列出当前用户的审计日志
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	userID := GetUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	logs, total, err := h.service.ListByUser(userID, page, pageSize)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.SuccessWithPage(c, total, page, pageSize, logs)
}
