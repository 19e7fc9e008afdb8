package httputil

import (
	"net/http"

	"chain-ledger/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Error      *string     `json:"error"`
	StatusCode int         `json:"statusCode"`
	Message    *string     `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// PageData 分页数据
type PageData struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Items interface{} `json:"items"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	msg := "success"
	c.JSON(http.StatusOK, Response{
		Error:      nil,
		StatusCode: http.StatusOK,
		Message:    &msg,
		Data:       data,
	})
}

// SuccessWithPage 成功响应带分页
func SuccessWithPage(c *gin.Context, total int64, page, size int, items interface{}) {
	Success(c, PageData{
		Total: total,
		Page:  page,
		Size:  size,
		Items: items,
	})
}

// Fail 失败响应，错误名与状态码由错误类别决定
func Fail(c *gin.Context, err error) {
	status := statusOf(err)
	name := apperr.NameOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// 内部错误细节不外泄
		msg = "internal error"
	}
	c.JSON(status, Response{
		Error:      &name,
		StatusCode: status,
		Message:    &msg,
	})
}

// BadRequest 请求体解析失败
func BadRequest(c *gin.Context, message string) {
	name := "BadRequest"
	c.JSON(http.StatusBadRequest, Response{
		Error:      &name,
		StatusCode: http.StatusBadRequest,
		Message:    &message,
	})
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	name := apperr.ErrUnauthorized.Name
	c.JSON(http.StatusUnauthorized, Response{
		Error:      &name,
		StatusCode: http.StatusUnauthorized,
		Message:    &message,
	})
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInsufficiency:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
