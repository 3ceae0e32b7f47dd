package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storelink_erp_v1/internal/apperr"
)

// ==================== 统一响应信封 ====================

// Envelope 统一响应结构
type Envelope struct {
	Status  string      `json:"status"`
	// 错误响应 data 显式置 null，客户端好做统一解析
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// OK 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: "success", Data: data})
}

// OKMessage 成功响应，仅带消息
func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Message: message})
}

// Fail 错误响应。业务错误按 AppError 映射状态码与消息，
// 其余错误一律 500 且只回泛化消息，细节写日志。
func Fail(c *gin.Context, err error) {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusInternalServerError {
			zap.L().Error("内部错误",
				zap.String("path", c.FullPath()),
				zap.Error(appErr.Unwrap()),
			)
		}
		c.JSON(appErr.Status, Envelope{Status: "error", Message: appErr.Message})
		return
	}

	zap.L().Error("未分类错误",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, Envelope{Status: "error", Message: "服务器内部错误"})
}

// BadRequest 参数绑定失败响应
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Status: "error", Message: message})
}
