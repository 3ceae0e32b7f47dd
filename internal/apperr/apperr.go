package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ==================== 错误码 ====================

const (
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidRole  = "INVALID_ROLE"
	CodeInvalidOTP   = "INVALID_OTP"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL"
)

// ==================== AppError ====================

// AppError 业务错误，带错误码与对应的 HTTP 状态码
// 控制器边界通过 errors.As 取出并转为统一响应结构
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error // 底层原因，仅用于内部日志，不对外返回
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is 按错误码比较
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ==================== 构造函数 ====================

// NotFound 资源不存在
func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidRole 角色不合法
func InvalidRole(role string) *AppError {
	return &AppError{Code: CodeInvalidRole, Status: http.StatusBadRequest, Message: fmt.Sprintf("不支持的角色: %s", role)}
}

// InvalidOTP 验证码缺失/过期/不匹配
func InvalidOTP() *AppError {
	return &AppError{Code: CodeInvalidOTP, Status: http.StatusUnauthorized, Message: "验证码无效或已过期"}
}

// Conflict 唯一字段冲突
func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeConflict, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Validation 参数或文件校验失败
func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized 未认证或凭证失效
func Unauthorized(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden 无权限
func Forbidden(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Status: http.StatusForbidden, Message: msg}
}

// Internal 未预期的内部错误，对外只返回通用消息
func Internal(err error) *AppError {
	return &AppError{Code: CodeInternal, Status: http.StatusInternalServerError, Message: "服务器内部错误", Err: err}
}
