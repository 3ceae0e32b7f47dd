package dto

// ==================== 验证码登录 ====================

// RequestOTPRequest 请求验证码
type RequestOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Role   string `json:"role" binding:"required"` // owner / storeman
}

// RequestOTPResponse 验证码下发结果
type RequestOTPResponse struct {
	Mobile string `json:"mobile"`
	// DebugCode 仅非生产环境回传，便于联调
	DebugCode string `json:"debug_code,omitempty"`
}

// VerifyOTPRequest 校验验证码
type VerifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
}

// ==================== 管理员登录 ====================

// AdminLoginRequest 管理员账号密码登录
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
