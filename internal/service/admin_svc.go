package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/model"
)

// ==================== AdminService 管理员登录 ====================

// AdminService 平台管理员为配置内置账号，密码比对 bcrypt 哈希
type AdminService struct {
	username     string
	passwordHash string
}

// NewAdminService 创建管理员服务
func NewAdminService(username, passwordHash string) *AdminService {
	return &AdminService{username: username, passwordHash: passwordHash}
}

// Enabled 是否配置了管理员账号
func (s *AdminService) Enabled() bool {
	return s.username != "" && s.passwordHash != ""
}

// Login 账号密码登录
func (s *AdminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	if !s.Enabled() {
		return nil, apperr.Unauthorized("管理员登录未启用")
	}
	if req.Username != s.username {
		return nil, apperr.Unauthorized("用户名或密码错误")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("用户名或密码错误")
	}

	token, err := middleware.GenerateAccessToken(0, s.username, model.RoleAdmin)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        model.RoleAdmin,
		Name:        s.username,
	}, nil
}

// HashPassword 生成 bcrypt 哈希，初始化配置时使用
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
