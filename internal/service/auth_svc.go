package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthOptions 认证参数
type AuthOptions struct {
	CodeLength int           // 验证码位数
	CodeTTL    time.Duration // 验证码有效期
	Env        string        // dev 环境响应回带验证码便于联调
}

// AuthService OTP 登录
type AuthService struct {
	ownerRepo    repository.OwnerRepository
	storeManRepo repository.StoreManRepository
	otpStore     repository.OtpStore
	sender       SMSSender
	opts         AuthOptions
}

// NewAuthService 创建认证服务
func NewAuthService(
	ownerRepo repository.OwnerRepository,
	storeManRepo repository.StoreManRepository,
	otpStore repository.OtpStore,
	sender SMSSender,
	opts AuthOptions,
) *AuthService {
	if opts.CodeLength <= 0 {
		opts.CodeLength = 6
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 5 * time.Minute
	}
	return &AuthService{
		ownerRepo:    ownerRepo,
		storeManRepo: storeManRepo,
		otpStore:     otpStore,
		sender:       sender,
		opts:         opts,
	}
}

// generateCode 生成定长数字验证码
func (s *AuthService) generateCode() string {
	max := 1
	for i := 0; i < s.opts.CodeLength; i++ {
		max *= 10
	}
	return fmt.Sprintf("%0*d", s.opts.CodeLength, rand.Intn(max))
}

// subjectByMobile 按角色查当事人，返回 (ID, 姓名)
func (s *AuthService) subjectByMobile(ctx context.Context, mobile, role string) (int64, string, error) {
	switch role {
	case model.RoleOwner:
		owner, err := s.ownerRepo.GetByMobile(ctx, mobile)
		if err != nil {
			return 0, "", apperr.Internal(err)
		}
		if owner == nil {
			return 0, "", apperr.NotFound("手机号 %s 未注册为店主", mobile)
		}
		return owner.ID, owner.Name, nil
	case model.RoleStoreMan:
		sm, err := s.storeManRepo.GetByMobile(ctx, mobile)
		if err != nil {
			return 0, "", apperr.Internal(err)
		}
		if sm == nil {
			return 0, "", apperr.NotFound("手机号 %s 未注册为门店操作员", mobile)
		}
		return sm.ID, sm.Name, nil
	default:
		return 0, "", apperr.InvalidRole(role)
	}
}

// RequestOTP 请求登录验证码。
// 同号码同角色重复请求会覆盖旧码，旧码立即失效。
func (s *AuthService) RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) (*dto.RequestOTPResponse, error) {
	if _, _, err := s.subjectByMobile(ctx, req.Mobile, req.Role); err != nil {
		return nil, err
	}

	code := s.generateCode()
	expiresAt := time.Now().Add(s.opts.CodeTTL)
	if err := s.otpStore.Set(ctx, req.Mobile, req.Role, code, expiresAt); err != nil {
		return nil, apperr.Internal(err)
	}

	message := fmt.Sprintf("您的登录验证码为 %s，%d 分钟内有效。", code, int(s.opts.CodeTTL.Minutes()))
	if err := s.sender.Send(ctx, req.Mobile, message); err != nil {
		// 发送失败不暴露细节，码已落库，客户端可重试
		zap.L().Warn("验证码短信发送失败", zap.String("mobile", req.Mobile), zap.Error(err))
	}

	resp := &dto.RequestOTPResponse{Mobile: req.Mobile}
	if s.opts.Env == "dev" {
		resp.DebugCode = code
	}
	return resp, nil
}

// VerifyOTP 校验验证码并签发 Token。
// 核销是一次性的：同一个码并发提交只有一次成功。
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.TokenResponse, error) {
	if req.Role != model.RoleOwner && req.Role != model.RoleStoreMan {
		return nil, apperr.InvalidRole(req.Role)
	}

	// 先确认当事人存在，手机号未注册直接报 404，不白白核销验证码
	userID, name, err := s.subjectByMobile(ctx, req.Mobile, req.Role)
	if err != nil {
		return nil, err
	}

	ok, err := s.otpStore.ConsumeIfValid(ctx, req.Mobile, req.Role, req.Code, time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.InvalidOTP()
	}

	token, err := middleware.GenerateAccessToken(userID, name, req.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        req.Role,
		UserID:      userID,
		Name:        name,
	}, nil
}

// SubjectExists 供 JWT 中间件回查当事人是否仍存在
func (s *AuthService) SubjectExists(ctx context.Context, userID int64, role string) (bool, error) {
	switch role {
	case model.RoleOwner:
		owner, err := s.ownerRepo.GetByID(ctx, userID)
		return owner != nil, err
	case model.RoleStoreMan:
		sm, err := s.storeManRepo.GetByID(ctx, userID)
		return sm != nil, err
	case model.RoleAdmin:
		// 管理员为配置内置账号，不在数据库
		return true, nil
	default:
		return false, nil
	}
}
