package controller

import (
	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/service"
)

type AuthController struct {
	authService  *service.AuthService
	adminService *service.AdminService
}

func NewAuthController(authService *service.AuthService, adminService *service.AdminService) *AuthController {
	return &AuthController{authService: authService, adminService: adminService}
}

// RequestOTP
// @Summary 请求登录验证码
// @Description 给已注册的店主或门店操作员手机号下发一次性验证码
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.RequestOTPRequest true "手机号与角色"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "手机号未注册"
// @Router /auth/request-otp [post]
func (ctrl *AuthController) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	resp, err := ctrl.authService.RequestOTP(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, resp)
}

// VerifyOTP
// @Summary 校验验证码并登录
// @Description 验证码一次有效，校验通过签发 Bearer Token
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.VerifyOTPRequest true "手机号、角色与验证码"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope "验证码无效或已过期"
// @Router /auth/verify-otp [post]
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	resp, err := ctrl.authService.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, resp)
}

// AdminLogin
// @Summary 管理员登录
// @Description 平台管理员账号密码登录
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.AdminLoginRequest true "账号密码"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/login [post]
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	resp, err := ctrl.adminService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, resp)
}
