package controller

import (
	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/service"
)

type OwnerController struct {
	ownerService *service.OwnerService
	access       *service.AccessService
}

func NewOwnerController(ownerService *service.OwnerService, access *service.AccessService) *OwnerController {
	return &OwnerController{ownerService: ownerService, access: access}
}

// Create
// @Summary 注册店主
// @Description 注册新店主（租户），手机号与邮箱全局唯一；此接口开放，无需登录
// @Tags Owner (店主模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateOwnerRequest true "店主信息"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope "手机号或邮箱冲突"
// @Router /owners [post]
func (ctrl *OwnerController) Create(c *gin.Context) {
	var req dto.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	vo, err := ctrl.ownerService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 查店主
// @Tags Owner (店主模块)
// @Produce json
// @Param id path int true "店主 ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /owners/{id} [get]
func (ctrl *OwnerController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := ctrl.access.CheckOwner(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), id); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.ownerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// List
// @Summary 店主列表
// @Description 仅管理员可用
// @Tags Owner (店主模块)
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/owners [get]
func (ctrl *OwnerController) List(c *gin.Context) {
	vos, err := ctrl.ownerService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// Update
// @Summary 更新店主
// @Tags Owner (店主模块)
// @Accept json
// @Produce json
// @Param id path int true "店主 ID"
// @Param body body dto.UpdateOwnerRequest true "待更新字段"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /owners/{id} [put]
func (ctrl *OwnerController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := ctrl.access.CheckOwner(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), id); err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	vo, err := ctrl.ownerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 删除店主
// @Description 级联删除名下门店、客户、订单等全部数据
// @Tags Owner (店主模块)
// @Produce json
// @Param id path int true "店主 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /owners/{id} [delete]
func (ctrl *OwnerController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := ctrl.access.CheckOwner(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), id); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.ownerService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "店主已删除")
}

// ==================== 门店操作员 ====================

// CreateStoreMan
// @Summary 指派门店操作员
// @Description 一个门店至多一个操作员，手机号全局唯一
// @Tags Owner (店主模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateStoreManRequest true "操作员信息"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /storemans [post]
func (ctrl *OwnerController) CreateStoreMan(c *gin.Context) {
	var req dto.CreateStoreManRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if err := checkStoreAccess(c, ctrl.access, req.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.ownerService.CreateStoreMan(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// GetStoreMan
// @Summary 查门店操作员
// @Tags Owner (店主模块)
// @Produce json
// @Param id path int true "操作员 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /storemans/{id} [get]
func (ctrl *OwnerController) GetStoreMan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.ownerService.GetStoreMan(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, vo.StoreID); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// DeleteStoreMan
// @Summary 删除门店操作员
// @Tags Owner (店主模块)
// @Produce json
// @Param id path int true "操作员 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /storemans/{id} [delete]
func (ctrl *OwnerController) DeleteStoreMan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.ownerService.GetStoreMan(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, vo.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.ownerService.DeleteStoreMan(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "操作员已删除")
}
