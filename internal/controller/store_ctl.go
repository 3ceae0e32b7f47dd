package controller

import (
	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/service"
)

type StoreController struct {
	storeService *service.StoreService
	access       *service.AccessService
}

func NewStoreController(storeService *service.StoreService, access *service.AccessService) *StoreController {
	return &StoreController{storeService: storeService, access: access}
}

// Create
// @Summary 开店
// @Description 店主给自己开门店；管理员可替任意店主开店
// @Tags Store (门店模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateStoreRequest true "门店信息"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /stores [post]
func (ctrl *StoreController) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if err := ctrl.access.CheckOwner(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), req.OwnerID); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.storeService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 查门店
// @Tags Store (门店模块)
// @Produce json
// @Param id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{id} [get]
func (ctrl *StoreController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, id); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.storeService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// List
// @Summary 门店列表
// @Description 店主看本人门店；管理员看全部
// @Tags Store (门店模块)
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores [get]
func (ctrl *StoreController) List(c *gin.Context) {
	role := middleware.GetUserRole(c)
	if role == model.RoleAdmin {
		vos, err := ctrl.storeService.List(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, vos)
		return
	}

	vos, err := ctrl.storeService.ListByOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// Update
// @Summary 更新门店
// @Tags Store (门店模块)
// @Accept json
// @Produce json
// @Param id path int true "门店 ID"
// @Param body body dto.UpdateStoreRequest true "待更新字段"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{id} [put]
func (ctrl *StoreController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, id); err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	vo, err := ctrl.storeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 关店
// @Description 级联删除门店下客户、商品、订单与操作员
// @Tags Store (门店模块)
// @Produce json
// @Param id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{id} [delete]
func (ctrl *StoreController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, id); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.storeService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "门店已删除")
}
