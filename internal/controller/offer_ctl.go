package controller

import (
	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/service"
)

type OfferController struct {
	offerService *service.OfferService
	access       *service.AccessService
}

func NewOfferController(offerService *service.OfferService, access *service.AccessService) *OfferController {
	return &OfferController{offerService: offerService, access: access}
}

// Create
// @Summary 创建促销活动
// @Description store_id 为空表示全平台活动（仅管理员）；指定门店时校验归属
// @Tags Offer (促销模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateOfferRequest true "活动信息"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /offers [post]
func (ctrl *OfferController) Create(c *gin.Context) {
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if req.StoreID != nil {
		if err := checkStoreAccess(c, ctrl.access, *req.StoreID); err != nil {
			response.Fail(c, err)
			return
		}
	}

	vo, err := ctrl.offerService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 查活动
// @Tags Offer (促销模块)
// @Produce json
// @Param id path int true "活动 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /offers/{id} [get]
func (ctrl *OfferController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.offerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// List
// @Summary 活动列表
// @Tags Offer (促销模块)
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /offers [get]
func (ctrl *OfferController) List(c *gin.Context) {
	vos, err := ctrl.offerService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// ListByStore
// @Summary 门店可见活动
// @Description 门店专属活动加全平台活动
// @Tags Offer (促销模块)
// @Produce json
// @Param store_id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{store_id}/offers [get]
func (ctrl *OfferController) ListByStore(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	vos, err := ctrl.offerService.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// Send
// @Summary 群发活动通知
// @Description 给活动受众（门店客户或全部客户）逐个发通知，返回触达统计
// @Tags Offer (促销模块)
// @Produce json
// @Param id path int true "活动 ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "活动已过期"
// @Security BearerAuth
// @Router /offers/{id}/send [post]
func (ctrl *OfferController) Send(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.offerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if vo.StoreID != nil {
		if err := checkStoreAccess(c, ctrl.access, *vo.StoreID); err != nil {
			response.Fail(c, err)
			return
		}
	}

	result, err := ctrl.offerService.Send(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}

// Update
// @Summary 更新活动
// @Tags Offer (促销模块)
// @Accept json
// @Produce json
// @Param id path int true "活动 ID"
// @Param body body dto.UpdateOfferRequest true "待更新字段"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /offers/{id} [put]
func (ctrl *OfferController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	existing, err := ctrl.offerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if existing.StoreID != nil {
		if err := checkStoreAccess(c, ctrl.access, *existing.StoreID); err != nil {
			response.Fail(c, err)
			return
		}
	}

	vo, err := ctrl.offerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 删除活动
// @Tags Offer (促销模块)
// @Produce json
// @Param id path int true "活动 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /offers/{id} [delete]
func (ctrl *OfferController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.offerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if vo.StoreID != nil {
		if err := checkStoreAccess(c, ctrl.access, *vo.StoreID); err != nil {
			response.Fail(c, err)
			return
		}
	}

	if err := ctrl.offerService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "活动已删除")
}
