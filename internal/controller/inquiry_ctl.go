package controller

import (
	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/service"
)

type InquiryController struct {
	inquiryService *service.InquiryService
	access         *service.AccessService
}

func NewInquiryController(inquiryService *service.InquiryService, access *service.AccessService) *InquiryController {
	return &InquiryController{inquiryService: inquiryService, access: access}
}

// Create
// @Summary 创建客户咨询
// @Tags Inquiry (咨询模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateInquiryRequest true "咨询内容"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /inquiries [post]
func (ctrl *InquiryController) Create(c *gin.Context) {
	var req dto.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if err := checkStoreAccess(c, ctrl.access, req.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.inquiryService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 查咨询
// @Tags Inquiry (咨询模块)
// @Produce json
// @Param id path int true "咨询 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /inquiries/{id} [get]
func (ctrl *InquiryController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.inquiryService.Get(c.Request.Context(), id)
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

// ListByStore
// @Summary 门店咨询列表
// @Tags Inquiry (咨询模块)
// @Produce json
// @Param store_id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{store_id}/inquiries [get]
func (ctrl *InquiryController) ListByStore(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	vos, err := ctrl.inquiryService.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// UpdateStatus
// @Summary 流转咨询状态
// @Description 允许的状态: Pending / Resolved / Closed
// @Tags Inquiry (咨询模块)
// @Accept json
// @Produce json
// @Param id path int true "咨询 ID"
// @Param body body dto.UpdateInquiryRequest true "新状态"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /inquiries/{id}/status [put]
func (ctrl *InquiryController) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.inquiryService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	vo, err := ctrl.inquiryService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 删除咨询
// @Tags Inquiry (咨询模块)
// @Produce json
// @Param id path int true "咨询 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /inquiries/{id} [delete]
func (ctrl *InquiryController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.inquiryService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.inquiryService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "咨询已删除")
}
