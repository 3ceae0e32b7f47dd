package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/service"
)

type OrderController struct {
	orderService    *service.OrderService
	invoiceService  *service.InvoiceService
	customerService *service.CustomerService
	access          *service.AccessService
}

func NewOrderController(
	orderService *service.OrderService,
	invoiceService *service.InvoiceService,
	customerService *service.CustomerService,
	access *service.AccessService,
) *OrderController {
	return &OrderController{
		orderService:    orderService,
		invoiceService:  invoiceService,
		customerService: customerService,
		access:          access,
	}
}

// Create
// @Summary 下单
// @Description 单价取当前商品价快照，总额由服务端计算；折扣只入库，开票时才兑现
// @Tags Order (订单模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "订单"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope "客户或商品不属于该门店"
// @Security BearerAuth
// @Router /orders [post]
func (ctrl *OrderController) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if err := checkStoreAccess(c, ctrl.access, req.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 订单详情
// @Tags Order (订单模块)
// @Produce json
// @Param id path int true "订单 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /orders/{id} [get]
func (ctrl *OrderController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.orderService.Get(c.Request.Context(), id)
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
// @Summary 门店订单列表
// @Tags Order (订单模块)
// @Produce json
// @Param store_id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{store_id}/orders [get]
func (ctrl *OrderController) ListByStore(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	vos, err := ctrl.orderService.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// ListByCustomer
// @Summary 客户订单列表
// @Tags Order (订单模块)
// @Produce json
// @Param customer_id path int true "客户 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{customer_id}/orders [get]
func (ctrl *OrderController) ListByCustomer(c *gin.Context) {
	customerID, err := parseIDParam(c, "customer_id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	customer, err := ctrl.customerService.Get(c.Request.Context(), customerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, customer.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	vos, err := ctrl.orderService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// UpdateStatus
// @Summary 更新订单状态
// @Tags Order (订单模块)
// @Accept json
// @Produce json
// @Param id path int true "订单 ID"
// @Param body body dto.UpdateOrderStatusRequest true "新状态"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /orders/{id}/status [put]
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	vo, err := ctrl.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 删除订单
// @Tags Order (订单模块)
// @Produce json
// @Param id path int true "订单 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (ctrl *OrderController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.orderService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "订单已删除")
}

// ==================== 发票 ====================

// GetInvoice
// @Summary 开票
// @Description 按订单即时生成发票，同一订单重复开票结果一致
// @Tags Order (订单模块)
// @Produce json
// @Param id path int true "订单 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /orders/{id}/invoice [get]
func (ctrl *OrderController) GetInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.invoiceService.Generate(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// GetInvoicePDF
// @Summary 开票并下载 PDF
// @Tags Order (订单模块)
// @Produce application/pdf
// @Param id path int true "订单 ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /orders/{id}/invoice/pdf [get]
func (ctrl *OrderController) GetInvoicePDF(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	pdf, err := ctrl.invoiceService.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, service.InvoiceNo(id)))
	c.Data(200, "application/pdf", pdf)
}
