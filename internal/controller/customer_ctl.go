package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/service"
)

// 导入文件大小上限 5MB
const maxImportFileSize = 5 << 20

type CustomerController struct {
	customerService *service.CustomerService
	access          *service.AccessService
}

func NewCustomerController(customerService *service.CustomerService, access *service.AccessService) *CustomerController {
	return &CustomerController{customerService: customerService, access: access}
}

// Create
// @Summary 创建客户
// @Tags Customer (客户模块)
// @Accept json
// @Produce json
// @Param body body dto.CreateCustomerRequest true "客户信息"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope "同店手机号冲突"
// @Security BearerAuth
// @Router /customers [post]
func (ctrl *CustomerController) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if err := checkStoreAccess(c, ctrl.access, req.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 查客户
// @Tags Customer (客户模块)
// @Produce json
// @Param id path int true "客户 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{id} [get]
func (ctrl *CustomerController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.customerService.Get(c.Request.Context(), id)
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
// @Summary 门店客户列表
// @Tags Customer (客户模块)
// @Produce json
// @Param store_id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{store_id}/customers [get]
func (ctrl *CustomerController) ListByStore(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	vos, err := ctrl.customerService.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// Update
// @Summary 更新客户
// @Tags Customer (客户模块)
// @Accept json
// @Produce json
// @Param id path int true "客户 ID"
// @Param body body dto.UpdateCustomerRequest true "待更新字段"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{id} [put]
func (ctrl *CustomerController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.customerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	vo, err := ctrl.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 删除客户
// @Description 级联删除该客户的订单与咨询
// @Tags Customer (客户模块)
// @Produce json
// @Param id path int true "客户 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (ctrl *CustomerController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.customerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "客户已删除")
}

// BulkImport
// @Summary 批量导入客户
// @Description 上传 csv / xlsx 文件批量导入，整批成功或整批失败
// @Tags Customer (客户模块)
// @Accept multipart/form-data
// @Produce json
// @Param store_id path int true "门店 ID"
// @Param file formData file true "客户清单文件"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "文件不合法或存在冲突行"
// @Security BearerAuth
// @Router /stores/{store_id}/customers/import [post]
func (ctrl *CustomerController) BulkImport(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, apperr.Validation("缺少上传文件 file"))
		return
	}
	if fileHeader.Size > maxImportFileSize {
		response.Fail(c, apperr.Validation("文件超过 5MB 上限"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, apperr.Internal(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Fail(c, apperr.Internal(err))
		return
	}

	result, err := ctrl.customerService.BulkImport(c.Request.Context(), storeID, fileHeader.Filename, data)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}

// Export
// @Summary 导出客户清单
// @Description 门店客户导出为 xlsx 文件
// @Tags Customer (客户模块)
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param store_id path int true "门店 ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /stores/{store_id}/customers/export [get]
func (ctrl *CustomerController) Export(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	data, err := ctrl.customerService.ExportXLSX(c.Request.Context(), storeID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	filename := fmt.Sprintf("customers_store_%d_%s.xlsx", storeID, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
