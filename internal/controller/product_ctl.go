package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/api/response"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/service"
)

// 商品图片大小上限 10MB
const maxImageFileSize = 10 << 20

type ProductController struct {
	productService *service.ProductService
	access         *service.AccessService
}

func NewProductController(productService *service.ProductService, access *service.AccessService) *ProductController {
	return &ProductController{productService: productService, access: access}
}

// readImage 取可选的 image 表单文件
func readImage(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// 图片可选
		return "", nil, nil
	}
	if fileHeader.Size > maxImageFileSize {
		return "", nil, apperr.Validation("图片超过 10MB 上限")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return fileHeader.Filename, data, nil
}

// Create
// @Summary 上架商品
// @Description multipart 表单创建商品，image 文件可选
// @Tags Product (商品模块)
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "商品名"
// @Param price formData number true "单价"
// @Param description formData string false "描述"
// @Param store_id formData int true "门店 ID"
// @Param image formData file false "商品图片"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /products [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if err := checkStoreAccess(c, ctrl.access, req.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	imageName, imageData, err := readImage(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.productService.Create(c.Request.Context(), &req, imageName, imageData)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, vo)
}

// Get
// @Summary 查商品
// @Tags Product (商品模块)
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /products/{id} [get]
func (ctrl *ProductController) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.productService.Get(c.Request.Context(), id)
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
// @Summary 门店商品列表
// @Tags Product (商品模块)
// @Produce json
// @Param store_id path int true "门店 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{store_id}/products [get]
func (ctrl *ProductController) ListByStore(c *gin.Context) {
	storeID, err := parseIDParam(c, "store_id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, storeID); err != nil {
		response.Fail(c, err)
		return
	}

	vos, err := ctrl.productService.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vos)
}

// Update
// @Summary 更新商品
// @Description multipart 表单，带 image 时替换旧图
// @Tags Product (商品模块)
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /products/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	imageName, imageData, err := readImage(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	vo, err := ctrl.productService.Update(c.Request.Context(), id, &req, imageName, imageData)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, vo)
}

// Delete
// @Summary 下架商品
// @Tags Product (商品模块)
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	existing, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := checkStoreAccess(c, ctrl.access, existing.StoreID); err != nil {
		response.Fail(c, err)
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "商品已删除")
}
