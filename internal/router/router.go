package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storelink_erp_v1/internal/controller"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/model"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth     *controller.AuthController
	Owner    *controller.OwnerController
	Store    *controller.StoreController
	Customer *controller.CustomerController
	Product  *controller.ProductController
	Order    *controller.OrderController
	Offer    *controller.OfferController
	Inquiry  *controller.InquiryController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers, resolver middleware.SubjectResolver) {
	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// 开放路由：认证与店主注册
	auth := api.Group("/auth")
	{
		auth.POST("/request-otp", ctl.Auth.RequestOTP)
		auth.POST("/verify-otp", ctl.Auth.VerifyOTP)
	}
	api.POST("/admin/login", ctl.Auth.AdminLogin)
	api.POST("/owners", ctl.Owner.Create)

	// 登录后路由
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(resolver))
	{
		// 店主
		owners := authed.Group("/owners")
		{
			owners.GET("/:id", ctl.Owner.Get)
			owners.PUT("/:id", ctl.Owner.Update)
			owners.DELETE("/:id", ctl.Owner.Delete)
		}

		// 门店操作员，店主或管理员指派
		storemans := authed.Group("/storemans")
		storemans.Use(middleware.RequireRole(model.RoleOwner, model.RoleAdmin))
		{
			storemans.POST("", ctl.Owner.CreateStoreMan)
			storemans.GET("/:id", ctl.Owner.GetStoreMan)
			storemans.DELETE("/:id", ctl.Owner.DeleteStoreMan)
		}

		// 门店
		stores := authed.Group("/stores")
		{
			stores.POST("", middleware.RequireRole(model.RoleOwner, model.RoleAdmin), ctl.Store.Create)
			stores.GET("", ctl.Store.List)
			stores.GET("/:store_id", wrapStoreID(ctl.Store.Get))
			stores.PUT("/:store_id", middleware.RequireRole(model.RoleOwner, model.RoleAdmin), wrapStoreID(ctl.Store.Update))
			stores.DELETE("/:store_id", middleware.RequireRole(model.RoleOwner, model.RoleAdmin), wrapStoreID(ctl.Store.Delete))

			// 门店维度的子资源
			stores.GET("/:store_id/customers", ctl.Customer.ListByStore)
			stores.POST("/:store_id/customers/import", ctl.Customer.BulkImport)
			stores.GET("/:store_id/customers/export", ctl.Customer.Export)
			stores.GET("/:store_id/products", ctl.Product.ListByStore)
			stores.GET("/:store_id/orders", ctl.Order.ListByStore)
			stores.GET("/:store_id/offers", ctl.Offer.ListByStore)
			stores.GET("/:store_id/inquiries", ctl.Inquiry.ListByStore)
		}

		// 客户
		customers := authed.Group("/customers")
		{
			customers.POST("", ctl.Customer.Create)
			customers.GET("/:id", ctl.Customer.Get)
			customers.PUT("/:id", ctl.Customer.Update)
			customers.DELETE("/:id", ctl.Customer.Delete)
			customers.GET("/:id/orders", wrapCustomerID(ctl.Order.ListByCustomer))
		}

		// 商品
		products := authed.Group("/products")
		{
			products.POST("", ctl.Product.Create)
			products.GET("/:id", ctl.Product.Get)
			products.PUT("/:id", ctl.Product.Update)
			products.DELETE("/:id", ctl.Product.Delete)
		}

		// 订单与发票
		orders := authed.Group("/orders")
		{
			orders.POST("", ctl.Order.Create)
			orders.GET("/:id", ctl.Order.Get)
			orders.PUT("/:id/status", ctl.Order.UpdateStatus)
			orders.DELETE("/:id", ctl.Order.Delete)
			orders.GET("/:id/invoice", ctl.Order.GetInvoice)
			orders.GET("/:id/invoice/pdf", ctl.Order.GetInvoicePDF)
		}

		// 促销活动
		offers := authed.Group("/offers")
		{
			offers.POST("", ctl.Offer.Create)
			offers.GET("", ctl.Offer.List)
			offers.GET("/:id", ctl.Offer.Get)
			offers.PUT("/:id", ctl.Offer.Update)
			offers.POST("/:id/send", ctl.Offer.Send)
			offers.DELETE("/:id", ctl.Offer.Delete)
		}

		// 客户咨询
		inquiries := authed.Group("/inquiries")
		{
			inquiries.POST("", ctl.Inquiry.Create)
			inquiries.GET("/:id", ctl.Inquiry.Get)
			inquiries.PUT("/:id/status", ctl.Inquiry.UpdateStatus)
			inquiries.DELETE("/:id", ctl.Inquiry.Delete)
		}

		// 管理员
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/owners", ctl.Owner.List)
			admin.POST("/owners", ctl.Owner.Create)
		}
	}
}

// gin 同一前缀下路由参数名必须一致，门店子资源统一用 :store_id，
// 这两个包装器把参数名桥接给按 :id / :customer_id 取参的控制器
func wrapStoreID(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "id", Value: c.Param("store_id")})
		h(c)
	}
}

func wrapCustomerID(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "customer_id", Value: c.Param("id")})
		h(c)
	}
}
