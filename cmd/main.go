package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storelink_erp_v1/internal/controller"
	"storelink_erp_v1/internal/middleware"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/render"
	"storelink_erp_v1/internal/repository"
	"storelink_erp_v1/internal/router"
	"storelink_erp_v1/internal/service"
	"storelink_erp_v1/internal/task"
	"storelink_erp_v1/pkg/config"
	"storelink_erp_v1/pkg/database"
	"storelink_erp_v1/pkg/logger"
)

// @title StoreLink ERP API
// @version 1.0
// @description 多租户门店后台：店主、门店、客户、商品、订单、促销与发票
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 配置与日志
	cfg, err := config.Load()
	if err != nil {
		// 日志尚未初始化，直接退出
		panic(err)
	}
	log, err := logger.Init(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 2. 数据库
	db := initDatabase(cfg)

	// 3. 依赖
	deps := initDependencies(cfg, db)

	// 4. 定时任务
	initTasks(deps)

	// 5. 路由
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers, deps.Services.Auth)

	// 6. 启动
	startServer(r, cfg.App.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Owner        repository.OwnerRepository
	StoreMan     repository.StoreManRepository
	Store        repository.StoreRepository
	Customer     repository.CustomerRepository
	Product      repository.ProductRepository
	Order        repository.OrderRepository
	Offer        repository.OfferRepository
	Notification repository.NotificationRepository
	Inquiry      repository.InquiryRepository
	Otp          repository.OtpStore
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Admin    *service.AdminService
	Access   *service.AccessService
	Owner    *service.OwnerService
	Store    *service.StoreService
	Customer *service.CustomerService
	Product  *service.ProductService
	Order    *service.OrderService
	Invoice  *service.InvoiceService
	Offer    *service.OfferService
	Inquiry  *service.InquiryService
	Notify   *service.NotifyService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.InitDB(cfg.Database.URL, database.Options{
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute,
	},
		&model.Owner{}, &model.StoreMan{},
		&model.Store{}, &model.Customer{}, &model.Product{},
		&model.Order{}, &model.OrderItem{},
		&model.Offer{}, &model.Notification{}, &model.Inquiry{},
		&model.OtpCode{},
	)
	if err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- JWT 全局配置 --------
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenTTL: cfg.JWT.TokenTTL(),
		Issuer:         cfg.JWT.Issuer,
	})

	// -------- Repo 层 --------
	repos := &Repositories{
		Owner:        repository.NewOwnerRepository(db),
		StoreMan:     repository.NewStoreManRepository(db),
		Store:        repository.NewStoreRepository(db),
		Customer:     repository.NewCustomerRepository(db),
		Product:      repository.NewProductRepository(db),
		Order:        repository.NewOrderRepository(db),
		Offer:        repository.NewOfferRepository(db),
		Notification: repository.NewNotificationRepository(db),
		Inquiry:      repository.NewInquiryRepository(db),
		Otp:          repository.NewOtpStore(db),
	}

	// -------- 基础设施 --------
	storage := initStorage(cfg)

	var sender service.SMSSender
	if cfg.SMS.GatewayURL != "" {
		sender = service.NewGatewaySMSSender(cfg.SMS.GatewayURL, "")
	} else {
		sender = &service.LogSMSSender{}
	}

	// -------- 业务服务 --------
	services := &Services{}
	services.Notify = service.NewNotifyService(repos.Notification, sender)
	services.Auth = service.NewAuthService(repos.Owner, repos.StoreMan, repos.Otp, sender, service.AuthOptions{
		CodeLength: cfg.OTP.Length,
		CodeTTL:    cfg.OTP.CodeTTL(),
		Env:        cfg.App.Env,
	})
	services.Admin = service.NewAdminService(cfg.Admin.Email, cfg.Admin.PasswordHash)
	services.Access = service.NewAccessService(repos.Store, repos.StoreMan)
	services.Owner = service.NewOwnerService(repos.Owner, repos.StoreMan, repos.Store)
	services.Store = service.NewStoreService(repos.Store, repos.Owner)
	services.Customer = service.NewCustomerService(repos.Customer, repos.Store)
	services.Product = service.NewProductService(repos.Product, repos.Store, storage)
	services.Order = service.NewOrderService(repos.Order, repos.Customer, repos.Product, repos.Store)
	services.Invoice = service.NewInvoiceService(services.Order, render.NewChromePDFRenderer(), service.InvoiceOptions{
		Mode:     cfg.Invoice.Mode,
		TaxPct:   cfg.Invoice.TaxPct,
		Currency: cfg.Invoice.Currency,
	})
	services.Offer = service.NewOfferService(repos.Offer, repos.Customer, repos.Store, services.Notify)
	services.Inquiry = service.NewInquiryService(repos.Inquiry, repos.Customer, repos.Store)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:     controller.NewAuthController(services.Auth, services.Admin),
		Owner:    controller.NewOwnerController(services.Owner, services.Access),
		Store:    controller.NewStoreController(services.Store, services.Access),
		Customer: controller.NewCustomerController(services.Customer, services.Access),
		Product:  controller.NewProductController(services.Product, services.Access),
		Order:    controller.NewOrderController(services.Order, services.Invoice, services.Customer, services.Access),
		Offer:    controller.NewOfferController(services.Offer, services.Access),
		Inquiry:  controller.NewInquiryController(services.Inquiry, services.Access),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化文件存储
func initStorage(cfg *config.Config) service.StorageProvider {
	basePath := cfg.Storage.BasePath
	if cfg.Storage.Provider == "local" {
		basePath = cfg.Storage.LocalDir
	}
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  basePath,
	})
	if err != nil {
		zap.L().Fatal("存储初始化失败", zap.Error(err))
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	otpTask := task.NewOtpPurgeTask(deps.Repos.Otp)
	otpTask.Start()

	offerTask := task.NewOfferSweepTask(deps.Repos.Offer)
	offerTask.Start()
}

// ==================== 服务启动 ====================

// startServer 启动服务并优雅停机
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("收到退出信号，开始优雅停机")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("停机超时，强制退出", zap.Error(err))
	}
	zap.L().Info("服务已退出")
}
