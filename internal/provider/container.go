package provider

import (
	"time"

	"github.com/huong-next/internal/authz"
	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/config"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/queue"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	CustomerRepo      repository.CustomerRepository
	AddressRepo       repository.AddressRepository
	ProductRepo       repository.ProductRepository
	BrandRepo         repository.BrandRepository
	CategoryRepo      repository.CategoryRepository
	CartRepo          repository.CartRepository
	CouponRepo        repository.CouponRepository
	FeeRepo           repository.FeeRepository
	OrderRepo         repository.OrderRepository
	WarrantyRepo      repository.WarrantyRepository
	WarrantyClaimRepo repository.WarrantyClaimRepository
	SettingRepo       repository.SettingRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CustomerAuthService *service.CustomerAuthService
	EmailService        *service.EmailService
	CatalogService      *service.CatalogService
	CartService         *service.CartService
	PricingService      *service.PricingService
	VoucherService      *service.VoucherService
	CouponAdminService  *service.CouponAdminService
	FeeService          *service.FeeService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	WarrantyService     *service.WarrantyService
	CustomerService     *service.CustomerService
}

// NewContainer initializes shared infrastructure and builds the graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.FeeRepo = repository.NewFeeRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.WarrantyRepo = repository.NewWarrantyRepository(db)
	c.WarrantyClaimRepo = repository.NewWarrantyClaimRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.AdminRepo, c.Config.JWT)
	c.CustomerAuthService = service.NewCustomerAuthService(c.CustomerRepo, c.EmailService, c.Config.CustomerJWT)

	c.PricingService = service.NewPricingService(c.FeeRepo)
	c.PricingService.SetFallbacks(
		c.Config.Pricing.ShippingFee,
		c.Config.Pricing.FreeShippingThreshold,
		c.Config.Pricing.FreeshipMinSubtotal,
	)

	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.BrandRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.PricingService)
	c.VoucherService = service.NewVoucherService(c.CouponRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.FeeService = service.NewFeeService(c.FeeRepo)
	c.WarrantyService = service.NewWarrantyService(models.DB, c.WarrantyRepo, c.WarrantyClaimRepo, c.OrderRepo)
	c.OrderService = service.NewOrderService(
		models.DB,
		c.OrderRepo,
		c.CouponRepo,
		c.CustomerRepo,
		c.AddressRepo,
		c.ProductRepo,
		c.CartRepo,
		c.PricingService,
		c.WarrantyService,
		c.QueueClient,
		time.Duration(c.Config.Order.PaymentExpireMinutes)*time.Minute,
	)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.OrderService)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.AddressRepo)
}
