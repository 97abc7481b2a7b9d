package router

import (
	"fmt"
	"strings"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/config"
	adminhandlers "github.com/huong-next/internal/http/handlers/admin"
	publichandlers "github.com/huong-next/internal/http/handlers/public"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, handlers and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "hn"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Storefront catalog, no auth.
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/brands", publicHandler.GetBrands)
		apiV1.GET("/categories", publicHandler.GetCategories)

		// Warranty lookup works for guests holding the card code.
		apiV1.GET("/warranties/:code", publicHandler.LookupWarranty)

		// Payment callbacks come from the gateway, not the browser.
		apiV1.POST("/payments/callback", publicHandler.PaymentCallback)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/password-reset/request", publicHandler.RequestPasswordReset)
			auth.POST("/password-reset/confirm", publicHandler.ConfirmPasswordReset)
		}

		// Cart, voucher and checkout run for guests with a session
		// header and for signed-in customers alike.
		shop := apiV1.Group("")
		shop.Use(OptionalCustomerAuthMiddleware(cfg.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			shop.GET("/cart", publicHandler.GetCart)
			shop.POST("/cart/items", publicHandler.AddCartItem)
			shop.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			shop.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			shop.DELETE("/cart", publicHandler.ClearCart)

			shop.GET("/voucher", publicHandler.GetVoucher)
			shop.POST("/voucher/apply", publicHandler.ApplyVoucher)
			shop.DELETE("/voucher", publicHandler.ClearVoucher)

			shop.POST("/orders", publicHandler.CreateOrder)
		}

		// Signed-in customer area.
		me := apiV1.Group("/me")
		me.Use(CustomerJWTAuthMiddleware(cfg.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			me.GET("", publicHandler.Me)
			me.GET("/coupons", publicHandler.MyCoupons)
			me.POST("/spin", publicHandler.SpinWheel)
			me.GET("/orders", publicHandler.MyOrders)
			me.GET("/orders/:id", publicHandler.MyOrder)
			me.POST("/orders/:id/cancel", publicHandler.CancelMyOrder)
			me.GET("/warranties", publicHandler.MyWarranties)
			me.POST("/warranty-claims", publicHandler.CreateClaim)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(
				AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
				AdminRBACMiddleware(c.AuthzService),
			)
			{
				authorized.GET("/me", adminHandler.Me)

				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProductAdmin)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/brands", adminHandler.ListBrandsAdmin)
				authorized.POST("/brands", adminHandler.CreateBrand)
				authorized.PUT("/brands/:id", adminHandler.UpdateBrand)
				authorized.DELETE("/brands/:id", adminHandler.DeleteBrand)

				authorized.GET("/categories", adminHandler.ListCategoriesAdmin)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/fees", adminHandler.ListFees)
				authorized.POST("/fees", adminHandler.CreateFee)
				authorized.PUT("/fees/:id", adminHandler.UpdateFee)
				authorized.DELETE("/fees/:id", adminHandler.DeleteFee)

				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.POST("/coupons/batch", adminHandler.GenerateCouponBatch)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrderAdmin)
				authorized.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.POST("/orders/:id/warranties", adminHandler.ReissueOrderWarranties)

				authorized.GET("/warranties", adminHandler.ListWarranties)
				authorized.GET("/warranties/:code", adminHandler.GetWarrantyAdmin)
				authorized.GET("/warranty-claims", adminHandler.ListWarrantyClaims)
				authorized.PUT("/warranty-claims/:id/status", adminHandler.UpdateClaimStatus)

				authorized.GET("/customers", adminHandler.ListCustomers)
				authorized.GET("/customers/:id", adminHandler.GetCustomer)
				authorized.PUT("/customers/:id/active", adminHandler.SetCustomerActive)

				authorized.GET("/authz/roles", adminHandler.ListRoles)
				authorized.POST("/authz/roles", adminHandler.CreateRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokePolicy)
				authorized.GET("/authz/admins", adminHandler.ListAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
