package router

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	paymentRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:payment", redisPrefix),
		WindowSeconds: cfg.Security.PaymentRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PaymentRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.PaymentRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		cart := apiV1.Group("/cart")
		{
			cart.POST("/get-or-create", publicHandler.GetOrCreateCart)
			cart.POST("/add-item", publicHandler.AddCartItem)
			cart.POST("/update-item", publicHandler.UpdateCartItem)
			cart.POST("/remove-item", publicHandler.RemoveCartItem)
			cart.POST("/booking", publicHandler.SetBookingDetails)
			cart.POST("/clear", publicHandler.ClearCart)
		}

		orders := apiV1.Group("/orders")
		{
			orders.POST("/create", publicHandler.CreateOrder)
		}

		payments := apiV1.Group("/payments")
		{
			payments.POST("/process",
				RateLimitMiddleware(cache.Client(), paymentRule, KeyByIP),
				publicHandler.ProcessPayment,
			)
		}

		referrals := apiV1.Group("/referrals")
		{
			referrals.POST("/balance", publicHandler.ReferralBalance)
			referrals.POST("/code", publicHandler.ReferralCode)
		}

		assistant := apiV1.Group("/assistant")
		{
			assistant.GET("/config", publicHandler.AssistantConfig)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
