package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sinar-terang/config"
	"sinar-terang/controllers"
	"sinar-terang/middleware"
	"sinar-terang/repositories"
	"sinar-terang/services"
)

// App is the wired HTTP application. Cashier sessions live in memory, so the
// caller decides whether to run the idle session reaper.
type App struct {
	Router  *gin.Engine
	Cashier *services.CashierService
}

// NewApp expects config.LoadConfig and config.ConnectDB to have run.
// config.RedisClient may be nil, in which case the catalog is not cached.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	productRepo := repositories.NewProductRepository(config.DB)
	memberRepo := repositories.NewMemberRepository(config.DB)
	saleRepo := repositories.NewSaleRepository(config.DB)
	userRepo := repositories.NewUserRepository(config.DB)
	cache := repositories.NewRedisProductCache(config.RedisClient, cfg.ProductCacheTTL)

	productSvc := services.NewProductService(productRepo, cache, logger.Named("products"))
	memberSvc := services.NewMemberService(memberRepo, productRepo, cache, logger.Named("members"))
	salesSvc := services.NewSalesService(saleRepo, logger.Named("sales"))
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, logger.Named("auth"))
	cashierSvc := services.NewCashierService(productSvc, memberSvc, salesSvc, cfg.CashierSessionTTL, logger.Named("cashier"))

	if err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	SetupRoutes(router, Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		User:    controllers.NewUserController(authSvc),
		Product: controllers.NewProductController(productSvc),
		Member:  controllers.NewMemberController(memberSvc),
		Sales:   controllers.NewSalesController(salesSvc),
		Cashier: controllers.NewCashierController(cashierSvc),
	}, cfg.JWTSecret)

	return &App{Router: router, Cashier: cashierSvc}, nil
}
