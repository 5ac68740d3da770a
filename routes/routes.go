package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sinar-terang/controllers"
	"sinar-terang/middleware"
)

type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Product *controllers.ProductController
	Member  *controllers.MemberController
	Sales   *controllers.SalesController
	Cashier *controllers.CashierController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, jwtSecret string) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.POST("/auth/login", ctrl.Auth.Login)

	authRequired := middleware.AuthMiddleware(jwtSecret)
	adminOnly := middleware.AdminMiddleware()

	router.GET("/auth/profile", authRequired, ctrl.Auth.GetProfile)

	api := router.Group("/api")
	api.Use(authRequired)
	{
		api.GET("/products", ctrl.Product.GetAllProducts)
		api.GET("/products/search", ctrl.Product.SearchProducts)
		api.GET("/products/export", ctrl.Product.ExportProducts)
		api.GET("/products/:id", ctrl.Product.GetProductByID)
		api.POST("/products", adminOnly, ctrl.Product.CreateProduct)
		api.POST("/products/import", adminOnly, ctrl.Product.ImportProducts)
		api.PATCH("/products/:id", adminOnly, ctrl.Product.UpdateProduct)
		api.DELETE("/products/:id", adminOnly, ctrl.Product.DeleteProduct)

		api.GET("/members", ctrl.Member.GetAllMembers)
		api.GET("/members/:id", ctrl.Member.GetMemberByID)
		api.POST("/members", adminOnly, ctrl.Member.CreateMember)
		api.PATCH("/members/:id", adminOnly, ctrl.Member.UpdateMember)
		api.DELETE("/members/:id", adminOnly, ctrl.Member.DeleteMember)

		api.GET("/sales", ctrl.Sales.GetAllSales)
		api.GET("/sales/:id", ctrl.Sales.GetSaleByID)
		api.POST("/sales", ctrl.Sales.CreateSale)

		api.GET("/users", adminOnly, ctrl.User.GetAllUsers)
		api.GET("/users/:id", adminOnly, ctrl.User.GetUserByID)
		api.POST("/users", adminOnly, ctrl.User.CreateUser)
	}

	cashier := api.Group("/cashier/sessions")
	{
		cashier.POST("", ctrl.Cashier.OpenSession)
		cashier.GET("/:id", ctrl.Cashier.GetSession)
		cashier.DELETE("/:id", ctrl.Cashier.Abandon)
		cashier.POST("/:id/items", ctrl.Cashier.AddItem)
		cashier.PATCH("/:id/items/:productId", ctrl.Cashier.ChangeQuantity)
		cashier.DELETE("/:id/items/:productId", ctrl.Cashier.RemoveItem)
		cashier.PUT("/:id/items/:productId/price", ctrl.Cashier.SetPrice)
		cashier.DELETE("/:id/items/:productId/price", ctrl.Cashier.ClearPrice)
		cashier.PUT("/:id/member", ctrl.Cashier.ChangeMember)
		cashier.POST("/:id/submit", ctrl.Cashier.Submit)
	}
}
