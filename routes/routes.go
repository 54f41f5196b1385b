package routes

import (
	"aidla/controllers"
	"aidla/libs"
	"aidla/middleware"
	"aidla/repositories"
	"aidla/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	backend := libs.NewBackendClient()
	carts := services.NewCartService(repositories.NewCartRepository())
	checkout := services.NewCheckoutService(carts, backend)

	cartCtrl := controllers.NewCartController(carts, backend)
	checkoutCtrl := controllers.NewCheckoutController(checkout)
	historyCtrl := controllers.NewHistoryController(backend)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:product_id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:product_id", cartCtrl.RemoveItem)

		auth.POST("/checkout", checkoutCtrl.Checkout)
		auth.GET("/history", historyCtrl.GetHistory)
	}
}
