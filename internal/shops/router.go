package shops

import (
	"studyseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupShopRoutes configures all shop-related routes
func SetupShopRoutes(rg *gin.RouterGroup, controller *Controller) {
	shops := rg.Group("/shops")
	{
		// Public browsing
		shops.GET("", controller.ListShops)
		shops.GET("/:id", controller.GetShop)

		// Admin management
		admin := shops.Group("")
		admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateShop)
			admin.PUT("/:id", controller.UpdateShop)
			admin.DELETE("/:id", controller.DeleteShop)
		}
	}
}
