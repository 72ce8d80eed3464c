package orders

import (
	"studyseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes configures all order-related routes. Everything requires
// an authenticated user; cross-user listing is gated inside the controller.
func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller) {
	orders := rg.Group("/orders")
	orders.Use(middleware.JWTAuth())
	{
		orders.POST("", controller.CreateOrder)
		orders.GET("", controller.ListOrders)
		orders.GET("/:id", controller.GetOrder)
		orders.PATCH("/:id", controller.UpdateOrder)
	}
}
