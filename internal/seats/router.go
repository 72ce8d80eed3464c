package seats

import (
	"studyseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes configures all seat-related routes
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/seats")
	{
		seats.GET("/:id", controller.GetSeat)

		admin := seats.Group("")
		admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateSeat)
			admin.PUT("/:id", controller.UpdateSeat)
			admin.DELETE("/:id", controller.DeleteSeat)
		}
	}

	// Seat map for one shop
	rg.GET("/shops/:id/seats", controller.ListSeats)
}
