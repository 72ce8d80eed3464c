package schedules

import (
	"github.com/gin-gonic/gin"
)

// SetupScheduleRoutes configures the schedule view routes. The static
// /seats/schedules prefix takes priority over the /seats/:id wildcard.
func SetupScheduleRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/seats")
	{
		seats.GET("/schedules/batch", controller.GetBatchSchedules)
		seats.GET("/:id/schedule", controller.GetSeatSchedule)
	}
}
