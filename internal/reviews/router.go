package reviews

import (
	"studyseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes configures review routes. Listing is public; writing
// requires auth, moderation requires admin.
func SetupReviewRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/shops/:id/reviews", controller.ListShopReviews)
	rg.POST("/shops/:id/reviews", middleware.JWTAuth(), controller.CreateReview)

	reviews := rg.Group("/reviews")
	reviews.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		reviews.DELETE("/:id", controller.DeleteReview)
	}
}
