package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studyseat/internal/auth"
	"studyseat/internal/notifications"
	"studyseat/internal/orders"
	"studyseat/internal/reviews"
	"studyseat/internal/schedules"
	"studyseat/internal/seats"
	"studyseat/internal/shared/config"
	"studyseat/internal/shared/database"
	"studyseat/internal/shops"
	"studyseat/internal/users"
	"studyseat/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// ordersRepo is shared with the reconciler started from main
	ordersRepo orders.Repository
}

// NewRouter creates a new router instance. producer may be nil when Kafka is
// not configured.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupShopAndSeatRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// browseCache backs read-heavy shop and seat listings. Nil when Redis is
// unavailable; services fall back to direct store reads.
func (r *Router) browseCache() cache.Service {
	client := r.db.GetRedisClient()
	if client == nil {
		return nil
	}
	return cache.NewService(client)
}

// OrdersRepository exposes the repository backing order routes so the status
// reconciler sweeps the same store the API writes to.
func (r *Router) OrdersRepository() orders.Repository {
	if r.ordersRepo == nil {
		r.ordersRepo = orders.NewRepository(r.db.GetPostgreSQL())
	}
	return r.ordersRepo
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "studyseat-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "studyseat-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupShopAndSeatRoutes(rg *gin.RouterGroup) {
	browseCache := r.browseCache()

	shopRepo := shops.NewRepository(r.db.GetPostgreSQL())
	shopService := shops.NewService(shopRepo, browseCache)
	shopController := shops.NewController(shopService)
	shops.SetupShopRoutes(rg, shopController)

	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo, browseCache)
	seatController := seats.NewController(seatService)
	seats.SetupSeatRoutes(rg, seatController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	pg := r.db.GetPostgreSQL()

	scheduleRepo := schedules.NewRepository(pg)
	scheduleService := schedules.NewService(scheduleRepo)
	scheduleController := schedules.NewController(scheduleService)
	schedules.SetupScheduleRoutes(rg, scheduleController)

	seatService := seats.NewService(seats.NewRepository(pg), nil)
	userRepo := users.NewRepository(pg)
	locker := orders.NewSeatLocker(r.db.GetRedisClient(), r.config.Redis.SeatLockTTL)

	orderRepo := r.OrdersRepository()
	orderService := orders.NewService(orderRepo, scheduleService, seatService, userRepo, r.producer, locker)
	orderController := orders.NewController(orderService)
	orders.SetupOrderRoutes(rg, orderController)

	reviewRepo := reviews.NewRepository(pg)
	reviewService := reviews.NewService(reviewRepo, orderRepo)
	reviewController := reviews.NewController(reviewService)
	reviews.SetupReviewRoutes(rg, reviewController)
}
