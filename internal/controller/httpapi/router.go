package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with all public endpoints.
func NewRouter(h *Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/users")
	{
		api.POST("", h.RegisterUser)
		api.GET("/:username", h.GetUser)
		api.PUT("/:username/time-intervals", h.SetTimeIntervals)
		api.GET("/:username/blocked-dates", h.BlockedDates)
		api.GET("/:username/availability/month", h.MonthAvailability)
		api.GET("/:username/availability/day", h.DayAvailability)
		api.POST("/:username/bookings", h.CreateBooking)
		api.POST("/:username/blocks", h.CreateBlock)
		api.GET("/:username/blocks", h.ListBlocks)
		api.GET("/:username/calendar.png", h.CalendarImage)
	}

	return r
}
