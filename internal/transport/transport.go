package transport

import (
	"net/http"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/transport/middleware"
	"github.com/Shrvnsthr/Event-Booking/pkg/auth"
	"github.com/gin-gonic/gin"
)

// InitRoutes builds the router with the public API, the authenticated
// booking routes, the admin event-management routes and the static
// frontend.
func InitRoutes(
	eventHandler *EventHandler,
	bookingHandler *BookingHandler,
	userHandler *UserHandler,
	tokens *auth.TokenManager,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// Auth
	router.POST("/signup", userHandler.Signup)
	router.POST("/login", userHandler.Login)

	// Events: reads are public, mutations are admin only
	router.GET("/events", eventHandler.GetAllEvents)
	router.GET("/events/:id", eventHandler.GetEvent)

	adminOnly := router.Group("/", middleware.Auth(tokens), middleware.RequireAdmin())
	{
		adminOnly.POST("/events", eventHandler.CreateEvent)
		adminOnly.PUT("/events/:id", eventHandler.UpdateEvent)
		adminOnly.DELETE("/events/:id", eventHandler.DeleteEvent)
	}

	// Booking and account routes require a verified identity
	authed := router.Group("/", middleware.Auth(tokens))
	{
		authed.GET("/me", userHandler.Me)
		authed.POST("/book", bookingHandler.Book)
		authed.GET("/my-bookings", bookingHandler.MyBookings)
		authed.GET("/userTickets/:userId/:eventId", bookingHandler.UserTickets)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Web interface
	router.Static("/static", "./web/static")
	router.LoadHTMLGlob("web/templates/*.html")

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})
	router.GET("/event/:id", func(c *gin.Context) {
		c.HTML(http.StatusOK, "event.html", gin.H{"eventID": c.Param("id")})
	})
	router.GET("/account", func(c *gin.Context) {
		c.HTML(http.StatusOK, "account.html", nil)
	})
	router.GET("/bookings", func(c *gin.Context) {
		c.HTML(http.StatusOK, "bookings.html", nil)
	})

	return router
}
