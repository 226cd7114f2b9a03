package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/models"
)

// RegisterRoutes wires up all endpoints for the booking engine.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Actor-Role"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterBookingRoutes(r, bh)
}

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/booking")
	{
		api.GET("/slots", bh.ListSlots)

		// Actions performed by an identified actor.
		acting := api.Group("")
		acting.Use(middleware.ActorRoleMiddleware())
		acting.POST("", bh.CreateBooking)
		acting.GET("/appointments/:id", bh.GetAppointment)
		acting.GET("/customers/:id/appointments", bh.ListCustomerAppointments)
		acting.GET("/staff/:id/appointments", bh.ListStaffDay)
		acting.POST("/appointments/:id/confirm", bh.TransitionAppointment(models.StatusConfirmed))
		acting.POST("/appointments/:id/start", bh.TransitionAppointment(models.StatusInProgress))
		acting.POST("/appointments/:id/complete", bh.TransitionAppointment(models.StatusCompleted))
		acting.POST("/appointments/:id/cancel", bh.TransitionAppointment(models.StatusCancelled))
		acting.POST("/appointments/:id/no-show", bh.TransitionAppointment(models.StatusNoShow))
	}

	// Gateway-facing webhook; authenticated upstream, no actor role.
	r.POST("/api/payments/callback", bh.PaymentCallback)
}
