package routes

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/petersfiske/booking/config"
	"github.com/petersfiske/booking/controllers/booking_controller"
	"github.com/petersfiske/booking/controllers/decision_controller"
	"github.com/petersfiske/booking/logger"
	middleware "github.com/petersfiske/booking/middlewares"
	"github.com/petersfiske/booking/store"
	"github.com/petersfiske/booking/utils/mail"
	"github.com/petersfiske/booking/utils/token"
)

// RegisterBookingRoutes wires the booking endpoints: public intake, the
// operator's signed decision link, and the admin listing.
func RegisterBookingRoutes(r *gin.Engine, cfg *config.Config, client *goredis.Client) {
	signer, err := token.NewSigner(cfg.TokenSecret)
	if err != nil {
		logger.ErrorLogger.Fatalf("failed to initialize token signer: %v", err)
	}

	bookingStore := store.NewRedisBookingStore(client)
	mailer := mail.NewMailer(cfg)

	bookingController := booking_controller.NewBookingController(bookingStore, signer, mailer)
	decisionController := decision_controller.NewDecisionController(bookingStore, signer, mailer)

	api := r.Group("/bookings")
	{
		api.POST("",
			middleware.NewRateLimiter(client, "5-1m", "submit-booking"),
			bookingController.CreateBooking)
		api.GET("", bookingController.ListBookings)
		api.GET("/manage", decisionController.ManageBooking)
	}
}
