package booking_controller

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petersfiske/booking/logger"
	"github.com/petersfiske/booking/models/booking_models"
	"github.com/petersfiske/booking/store"
	"github.com/petersfiske/booking/utils/token"
)

// managePath is the decision endpoint the emailed accept/deny links target.
const managePath = "/bookings/manage"

// Mailer covers the intake-side notifications.
type Mailer interface {
	SendRequestReceived(b *booking_models.Booking) error
	SendDecisionRequest(b *booking_models.Booking, acceptURL, denyURL string) error
}

// BookingController handles intake of new booking requests and the admin
// listing view.
type BookingController struct {
	Store  store.BookingStore
	Signer *token.Signer
	Mailer Mailer
}

func NewBookingController(st store.BookingStore, signer *token.Signer, mailer Mailer) *BookingController {
	return &BookingController{
		Store:  st,
		Signer: signer,
		Mailer: mailer,
	}
}

// CreateBooking validates a submission, persists the pending record, then
// emails the customer a receipt and the operator the signed decision links.
// The store write always happens before any email so a failed persist never
// produces a notification for a record that does not exist.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var sub booking_models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if missing := sub.MissingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"details": strings.Join(missing, ", "),
		})
		return
	}

	passengers, err := sub.Passengers.Value()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid passengers",
			"details": fmt.Sprintf("passengers must be %d–%d", booking_models.MinPassengers, booking_models.MaxPassengers),
		})
		return
	}

	b := booking_models.NewBooking(sub, passengers)

	ctx := c.Request.Context()
	if err := bc.Store.Save(ctx, b); err != nil {
		logger.ErrorLogger.Errorf("Failed to persist booking %s: %v", b.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking", "details": err.Error()})
		return
	}

	tok := bc.Signer.Sign(b.ID, b.CreatedAt)
	baseURL := requestBaseURL(c)
	acceptURL := decisionURL(baseURL, "accept", b.ID, tok)
	denyURL := decisionURL(baseURL, "deny", b.ID, tok)

	// The record is already durable; a failed email leaves it pending and
	// visible in the listing view, so it is reported but not rolled back.
	if err := bc.Mailer.SendRequestReceived(b); err != nil {
		logger.ErrorLogger.Errorf("Booking %s saved but customer email failed: %v", b.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking", "details": err.Error()})
		return
	}
	if err := bc.Mailer.SendDecisionRequest(b, acceptURL, denyURL); err != nil {
		logger.ErrorLogger.Errorf("Booking %s saved but operator email failed: %v", b.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking", "details": err.Error()})
		return
	}

	logger.InfoLogger.Infof("Booking %s created for %s on %s", b.ID, b.Email, b.Date)
	c.JSON(http.StatusOK, gin.H{"message": "Booking saved", "id": b.ID})
}

// ListBookings returns all records, optionally filtered by status, sorted by
// trip date then creation time.
func (bc *BookingController) ListBookings(c *gin.Context) {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	all, err := bc.Store.List(c.Request.Context())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed", "details": err.Error()})
		return
	}

	bookings := make([]booking_models.Booking, 0, len(all))
	for _, b := range all {
		if status != "" && strings.ToLower(string(b.Status)) != status {
			continue
		}
		bookings = append(bookings, b)
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].CreatedAt < bookings[j].CreatedAt
	})

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// requestBaseURL reconstructs the absolute origin the client reached us on,
// preferring the proxy headers set by the hosting frontend.
func requestBaseURL(c *gin.Context) string {
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	if host == "" {
		return ""
	}
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		proto = "https"
	}
	return proto + "://" + host
}

func decisionURL(baseURL, action, id, tok string) string {
	return fmt.Sprintf("%s%s?action=%s&id=%s&token=%s",
		baseURL, managePath, action, url.QueryEscape(id), url.QueryEscape(tok))
}
