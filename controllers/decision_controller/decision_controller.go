package decision_controller

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petersfiske/booking/logger"
	"github.com/petersfiske/booking/models/booking_models"
	"github.com/petersfiske/booking/store"
	"github.com/petersfiske/booking/utils/token"
)

var pageTemplate *template.Template

// InitTemplates parses the confirmation-page template. Call once at startup.
func InitTemplates(fsys fs.FS) error {
	t, err := template.ParseFS(fsys, "templates/page/decision.html")
	if err != nil {
		return fmt.Errorf("failed to parse decision page template: %w", err)
	}
	pageTemplate = t
	return nil
}

// Mailer covers the decision-side notifications.
type Mailer interface {
	SendDecisionOutcome(b *booking_models.Booking) error
	SendOperatorDecisionNote(b *booking_models.Booking) error
}

// DecisionController applies the operator's accept/deny click from a signed
// email link and renders a human-readable confirmation page.
type DecisionController struct {
	Store  store.BookingStore
	Signer *token.Signer
	Mailer Mailer
}

func NewDecisionController(st store.BookingStore, signer *token.Signer, mailer Mailer) *DecisionController {
	return &DecisionController{
		Store:  st,
		Signer: signer,
		Mailer: mailer,
	}
}

type pageData struct {
	Title        string
	Heading      string
	Message      string
	Booking      *booking_models.Booking
	PackageLabel string
}

// ManageBooking handles GET ?action=accept|deny&id=...&token=... from the
// operator's email. The token is recomputed from the stored record's own
// createdAt; nothing client-supplied is trusted beyond the id lookup.
//
// The token binds id and createdAt only. The action arrives as a plain
// query parameter, so a holder of a valid link can switch accept to deny by
// editing the URL; both links go to the operator alone, who could do either
// anyway.
func (dc *DecisionController) ManageBooking(c *gin.Context) {
	action := strings.ToLower(c.Query("action"))
	id := c.Query("id")
	tok := c.Query("token")

	if id == "" || tok == "" || (action != "accept" && action != "deny") {
		dc.renderPage(c, http.StatusBadRequest, pageData{Title: "Ogiltig länk", Heading: "❌ Ogiltig länk"})
		return
	}

	ctx := c.Request.Context()
	rec, err := dc.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			dc.renderPage(c, http.StatusNotFound, pageData{Title: "Hittar inte", Heading: "❌ Bokning hittas inte"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to load booking %s: %v", id, err)
		dc.renderPage(c, http.StatusInternalServerError, pageData{Title: "Fel", Heading: "❌ Något gick fel"})
		return
	}

	if !dc.Signer.Verify(rec.ID, rec.CreatedAt, tok) {
		dc.renderPage(c, http.StatusForbidden, pageData{Title: "Fel token", Heading: "❌ Länken är inte giltig"})
		return
	}

	if rec.Status != booking_models.StatusPending {
		dc.renderAlreadyHandled(c, rec)
		return
	}

	newStatus := booking_models.StatusDenied
	if action == "accept" {
		newStatus = booking_models.StatusAccepted
	}
	decidedAt := time.Now().UTC().Format(time.RFC3339)

	updated, err := dc.Store.Decide(ctx, id, newStatus, decidedAt)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyDecided) && updated != nil {
			// Lost a race with another click on the same link; report the
			// decision that won.
			dc.renderAlreadyHandled(c, updated)
			return
		}
		logger.ErrorLogger.Errorf("Failed to apply decision on booking %s: %v", id, err)
		dc.renderPage(c, http.StatusInternalServerError, pageData{Title: "Fel", Heading: "❌ Något gick fel"})
		return
	}

	logger.InfoLogger.Infof("Booking %s marked %s", updated.ID, updated.Status)

	// The decision is already durable. A failed email is surfaced but not
	// compensated; the listing view still shows the truth.
	if err := dc.Mailer.SendDecisionOutcome(updated); err != nil {
		logger.ErrorLogger.Errorf("Booking %s decided but customer email failed: %v", updated.ID, err)
		dc.renderPage(c, http.StatusInternalServerError, pageData{Title: "Fel", Heading: "❌ Något gick fel", Message: err.Error()})
		return
	}
	if err := dc.Mailer.SendOperatorDecisionNote(updated); err != nil {
		logger.ErrorLogger.Errorf("Booking %s decided but operator email failed: %v", updated.ID, err)
		dc.renderPage(c, http.StatusInternalServerError, pageData{Title: "Fel", Heading: "❌ Något gick fel", Message: err.Error()})
		return
	}

	heading := "❌ Nekad"
	if updated.Status == booking_models.StatusAccepted {
		heading = "✅ Accepterad"
	}
	dc.renderPage(c, http.StatusOK, pageData{
		Title:        "Klart",
		Heading:      heading,
		Message:      "Kunden har fått ett automatiskt mail.",
		Booking:      updated,
		PackageLabel: booking_models.PackageLabel(updated.Package),
	})
}

func (dc *DecisionController) renderAlreadyHandled(c *gin.Context, rec *booking_models.Booking) {
	dc.renderPage(c, http.StatusOK, pageData{
		Title:   "Redan hanterad",
		Heading: "ℹ️ Redan hanterad",
		Message: fmt.Sprintf("Den här bokningen är redan markerad som %s.", rec.Status),
	})
}

func (dc *DecisionController) renderPage(c *gin.Context, code int, data pageData) {
	if pageTemplate == nil {
		c.String(http.StatusInternalServerError, "page template not initialized")
		return
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to render decision page: %v", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}
