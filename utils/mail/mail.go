package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/petersfiske/booking/config"
	"github.com/petersfiske/booking/logger"
	"github.com/petersfiske/booking/models/booking_models"
)

// Email template names inside the embedded FS.
const (
	requestReceivedTemplate  = "request_received.html"
	decisionRequestTemplate  = "decision_request.html"
	decisionAcceptedTemplate = "decision_accepted.html"
	decisionDeniedTemplate   = "decision_denied.html"
	operatorDecisionTemplate = "operator_decision.html"
)

var templates *template.Template

// InitTemplates parses the embedded email templates. Call once at startup.
func InitTemplates(fsys fs.FS) error {
	t, err := template.ParseFS(fsys, "templates/email/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}
	templates = t
	return nil
}

// Mailer sends the transactional booking emails over SMTP.
type Mailer struct {
	dialer        *gomail.Dialer
	sender        string
	operatorEmail string
}

func NewMailer(cfg *config.Config) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	dialer.TLSConfig = &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         cfg.SMTPHost,
	}
	return &Mailer{
		dialer:        dialer,
		sender:        cfg.SenderEmail,
		operatorEmail: cfg.OperatorEmail,
	}
}

type templateData struct {
	Name         string
	Email        string
	Phone        string
	Date         string
	Passengers   int
	PackageLabel string
	Experience   string
	Notes        string
	ID           string
	CreatedAt    string
	Status       string
	AcceptURL    string
	DenyURL      string
}

func newTemplateData(b *booking_models.Booking) templateData {
	notes := b.Notes
	if notes == "" {
		notes = "-"
	}
	return templateData{
		Name:         b.Name,
		Email:        b.Email,
		Phone:        b.Phone,
		Date:         b.Date,
		Passengers:   b.Passengers,
		PackageLabel: booking_models.PackageLabel(b.Package),
		Experience:   b.Experience,
		Notes:        notes,
		ID:           b.ID,
		CreatedAt:    b.CreatedAt,
		Status:       string(b.Status),
	}
}

func (m *Mailer) send(to, subject, textBody, templateName string, data templateData) error {
	if templates == nil {
		return fmt.Errorf("email templates not initialized")
	}

	var htmlBody bytes.Buffer
	if err := templates.ExecuteTemplate(&htmlBody, templateName, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templateName, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Infof("Sent email %q to %s", subject, to)
	return nil
}

// SendRequestReceived tells the customer their request arrived. No decision
// links here; those go to the operator only.
func (m *Mailer) SendRequestReceived(b *booking_models.Booking) error {
	data := newTemplateData(b)
	text := fmt.Sprintf(`Hej %s!

Vi har tagit emot din bokningsförfrågan.

Detaljer:
- Paket: %s
- Datum: %s
- Antal personer: %d
- Telefon: %s

Peter återkommer så snart han har kollat läget.

Tight lines!
/ Petersfiske`, b.Name, data.PackageLabel, b.Date, b.Passengers, b.Phone)

	return m.send(b.Email, "Bokningsförfrågan mottagen – Petersfiske", text, requestReceivedTemplate, data)
}

// SendDecisionRequest asks the operator to accept or deny, with both signed
// links embedded.
func (m *Mailer) SendDecisionRequest(b *booking_models.Booking, acceptURL, denyURL string) error {
	data := newTemplateData(b)
	data.AcceptURL = acceptURL
	data.DenyURL = denyURL
	text := fmt.Sprintf(`Ny bokningsförfrågan:

Namn: %s
Email: %s
Telefon: %s
Datum: %s
Paket: %s
Personer: %d
Nivå: %s
Anteckningar: %s

Acceptera: %s
Neka: %s

ID: %s
Skapad: %s`, b.Name, b.Email, b.Phone, b.Date, data.PackageLabel, b.Passengers, b.Experience, data.Notes, acceptURL, denyURL, b.ID, b.CreatedAt)

	return m.send(m.operatorEmail, fmt.Sprintf("Ny bokningsförfrågan – %s", b.Date), text, decisionRequestTemplate, data)
}

// SendDecisionOutcome tells the customer whether the tour was accepted.
func (m *Mailer) SendDecisionOutcome(b *booking_models.Booking) error {
	data := newTemplateData(b)

	if b.Status == booking_models.StatusAccepted {
		text := fmt.Sprintf(`Hej %s!

Din tur är bekräftad 🎣

Detaljer:
- Paket: %s
- Datum: %s
- Antal: %d

Peter hör av sig med plats/tid och sista detaljerna.

Tight lines!
/ Petersfiske`, b.Name, data.PackageLabel, b.Date, b.Passengers)
		return m.send(b.Email, "✅ Din fisketur är bekräftad – Petersfiske", text, decisionAcceptedTemplate, data)
	}

	text := fmt.Sprintf(`Hej %s!

Tyvärr kan Peter inte ta den här förfrågan just nu.

Om du vill: skicka ett nytt datum så löser vi det.

/ Petersfiske`, b.Name)
	return m.send(b.Email, "❌ Bokningsförfrågan – Petersfiske", text, decisionDeniedTemplate, data)
}

// SendOperatorDecisionNote confirms the applied decision back to the
// operator.
func (m *Mailer) SendOperatorDecisionNote(b *booking_models.Booking) error {
	data := newTemplateData(b)
	text := fmt.Sprintf("Bokningen %s är nu %s.", b.ID, b.Status)
	subject := fmt.Sprintf("Bokning %s – %s", strings.ToUpper(string(b.Status)), b.Date)
	return m.send(m.operatorEmail, subject, text, operatorDecisionTemplate, data)
}
