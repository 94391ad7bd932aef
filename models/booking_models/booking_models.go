package booking_models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusAccepted BookingStatus = "accepted"
	StatusDenied   BookingStatus = "denied"
)

const (
	MinPassengers = 1
	MaxPassengers = 5
)

// Booking is the persisted record for one customer request. Timestamps are
// stored as RFC 3339 strings because CreatedAt is part of the signed token
// input and must round-trip byte for byte.
type Booking struct {
	ID         string        `json:"id"`
	CreatedAt  string        `json:"createdAt"`
	Status     BookingStatus `json:"status"`
	DecidedAt  string        `json:"decidedAt,omitempty"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Date       string        `json:"date"`
	Passengers int           `json:"passengers"`
	Package    string        `json:"package"`
	Experience string        `json:"experience"`
	Notes      string        `json:"notes,omitempty"`
}

// Submission is the intake payload from the public booking form.
type Submission struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Date       string         `json:"date"`
	Passengers PassengerCount `json:"passengers"`
	Package    string         `json:"package"`
	Experience string         `json:"experience"`
	Notes      string         `json:"notes"`
}

// PassengerCount accepts either a JSON number or a numeric string; the form
// posts whatever the browser serializes.
type PassengerCount struct {
	raw string
}

func (p *PassengerCount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "null" {
		s = ""
	}
	p.raw = strings.TrimSpace(s)
	return nil
}

func (p PassengerCount) MarshalJSON() ([]byte, error) {
	if p.raw == "" {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(p.raw)), nil
}

// IsZero reports whether no passenger count was submitted.
func (p PassengerCount) IsZero() bool {
	return p.raw == ""
}

// Value parses the submitted count. A non-integer or out-of-range value is
// an error; range is inclusive 1–5.
func (p PassengerCount) Value() (int, error) {
	n, err := strconv.Atoi(p.raw)
	if err != nil {
		return 0, err
	}
	if n < MinPassengers || n > MaxPassengers {
		return 0, ErrPassengersOutOfRange
	}
	return n, nil
}

// ErrPassengersOutOfRange is returned when the submitted count parses but
// falls outside the bookable range.
var ErrPassengersOutOfRange = errors.New("passengers out of range")

// MissingFields returns the names of required fields absent from the
// submission, in form order. Notes is optional.
func (s Submission) MissingFields() []string {
	var missing []string
	check := []struct {
		name  string
		empty bool
	}{
		{"name", strings.TrimSpace(s.Name) == ""},
		{"email", strings.TrimSpace(s.Email) == ""},
		{"phone", strings.TrimSpace(s.Phone) == ""},
		{"date", strings.TrimSpace(s.Date) == ""},
		{"passengers", s.Passengers.IsZero()},
		{"package", strings.TrimSpace(s.Package) == ""},
		{"experience", strings.TrimSpace(s.Experience) == ""},
	}
	for _, c := range check {
		if c.empty {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// NewBooking builds a pending record from a validated submission. Contact
// fields are trimmed; the id and creation time are assigned here and never
// change afterwards.
func NewBooking(s Submission, passengers int) *Booking {
	return &Booking{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Status:     StatusPending,
		Name:       strings.TrimSpace(s.Name),
		Email:      strings.TrimSpace(s.Email),
		Phone:      strings.TrimSpace(s.Phone),
		Date:       strings.TrimSpace(s.Date),
		Passengers: passengers,
		Package:    strings.TrimSpace(s.Package),
		Experience: strings.TrimSpace(s.Experience),
		Notes:      strings.TrimSpace(s.Notes),
	}
}

// packageLabels maps the fixed tour catalog to display labels.
var packageLabels = map[string]string{
	"prova":   "Prova-på (1 timme)",
	"halvdag": "Halvdagstur (3 timmar)",
	"heldag":  "Heldagsäventyr (6 timmar)",
}

// PackageLabel returns the display label for a package code. Unknown codes
// fall back to the raw code so old records still render.
func PackageLabel(code string) string {
	if label, ok := packageLabels[code]; ok {
		return label
	}
	if code == "" {
		return "—"
	}
	return code
}
