package store

import (
	"context"
	"errors"

	"github.com/petersfiske/booking/models/booking_models"
)

var (
	// ErrBookingNotFound is returned when no record exists under the id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrAlreadyDecided is returned by Decide when the record left the
	// pending state before the write; the current record accompanies it.
	ErrAlreadyDecided = errors.New("booking already decided")
)

// BookingStore is the durable key-value mapping from booking id to record.
type BookingStore interface {
	Save(ctx context.Context, b *booking_models.Booking) error
	Get(ctx context.Context, id string) (*booking_models.Booking, error)
	List(ctx context.Context) ([]booking_models.Booking, error)
	// Decide moves a pending record to the given terminal status, setting
	// decidedAt, as a conditional write: if the record is no longer pending
	// it returns the stored record together with ErrAlreadyDecided.
	Decide(ctx context.Context, id string, status booking_models.BookingStatus, decidedAt string) (*booking_models.Booking, error)
}
