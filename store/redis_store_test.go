package store

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petersfiske/booking/models/booking_models"
)

func newTestStore(t *testing.T) (*RedisBookingStore, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBookingStore(client), client
}

func pendingBooking(id string) *booking_models.Booking {
	return &booking_models.Booking{
		ID:         id,
		CreatedAt:  "2024-05-01T10:00:00Z",
		Status:     booking_models.StatusPending,
		Name:       "Anna Andersson",
		Email:      "anna@example.com",
		Phone:      "0701234567",
		Date:       "2024-06-01",
		Passengers: 2,
		Package:    "halvdag",
		Experience: "nybörjare",
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	b := pendingBooking("b-1")
	require.NoError(t, s.Save(ctx, b))

	got, err := s.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestGetMissingBooking(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Get(context.Background(), "nope")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListReturnsOnlyBookingKeys(t *testing.T) {
	s, client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, pendingBooking("b-1")))
	require.NoError(t, s.Save(ctx, pendingBooking("b-2")))
	require.NoError(t, client.Set(ctx, "rate_limiter:submit-booking:1.2.3.4", "3", 0).Err())

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	ids := []string{all[0].ID, all[1].ID}
	assert.ElementsMatch(t, []string{"b-1", "b-2"}, ids)
}

func TestDecidePendingBooking(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, pendingBooking("b-1")))
	decidedAt := time.Now().UTC().Format(time.RFC3339)

	updated, err := s.Decide(ctx, "b-1", booking_models.StatusAccepted, decidedAt)
	require.NoError(t, err)
	assert.Equal(t, booking_models.StatusAccepted, updated.Status)
	assert.Equal(t, decidedAt, updated.DecidedAt)

	// The write must be durable, not just reflected in the return value.
	stored, err := s.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, booking_models.StatusAccepted, stored.Status)
	assert.Equal(t, decidedAt, stored.DecidedAt)
}

func TestDecideAlreadyDecidedBooking(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, pendingBooking("b-1")))
	first, err := s.Decide(ctx, "b-1", booking_models.StatusDenied, "2024-05-02T09:00:00Z")
	require.NoError(t, err)

	second, err := s.Decide(ctx, "b-1", booking_models.StatusAccepted, "2024-05-02T09:00:05Z")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	require.NotNil(t, second)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.DecidedAt, second.DecidedAt)

	// The losing decision must not overwrite the winner.
	stored, err := s.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, booking_models.StatusDenied, stored.Status)
}

func TestDecideMissingBooking(t *testing.T) {
	s, _ := newTestStore(t)

	updated, err := s.Decide(context.Background(), "nope", booking_models.StatusAccepted, "2024-05-02T09:00:00Z")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
