package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/petersfiske/booking/logger"
	"github.com/petersfiske/booking/models/booking_models"
)

const bookingKeyPrefix = "booking:"

// decideMaxRetries bounds the optimistic-lock retry loop in Decide.
const decideMaxRetries = 3

// RedisBookingStore keeps one JSON-serialized record per booking under
// "booking:<id>".
type RedisBookingStore struct {
	client *redis.Client
}

func NewRedisBookingStore(client *redis.Client) *RedisBookingStore {
	return &RedisBookingStore{client: client}
}

func bookingKey(id string) string {
	return bookingKeyPrefix + id
}

func (s *RedisBookingStore) Save(ctx context.Context, b *booking_models.Booking) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to serialize booking %s: %w", b.ID, err)
	}
	if err := s.client.Set(ctx, bookingKey(b.ID), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store booking %s: %w", b.ID, err)
	}
	return nil
}

func (s *RedisBookingStore) Get(ctx context.Context, id string) (*booking_models.Booking, error) {
	data, err := s.client.Get(ctx, bookingKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to read booking %s: %w", id, err)
	}
	var b booking_models.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", id, err)
	}
	return &b, nil
}

func (s *RedisBookingStore) List(ctx context.Context) ([]booking_models.Booking, error) {
	var bookings []booking_models.Booking

	iter := s.client.Scan(ctx, 0, bookingKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to read booking %s: %w", iter.Val(), err)
		}
		var b booking_models.Booking
		if err := json.Unmarshal(data, &b); err != nil {
			logger.ErrorLogger.Errorf("Skipping undecodable booking record %s: %v", iter.Val(), err)
			continue
		}
		bookings = append(bookings, b)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan bookings: %w", err)
	}
	return bookings, nil
}

// Decide applies pending -> status with an optimistic WATCH so two
// near-simultaneous decision clicks cannot both win. The loser sees the
// record the winner wrote, wrapped in ErrAlreadyDecided.
func (s *RedisBookingStore) Decide(ctx context.Context, id string, status booking_models.BookingStatus, decidedAt string) (*booking_models.Booking, error) {
	key := bookingKey(id)
	var decided *booking_models.Booking

	apply := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return ErrBookingNotFound
			}
			return err
		}
		var b booking_models.Booking
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("failed to decode booking %s: %w", id, err)
		}

		if b.Status != booking_models.StatusPending {
			decided = &b
			return ErrAlreadyDecided
		}

		b.Status = status
		b.DecidedAt = decidedAt
		payload, err := json.Marshal(&b)
		if err != nil {
			return fmt.Errorf("failed to serialize booking %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}
		decided = &b
		return nil
	}

	for i := 0; i < decideMaxRetries; i++ {
		err := s.client.Watch(ctx, apply, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return decided, err
		}
		return decided, nil
	}
	return nil, fmt.Errorf("failed to decide booking %s: too many concurrent updates", id)
}

var _ BookingStore = (*RedisBookingStore)(nil)
