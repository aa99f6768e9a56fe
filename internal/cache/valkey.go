package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"atelier/internal/models"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr       string
	Password   string
	BookingTTL time.Duration
	EventsTTL  time.Duration
}

type ValkeyClient struct {
	client     *redis.Client
	bookingTTL time.Duration
	eventsTTL  time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:     rdb,
		bookingTTL: cfg.BookingTTL,
		eventsTTL:  cfg.EventsTTL,
	}, nil
}

func bookingKey(code string) string {
	return "booking:code:" + code
}

func eventsKey(page, pageSize int) string {
	return fmt.Sprintf("events:list:%d:%d", page, pageSize)
}

// GetBookingByCode returns a cached booking for a normalized code.
// Only paid bookings are ever cached, so a hit never hides a recent
// pending-to-paid transition.
func (v *ValkeyClient) GetBookingByCode(ctx context.Context, code string) (*models.Booking, error) {
	data, err := v.client.Get(ctx, bookingKey(code)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var booking models.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, fmt.Errorf("invalid booking in cache: %w", err)
	}

	return &booking, nil
}

func (v *ValkeyClient) SetBookingByCode(ctx context.Context, booking *models.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	return v.client.Set(ctx, bookingKey(booking.Code), data, v.bookingTTL).Err()
}

// GetEventsListRaw returns the cached events list page as raw JSON to
// avoid an unmarshal/marshal round trip in the handler.
func (v *ValkeyClient) GetEventsListRaw(ctx context.Context, page, pageSize int) ([]byte, error) {
	data, err := v.client.Get(ctx, eventsKey(page, pageSize)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("events list not in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (v *ValkeyClient) SetEventsList(ctx context.Context, page, pageSize int, list models.ListEventsResponse) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal events list: %w", err)
	}

	return v.client.Set(ctx, eventsKey(page, pageSize), data, v.eventsTTL).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
