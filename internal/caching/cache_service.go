package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Warehouse caching. Availability is never cached: remaining capacity is
	// always recomputed from active bookings at query time.
	GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.Warehouse, error)
	SetWarehouse(ctx context.Context, warehouse *models.Warehouse, ttl time.Duration) error
	DeleteWarehouse(ctx context.Context, warehouseID uuid.UUID) error

	// Session management (cookie-based auth variant)
	SetSession(ctx context.Context, sessionID string, userID uuid.UUID, role string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uuid.UUID, string, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Generic string operations for refresh token storage
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.Warehouse, error) {
	key := fmt.Sprintf("tradeyard:warehouse:%s", warehouseID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var warehouse models.Warehouse
	if err := json.Unmarshal(data, &warehouse); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *redisCacheService) SetWarehouse(ctx context.Context, warehouse *models.Warehouse, ttl time.Duration) error {
	key := fmt.Sprintf("tradeyard:warehouse:%s", warehouse.ID.String())
	data, err := json.Marshal(warehouse)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteWarehouse(ctx context.Context, warehouseID uuid.UUID) error {
	key := fmt.Sprintf("tradeyard:warehouse:%s", warehouseID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) SetSession(ctx context.Context, sessionID string, userID uuid.UUID, role string, ttl time.Duration) error {
	key := fmt.Sprintf("tradeyard:session:%s", sessionID)
	return r.client.Set(ctx, key, userID.String()+":"+role, ttl).Err()
}

func (r *redisCacheService) GetSession(ctx context.Context, sessionID string) (uuid.UUID, string, error) {
	key := fmt.Sprintf("tradeyard:session:%s", sessionID)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, "", nil // not found
		}
		return uuid.Nil, "", err
	}

	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return uuid.Nil, "", fmt.Errorf("malformed session entry")
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("malformed session user id")
	}
	return userID, parts[1], nil
}

func (r *redisCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf("tradeyard:session:%s", sessionID)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
