package memory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"docgentor-be/internal/repository/contract"
	"docgentor-be/pkg/entitlement"

	"github.com/redis/go-redis/v9"
)

const guestKeyPrefix = "guest_entitlement:"

// RedisGuestEntitlementRepository shares guest records across instances.
// Keys expire after ttl of inactivity, same as the in-process store.
type RedisGuestEntitlementRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuestEntitlementRepository(rdb *redis.Client, ttl time.Duration) contract.GuestEntitlementStore {
	return &RedisGuestEntitlementRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *RedisGuestEntitlementRepository) Get(ctx context.Context, sessionId string) (entitlement.Record, bool, error) {
	raw, err := r.rdb.GetEx(ctx, guestKeyPrefix+sessionId, r.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entitlement.Zero(), false, nil
		}
		return entitlement.Zero(), false, err
	}

	var rec entitlement.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return entitlement.Zero(), false, err
	}
	return rec, true, nil
}

func (r *RedisGuestEntitlementRepository) Save(ctx context.Context, sessionId string, rec entitlement.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, guestKeyPrefix+sessionId, raw, r.ttl).Err()
}

func (r *RedisGuestEntitlementRepository) Delete(ctx context.Context, sessionId string) error {
	return r.rdb.Del(ctx, guestKeyPrefix+sessionId).Err()
}
