package memory

import (
	"context"
	"time"

	"docgentor-be/internal/repository/contract"
	"docgentor-be/pkg/entitlement"

	"github.com/patrickmn/go-cache"
)

// GuestEntitlementRepository keeps guest records in process memory. A
// session that stays idle longer than ttl loses its record.
type GuestEntitlementRepository struct {
	cache *cache.Cache
}

func NewGuestEntitlementRepository(ttl time.Duration) contract.GuestEntitlementStore {
	c := cache.New(ttl, 10*time.Minute)
	return &GuestEntitlementRepository{
		cache: c,
	}
}

func (r *GuestEntitlementRepository) Get(_ context.Context, sessionId string) (entitlement.Record, bool, error) {
	if x, found := r.cache.Get(sessionId); found {
		rec := x.(entitlement.Record)
		// touch so the ttl slides with activity
		r.cache.Set(sessionId, rec, cache.DefaultExpiration)
		return rec, true, nil
	}
	return entitlement.Zero(), false, nil
}

func (r *GuestEntitlementRepository) Save(_ context.Context, sessionId string, rec entitlement.Record) error {
	r.cache.Set(sessionId, rec, cache.DefaultExpiration)
	return nil
}

func (r *GuestEntitlementRepository) Delete(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
