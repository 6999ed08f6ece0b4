package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/event"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/repository/memory"
	"docgentor-be/internal/repository/testutil"
	"docgentor-be/internal/repository/unitofwork"
	"docgentor-be/pkg/accesscode"
	"docgentor-be/pkg/environment"
	"docgentor-be/pkg/payment"

	"gorm.io/gorm"
)

const testKeySecret = "test_key_secret"

var t0 = time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeGateway struct {
	mu        sync.Mutex
	requests  []payment.OrderRequest
	orders    map[string]*payment.Order
	createErr error
	fetchErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: map[string]*payment.Order{}}
}

func (g *fakeGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.createErr != nil {
		return nil, g.createErr
	}
	order := &payment.Order{
		Id:       fmt.Sprintf("order_%d", len(g.requests)),
		Entity:   "order",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
		Notes:    req.Notes,
	}
	g.orders[order.Id] = order
	return order, nil
}

func (g *fakeGateway) FetchOrder(_ context.Context, orderId string) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	order, ok := g.orders[orderId]
	if !ok {
		return nil, payment.ErrOrderNotFound
	}
	return order, nil
}

func (g *fakeGateway) lastRequest() payment.OrderRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

// unavailableSettings fails every strict read, as if the store were down.
type unavailableSettings struct {
	ISettingsService
}

func (unavailableSettings) Lookup(context.Context) (*entity.AppSettings, error) {
	return nil, fmt.Errorf("%w: settings store", ErrServiceUnavailable)
}

type fixture struct {
	db           *gorm.DB
	clock        *fakeClock
	uowFactory   unitofwork.RepositoryFactory
	settings     ISettingsService
	payments     IPaymentService
	codes        IAccessCodeService
	entitlements *entitlementService
	gateway      *fakeGateway
	guests       *memory.GuestEntitlementRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	clock := &fakeClock{now: t0}
	log := logger.NewNopLogger()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	settings := NewSettingsService(uowFactory, event.NopPublisher{}, log, time.Second)
	settings.(*settingsService).now = clock.Now

	gateway := newFakeGateway()
	payments := NewPaymentService(settings, gateway, PaymentConfig{
		KeySecret: testKeySecret,
		Currency:  "INR",
		Timeout:   time.Second,
	}, log)

	codes := NewAccessCodeService(
		accesscode.NewAdminValidator("admin-secret", "", environment.Production, log),
		accesscode.NewDeveloperValidator("dev-secret", "", environment.Production, log),
	)

	guests := memory.NewGuestEntitlementRepository(time.Hour).(*memory.GuestEntitlementRepository)
	ents := NewEntitlementService(uowFactory, guests, settings, payments, codes, event.NopPublisher{}, log, time.Second).(*entitlementService)
	ents.now = clock.Now

	return &fixture{
		db:           db,
		clock:        clock,
		uowFactory:   uowFactory,
		settings:     settings,
		payments:     payments,
		codes:        codes,
		entitlements: ents,
		gateway:      gateway,
		guests:       guests,
	}
}

func user(id string) entity.Identity {
	return entity.Identity{Id: id, Kind: entity.IdentityUser, Email: id + "@example.com", Role: "user"}
}

func guest(session string) entity.Identity {
	return entity.Identity{Kind: entity.IdentityGuest, GuestSession: session}
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	_ = sqlDB.Close()
}
