package implementation

import (
	"context"
	"sync"
	"testing"
	"time"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/repository/contract"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/internal/repository/testutil"
	"docgentor-be/pkg/entitlement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(testutil.NewSQLiteDB(t))

	got, err := repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
	require.NoError(t, err)
	assert.Nil(t, got)

	created, err := repo.CreateIfAbsent(ctx, entity.DefaultSettings())
	require.NoError(t, err)
	assert.True(t, created)

	// Second creator loses and must not overwrite.
	other := entity.DefaultSettings()
	other.FreemiumCode = "111111"
	created, err = repo.CreateIfAbsent(ctx, other)
	require.NoError(t, err)
	assert.False(t, created)

	got, err = repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "239028", got.FreemiumCode)
	assert.Equal(t, 1, got.Version)
	assert.Nil(t, got.FreemiumCodeExpiry)
}

func TestSettingsRepository_SaveBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(testutil.NewSQLiteDB(t))

	_, err := repo.CreateIfAbsent(ctx, entity.DefaultSettings())
	require.NoError(t, err)

	expiry := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	update := &entity.AppSettings{
		Id:                 entity.SettingsId,
		FreemiumCode:       "654321",
		FreemiumCodeExpiry: &expiry,
		MonthlyPrice:       50,
		YearlyPrice:        300,
		UpdatedBy:          "admin-1",
	}
	require.NoError(t, repo.Save(ctx, update))
	assert.Equal(t, 2, update.Version)

	got, err := repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
	require.NoError(t, err)
	assert.Equal(t, "654321", got.FreemiumCode)
	assert.Equal(t, 50, got.MonthlyPrice)
	assert.Equal(t, 300, got.YearlyPrice)
	assert.Equal(t, "admin-1", got.UpdatedBy)
	require.NotNil(t, got.FreemiumCodeExpiry)
	assert.True(t, expiry.Equal(*got.FreemiumCodeExpiry))
}

func TestSettingsRepository_SaveCreatesMissingRow(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(testutil.NewSQLiteDB(t))

	s := entity.DefaultSettings()
	s.MonthlyPrice = 40
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 40, got.MonthlyPrice)
	assert.Equal(t, 1, got.Version)
}

func TestSettingsRepository_SaveRacingFirstRead(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(testutil.NewSQLiteDB(t))

	const rounds = 20
	var wg sync.WaitGroup
	errs := make(chan error, rounds*2)
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := repo.CreateIfAbsent(ctx, entity.DefaultSettings())
			errs <- err
		}()
		go func() {
			defer wg.Done()
			s := entity.DefaultSettings()
			s.MonthlyPrice = 45
			s.UpdatedBy = "admin-1"
			errs <- repo.Save(ctx, s)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.FindOne(ctx, specification.BySettingsId{Id: entity.SettingsId})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 45, got.MonthlyPrice)
	assert.Equal(t, "admin-1", got.UpdatedBy)
	assert.GreaterOrEqual(t, got.Version, rounds)
}

func TestEntitlementRepository_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewEntitlementRepository(testutil.NewSQLiteDB(t))

	got, err := repo.FindOne(ctx, specification.ByIdentityId{IdentityId: "user-1"})
	require.NoError(t, err)
	assert.Nil(t, got)

	exp := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	ent := &entity.Entitlement{
		IdentityId: "user-1",
		Record: entitlement.Record{
			Plan:       entitlement.PlanMonthly,
			Status:     entitlement.StatusActive,
			ExpiryDate: &exp,
		},
	}
	require.NoError(t, repo.Upsert(ctx, ent))

	ent.Record.Status = entitlement.StatusCancelled
	require.NoError(t, repo.Upsert(ctx, ent))

	got, err = repo.FindOne(ctx, specification.ByIdentityId{IdentityId: "user-1"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entitlement.PlanMonthly, got.Record.Plan)
	assert.Equal(t, entitlement.StatusCancelled, got.Record.Status)
	require.NotNil(t, got.Record.ExpiryDate)
	assert.True(t, exp.Equal(*got.Record.ExpiryDate))

	require.NoError(t, repo.Delete(ctx, "user-1"))
	got, err = repo.FindOne(ctx, specification.ByIdentityId{IdentityId: "user-1"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaymentRedemptionRepository_RejectsDuplicateOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRedemptionRepository(testutil.NewSQLiteDB(t))

	first := &entity.PaymentRedemption{
		Id:         uuid.New(),
		OrderId:    "order_1",
		PaymentId:  "pay_1",
		IdentityId: "user-1",
		Plan:       "monthly",
		RedeemedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, first))

	replay := *first
	replay.Id = uuid.New()
	replay.PaymentId = "pay_2"
	err := repo.Create(ctx, &replay)
	assert.ErrorIs(t, err, contract.ErrDuplicateRedemption)

	got, err := repo.FindOne(ctx, specification.ByOrderId{OrderId: "order_1"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pay_1", got.PaymentId)
}

func TestEntitlementAuditRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEntitlementAuditRepository(testutil.NewSQLiteDB(t))

	for _, evt := range []string{"ENTITLEMENT_CHANGED", "SETTINGS_UPDATED", "ENTITLEMENT_CHANGED"} {
		require.NoError(t, repo.Create(ctx, &entity.EntitlementAuditLog{
			Id:         uuid.New(),
			EventType:  evt,
			IdentityId: "user-1",
			Payload:    map[string]interface{}{"status": "active"},
			OccurredAt: time.Now(),
		}))
	}

	logs, err := repo.FindAll(ctx, specification.ByEventType{EventType: "ENTITLEMENT_CHANGED"})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "active", logs[0].Payload["status"])
}
