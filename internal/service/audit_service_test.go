package service

import (
	"context"
	"testing"
	"time"

	"docgentor-be/internal/dto"
	"docgentor-be/internal/entity"
	"docgentor-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAuditLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := f.uowFactory.NewUnitOfWork(ctx).EntitlementAuditRepository()

	for i, entry := range []struct {
		eventType  string
		identityId string
	}{
		{events.EntitlementChanged, "u1"},
		{events.PaymentConfirmed, "u1"},
		{events.EntitlementChanged, "u2"},
		{events.SettingsUpdated, "admin"},
	} {
		require.NoError(t, repo.Create(ctx, &entity.EntitlementAuditLog{
			Id:         uuid.New(),
			EventType:  entry.eventType,
			IdentityId: entry.identityId,
			Payload:    map[string]interface{}{"n": i},
			OccurredAt: t0.Add(time.Duration(i) * time.Minute),
		}))
	}

	svc := NewAuditService(f.uowFactory, time.Second)

	all, err := svc.ListAuditLogs(ctx, &dto.AuditLogQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, events.SettingsUpdated, all[0].EventType, "newest first")

	mine, err := svc.ListAuditLogs(ctx, &dto.AuditLogQuery{IdentityId: "u1", EventType: events.EntitlementChanged})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u1", mine[0].IdentityId)

	page, err := svc.ListAuditLogs(ctx, &dto.AuditLogQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "u1", page[1].IdentityId)
}
