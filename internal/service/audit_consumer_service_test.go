package service

import (
	"context"
	"testing"
	"time"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/event"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/internal/repository/testutil"
	"docgentor-be/internal/repository/unitofwork"
	"docgentor-be/pkg/entitlement"
	"docgentor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const auditTopic = "entitlement_audit"

func TestAuditConsumer_WritesDomainEvents(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()

	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewAuditConsumerService(bus, auditTopic, uowFactory, log)
	require.NoError(t, consumer.Consume(ctx))

	// A malformed payload is dropped and does not block the topic.
	require.NoError(t, bus.Publish(auditTopic, message.NewMessage(watermill.NewUUID(), []byte("{"))))

	publisher := event.NewDomainPublisher(nil, bus, auditTopic, log)
	publisher.PublishEntitlementChanged(ctx, user("u1"), entitlement.Zero(), entitlement.Record{
		Plan:   entitlement.PlanFreemium,
		Status: entitlement.StatusFreemium,
	}, ReasonFreemiumCode)
	publisher.PublishSettingsUpdated(ctx, "admin-1", &entity.AppSettings{
		Id:           entity.SettingsId,
		FreemiumCode: "999999",
		MonthlyPrice: 30,
		YearlyPrice:  200,
		Version:      2,
	})

	audit := uowFactory.NewUnitOfWork(ctx).EntitlementAuditRepository()
	require.Eventually(t, func() bool {
		logs, err := audit.FindAll(ctx)
		return err == nil && len(logs) == 2
	}, 2*time.Second, 10*time.Millisecond)

	changed, err := audit.FindAll(ctx, specification.ByEventType{EventType: events.EntitlementChanged})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "u1", changed[0].IdentityId)
	assert.Equal(t, "freemium", changed[0].Payload["to_status"])
	assert.Equal(t, ReasonFreemiumCode, changed[0].Payload["reason"])

	updated, err := audit.FindAll(ctx, specification.ByEventType{EventType: events.SettingsUpdated})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "admin-1", updated[0].IdentityId)
	assert.NotContains(t, updated[0].Payload, "freemium_code")
}
