// Package event emits entitlement and settings events to the outbound
// NATS stream and to the in-process bus that feeds the audit log.
package event

import (
	"context"
	"time"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/pkg/entitlement"
	pkgEvents "docgentor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type Publisher interface {
	PublishEntitlementChanged(ctx context.Context, identity entity.Identity, before, after entitlement.Record, reason string)
	PublishPaymentConfirmed(ctx context.Context, identity entity.Identity, orderId, paymentId string, plan entitlement.Plan)
	PublishSettingsUpdated(ctx context.Context, actorId string, settings *entity.AppSettings)
}

// Outbound is satisfied by *nats.Publisher.
type Outbound interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

type DomainPublisher struct {
	outbound   Outbound          // nil when NATS is unavailable
	bus        message.Publisher // in-process audit bus, may be nil
	auditTopic string
	logger     logger.ILogger
}

func NewDomainPublisher(outbound Outbound, bus message.Publisher, auditTopic string, logger logger.ILogger) *DomainPublisher {
	return &DomainPublisher{
		outbound:   outbound,
		bus:        bus,
		auditTopic: auditTopic,
		logger:     logger,
	}
}

func (p *DomainPublisher) PublishEntitlementChanged(ctx context.Context, identity entity.Identity, before, after entitlement.Record, reason string) {
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: pkgEvents.EntitlementChanged,
		Data: map[string]interface{}{
			"identity_id":   identity.Id,
			"identity_kind": string(identity.Kind),
			"reason":        reason,
			"from_plan":     string(before.Plan),
			"from_status":   string(before.Status),
			"to_plan":       string(after.Plan),
			"to_status":     string(after.Status),
			"is_trial":      after.IsTrial,
			"expiry_date":   formatTime(after.ExpiryDate),
		},
		OccurredAt: time.Now(),
	})
}

func (p *DomainPublisher) PublishPaymentConfirmed(ctx context.Context, identity entity.Identity, orderId, paymentId string, plan entitlement.Plan) {
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: pkgEvents.PaymentConfirmed,
		Data: map[string]interface{}{
			"identity_id": identity.Id,
			"email":       identity.Email,
			"order_id":    orderId,
			"payment_id":  paymentId,
			"plan":        string(plan),
		},
		OccurredAt: time.Now(),
	})
}

// PublishSettingsUpdated never carries the freemium code itself.
func (p *DomainPublisher) PublishSettingsUpdated(ctx context.Context, actorId string, settings *entity.AppSettings) {
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: pkgEvents.SettingsUpdated,
		Data: map[string]interface{}{
			"identity_id":          actorId,
			"monthly_price":        settings.MonthlyPrice,
			"yearly_price":         settings.YearlyPrice,
			"freemium_code_expiry": formatTime(settings.FreemiumCodeExpiry),
			"version":              settings.Version,
		},
		OccurredAt: time.Now(),
	})
}

func (p *DomainPublisher) publish(ctx context.Context, evt pkgEvents.BaseEvent) {
	if p.outbound != nil {
		if err := p.outbound.Publish(ctx, evt); err != nil {
			p.logger.Error("EVENT", "Failed to publish "+evt.Type+" event", map[string]interface{}{"error": err.Error()})
		}
	}

	if p.bus == nil {
		return
	}
	payload, err := pkgEvents.Marshal(evt)
	if err != nil {
		p.logger.Error("EVENT", "Failed to marshal "+evt.Type+" event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := p.bus.Publish(p.auditTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		p.logger.Error("EVENT", "Failed to enqueue "+evt.Type+" for audit", map[string]interface{}{"error": err.Error()})
	}
}

func formatTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishEntitlementChanged(context.Context, entity.Identity, entitlement.Record, entitlement.Record, string) {
}

func (NopPublisher) PublishPaymentConfirmed(context.Context, entity.Identity, string, string, entitlement.Plan) {
}

func (NopPublisher) PublishSettingsUpdated(context.Context, string, *entity.AppSettings) {}
