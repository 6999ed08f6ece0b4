package service

import (
	"context"
	"time"

	"docgentor-be/internal/entity"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/repository/unitofwork"
	"docgentor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService appends every domain event from the in-process bus
// to the entitlement audit log.
type auditConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &auditConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	evt, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("AUDIT", "Failed to unmarshal audit message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // redelivery cannot fix a malformed payload
		return
	}

	identityId, _ := evt.Data["identity_id"].(string)
	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	err = cs.uowFactory.NewUnitOfWork(ctx).EntitlementAuditRepository().Create(ctx, &entity.EntitlementAuditLog{
		Id:         uuid.New(),
		EventType:  evt.Type,
		IdentityId: identityId,
		Payload:    evt.Data,
		OccurredAt: occurredAt,
	})
	if err != nil {
		cs.logger.Error("AUDIT", "Failed to write audit log", map[string]interface{}{
			"event_type": evt.Type,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
