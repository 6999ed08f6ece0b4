package service

import (
	"context"
	"time"

	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/pkg/mailer"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/internal/repository/unitofwork"
	"docgentor-be/pkg/events"
	pktNats "docgentor-be/pkg/nats"
)

const activationMailDurable = "activation-mailer"

type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

type IActivationMailService interface {
	Start(ctx context.Context) error
	HandlePaymentConfirmed(ctx context.Context, evt events.Event) error
}

// activationMailService emails the buyer once a payment has been confirmed.
// It listens on NATS so that only one instance sends each mail.
type activationMailService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewActivationMailService(
	subscriber EventSubscriber,
	mailer mailer.IEmailService,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IActivationMailService {
	return &activationMailService{
		subscriber: subscriber,
		mailer:     mailer,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *activationMailService) Start(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, events.PaymentConfirmed, activationMailDurable, s.HandlePaymentConfirmed)
}

func (s *activationMailService) HandlePaymentConfirmed(ctx context.Context, evt events.Event) error {
	data := evt.Payload()
	email, _ := data["email"].(string)
	identityId, _ := data["identity_id"].(string)
	plan, _ := data["plan"].(string)
	if email == "" {
		return nil
	}

	var expiry *time.Time
	ent, err := s.uowFactory.NewUnitOfWork(ctx).EntitlementRepository().
		FindOne(ctx, specification.ByIdentityId{IdentityId: identityId})
	if err != nil {
		return err
	}
	if ent != nil {
		expiry = ent.Record.ExpiryDate
	}

	if err := s.mailer.SendPremiumActivated(email, plan, expiry); err != nil {
		s.logger.Error("MAILER", "Failed to send activation email", map[string]interface{}{
			"identity_id": identityId,
			"error":       err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Activation email sent", map[string]interface{}{
		"identity_id": identityId,
		"plan":        plan,
	})
	return nil
}
