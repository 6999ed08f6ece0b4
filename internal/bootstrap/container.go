package bootstrap

import (
	"context"
	"errors"
	"log"

	"docgentor-be/internal/config"
	"docgentor-be/internal/controller"
	"docgentor-be/internal/event"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/pkg/mailer"
	"docgentor-be/internal/pkg/serverutils"
	"docgentor-be/internal/repository/contract"
	"docgentor-be/internal/repository/memory"
	"docgentor-be/internal/repository/unitofwork"
	"docgentor-be/internal/service"
	"docgentor-be/pkg/accesscode"
	"docgentor-be/pkg/environment"
	"docgentor-be/pkg/payment"

	pktNats "docgentor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	PaymentController     controller.IPaymentController
	SettingsController    controller.ISettingsController
	AccessCodeController  controller.IAccessCodeController
	EntitlementController controller.IEntitlementController
	AuditController       controller.IAuditController

	IdentityMiddleware fiber.Handler
	Logger             logger.ILogger

	AuditConsumer  service.IConsumerService
	ActivationMail service.IActivationMailService // nil without NATS

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	env := environment.Parse(cfg.App.Environment)

	c := &Container{Logger: sysLogger}

	// In-process bus feeding the audit log.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var outbound event.Outbound
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] NATS publisher: %v", err)
	}
	if natsPub != nil {
		outbound = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	publisher := event.NewDomainPublisher(outbound, pubSub, cfg.App.EventTopic, sysLogger)

	settingsService := service.NewSettingsService(uowFactory, publisher, sysLogger, cfg.Database.Timeout)

	var gateway payment.Gateway
	razorpayGateway, err := payment.NewRazorpayGateway(cfg.Payment.KeyId, cfg.Payment.KeySecret)
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		log.Printf("[WARN] Razorpay credentials missing; order creation will fail until configured")
	case err != nil:
		log.Printf("[WARN] Razorpay client: %v", err)
	default:
		gateway = razorpayGateway
	}
	paymentService := service.NewPaymentService(settingsService, gateway, service.PaymentConfig{
		KeySecret: cfg.Payment.KeySecret,
		Currency:  cfg.Payment.Currency,
		Timeout:   cfg.Payment.Timeout,
	}, sysLogger)

	codeService := service.NewAccessCodeService(
		accesscode.NewAdminValidator(cfg.Codes.AdminSecret, cfg.Codes.AdminHash, env, sysLogger),
		accesscode.NewDeveloperValidator(cfg.Codes.DeveloperSecret, cfg.Codes.DeveloperHash, env, sysLogger),
	)

	entitlementService := service.NewEntitlementService(
		uowFactory,
		newGuestStore(cfg),
		settingsService,
		paymentService,
		codeService,
		publisher,
		sysLogger,
		cfg.Database.Timeout,
	)

	c.AuditConsumer = service.NewAuditConsumerService(pubSub, cfg.App.EventTopic, uowFactory, sysLogger)

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, func(subject string, err error) {
		sysLogger.Error("NATS", "Dropped message", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	})
	if err != nil {
		log.Printf("[WARN] NATS subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.App.ClientURL,
		)
		c.ActivationMail = service.NewActivationMailService(natsSub, emailService, uowFactory, sysLogger)
	}

	c.IdentityMiddleware = serverutils.IdentityMiddleware(cfg.App.JwtSecret)
	c.PaymentController = controller.NewPaymentController(paymentService)
	adminRequired := serverutils.AdminMiddleware(codeService, sysLogger)
	c.SettingsController = controller.NewSettingsController(settingsService, adminRequired)
	c.AccessCodeController = controller.NewAccessCodeController(codeService)
	c.EntitlementController = controller.NewEntitlementController(entitlementService)
	c.AuditController = controller.NewAuditController(service.NewAuditService(uowFactory, cfg.Database.Timeout), adminRequired)

	return c
}

// newGuestStore picks where guest records live. Redis shares them across
// instances; it falls back to process memory when unreachable.
func newGuestStore(cfg *config.Config) contract.GuestEntitlementStore {
	ttl := cfg.Entitlement.GuestSessionTTL
	if cfg.Entitlement.GuestStore != "redis" {
		return memory.NewGuestEntitlementRepository(ttl)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Guest records stay in memory", err)
		_ = rdb.Close()
		return memory.NewGuestEntitlementRepository(ttl)
	}
	return memory.NewRedisGuestEntitlementRepository(rdb, ttl)
}

// Close releases the broker connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
