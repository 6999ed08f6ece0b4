package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"docgentor-be/internal/dto"
	"docgentor-be/internal/entity"
	"docgentor-be/internal/event"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/pkg/metrics"
	"docgentor-be/internal/repository/contract"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/internal/repository/unitofwork"
	"docgentor-be/pkg/entitlement"
	"docgentor-be/pkg/payment"

	"github.com/google/uuid"
)

const (
	ReasonRevalidated    = "revalidated"
	ReasonSubscribed     = "subscribed"
	ReasonCancelled      = "cancelled"
	ReasonFreemiumCode   = "freemium_code"
	ReasonDeveloperTrial = "developer_trial"
	ReasonPayment        = "payment"
)

type IEntitlementService interface {
	Get(ctx context.Context, identity entity.Identity) (*dto.EntitlementResponse, error)
	Subscribe(ctx context.Context, identity entity.Identity, plan entitlement.Plan, isTrial bool) (*dto.EntitlementResponse, error)
	Cancel(ctx context.Context, identity entity.Identity) (*dto.EntitlementResponse, error)
	RedeemFreemiumCode(ctx context.Context, identity entity.Identity, code string) (*dto.RedeemCodeResponse, error)
	ActivateDeveloperTrial(ctx context.Context, identity entity.Identity, code string) (*dto.RedeemCodeResponse, error)
	ConfirmPayment(ctx context.Context, identity entity.Identity, req *dto.ConfirmPaymentRequest) (*dto.ConfirmPaymentResponse, error)
	CheckAccess(ctx context.Context, identity entity.Identity, tool string) (*dto.AccessResponse, error)
}

type entitlementService struct {
	uowFactory unitofwork.RepositoryFactory
	guests     contract.GuestEntitlementStore
	settings   ISettingsService
	payments   IPaymentService
	codes      IAccessCodeService
	publisher  event.Publisher
	logger     logger.ILogger
	timeout    time.Duration
	now        func() time.Time
}

func NewEntitlementService(
	uowFactory unitofwork.RepositoryFactory,
	guests contract.GuestEntitlementStore,
	settings ISettingsService,
	payments IPaymentService,
	codes IAccessCodeService,
	publisher event.Publisher,
	logger logger.ILogger,
	timeout time.Duration,
) IEntitlementService {
	return &entitlementService{
		uowFactory: uowFactory,
		guests:     guests,
		settings:   settings,
		payments:   payments,
		codes:      codes,
		publisher:  publisher,
		logger:     logger,
		timeout:    timeout,
		now:        time.Now,
	}
}

// current is a loaded and revalidated record plus the tier it grants now.
type current struct {
	record entitlement.Record
	tier   entitlement.Tier
}

func (s *entitlementService) Get(ctx context.Context, identity entity.Identity) (*dto.EntitlementResponse, error) {
	cur, err := s.revalidate(ctx, identity)
	if err != nil {
		return nil, err
	}
	return toEntitlementResponse(cur.record, cur.tier), nil
}

func (s *entitlementService) CheckAccess(ctx context.Context, identity entity.Identity, tool string) (*dto.AccessResponse, error) {
	t, ok := entitlement.ParseTool(tool)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tool %q", ErrValidation, tool)
	}

	cur, err := s.revalidate(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &dto.AccessResponse{
		Tool:    string(t),
		Allowed: cur.tier.Allows(t),
		Tier:    string(cur.tier),
	}, nil
}

func (s *entitlementService) Subscribe(ctx context.Context, identity entity.Identity, plan entitlement.Plan, isTrial bool) (*dto.EntitlementResponse, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	reason := ReasonSubscribed
	if isTrial {
		reason = ReasonDeveloperTrial
	}
	rec, err := s.subscribe(ctx, identity, plan, isTrial, reason)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, rec), nil
}

func (s *entitlementService) Cancel(ctx context.Context, identity entity.Identity) (*dto.EntitlementResponse, error) {
	cur, err := s.revalidate(ctx, identity)
	if err != nil {
		return nil, err
	}

	next, changed := entitlement.Cancel(cur.record)
	if !changed {
		return toEntitlementResponse(cur.record, cur.tier), nil
	}

	if err := s.store(ctx, identity, next); err != nil {
		return nil, err
	}
	s.recordTransition(ctx, identity, cur.record, next, ReasonCancelled)
	return s.respond(ctx, next), nil
}

func (s *entitlementService) RedeemFreemiumCode(ctx context.Context, identity entity.Identity, code string) (*dto.RedeemCodeResponse, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}

	settings, err := s.settings.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	matches := subtle.ConstantTimeCompare([]byte(code), []byte(settings.FreemiumCode)) == 1
	if !matches || entitlement.CodeExpired(now, settings.FreemiumCodeExpiry) {
		metrics.CodeValidationsTotal.WithLabelValues("freemium", metrics.Result(false)).Inc()
		s.logger.Warn("ENTITLEMENT", "Rejected freemium code", map[string]interface{}{
			"identity_id":  identity.Id,
			"code_matched": matches,
		})
		return &dto.RedeemCodeResponse{Activated: false, Message: "Invalid or expired freemium code."}, nil
	}
	metrics.CodeValidationsTotal.WithLabelValues("freemium", metrics.Result(true)).Inc()

	rec, err := s.subscribe(ctx, identity, entitlement.PlanFreemium, false, ReasonFreemiumCode)
	if err != nil {
		return nil, err
	}
	return &dto.RedeemCodeResponse{
		Activated:   true,
		Message:     "Freemium access activated.",
		Entitlement: toEntitlementResponse(rec, entitlement.Evaluate(rec, now, settings.FreemiumCodeExpiry)),
	}, nil
}

func (s *entitlementService) ActivateDeveloperTrial(ctx context.Context, identity entity.Identity, code string) (*dto.RedeemCodeResponse, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}

	res := s.codes.ValidateDeveloperCode(code)
	if !res.IsValid {
		return &dto.RedeemCodeResponse{Activated: false, Message: res.Message}, nil
	}

	rec, err := s.subscribe(ctx, identity, entitlement.PlanYearly, true, ReasonDeveloperTrial)
	if err != nil {
		return nil, err
	}
	return &dto.RedeemCodeResponse{
		Activated:   true,
		Message:     res.Message,
		Entitlement: s.respond(ctx, rec),
	}, nil
}

func (s *entitlementService) ConfirmPayment(ctx context.Context, identity entity.Identity, req *dto.ConfirmPaymentRequest) (*dto.ConfirmPaymentResponse, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	verified, err := s.payments.VerifyPayment(ctx, &dto.VerifyPaymentRequest{
		OrderId:   req.OrderId,
		PaymentId: req.PaymentId,
		Signature: req.Signature,
	})
	if err != nil {
		return nil, err
	}
	if !verified.IsVerified {
		return &dto.ConfirmPaymentResponse{IsVerified: false}, nil
	}

	// The plan comes from the processor's copy of the order.
	order, err := s.payments.FetchOrder(ctx, req.OrderId)
	if err != nil {
		return nil, err
	}
	plan, err := entitlement.ParsePlan(order.Notes[payment.NotePlan])
	if err != nil || !plan.IsPaid() {
		s.logger.Error("ENTITLEMENT", "Verified order carries no paid plan", map[string]interface{}{
			"order_id": order.Id,
			"notes":    order.Notes,
		})
		return nil, fmt.Errorf("%w: order has no plan", ErrValidation)
	}
	if owner := order.Notes[payment.NoteIdentity]; owner != "" && owner != identity.Id {
		s.logger.Warn("ENTITLEMENT", "Order belongs to another identity", map[string]interface{}{
			"order_id":    order.Id,
			"identity_id": identity.Id,
		})
		return nil, ErrForbidden
	}

	before, next, err := s.redeemOrder(ctx, identity, req, plan)
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, identity, before, next, ReasonPayment)
	s.publisher.PublishPaymentConfirmed(ctx, identity, req.OrderId, req.PaymentId, plan)

	return &dto.ConfirmPaymentResponse{
		IsVerified:  true,
		Entitlement: s.respond(ctx, next),
	}, nil
}

// redeemOrder writes the redemption row and the activated record in one
// transaction so a replayed order never grants twice.
func (s *entitlementService) redeemOrder(ctx context.Context, identity entity.Identity, req *dto.ConfirmPaymentRequest, plan entitlement.Plan) (entitlement.Record, entitlement.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return entitlement.Record{}, entitlement.Record{}, storeError(err)
	}
	defer func() {
		// no-op after a successful commit
		_ = uow.Rollback()
	}()

	existing, err := uow.PaymentRedemptionRepository().FindOne(ctx, specification.ByOrderId{OrderId: req.OrderId})
	if err != nil {
		return entitlement.Record{}, entitlement.Record{}, storeError(err)
	}
	if existing != nil {
		s.logger.Warn("ENTITLEMENT", "Replayed payment confirmation", map[string]interface{}{
			"order_id":    req.OrderId,
			"identity_id": identity.Id,
			"redeemed_by": existing.IdentityId,
		})
		return entitlement.Record{}, entitlement.Record{}, ErrPaymentAlreadyRedeemed
	}

	now := s.now()
	err = uow.PaymentRedemptionRepository().Create(ctx, &entity.PaymentRedemption{
		Id:         uuid.New(),
		OrderId:    req.OrderId,
		PaymentId:  req.PaymentId,
		IdentityId: identity.Id,
		Plan:       string(plan),
		RedeemedAt: now,
	})
	if err != nil {
		if errors.Is(err, contract.ErrDuplicateRedemption) {
			return entitlement.Record{}, entitlement.Record{}, ErrPaymentAlreadyRedeemed
		}
		return entitlement.Record{}, entitlement.Record{}, storeError(err)
	}

	repo := uow.EntitlementRepository()
	before := entitlement.Zero()
	stored, err := repo.FindOne(ctx, specification.ByIdentityId{IdentityId: identity.Id})
	if err != nil {
		return entitlement.Record{}, entitlement.Record{}, storeError(err)
	}
	if stored != nil {
		before = stored.Record
	}

	next, _, err := entitlement.Subscribe(before, plan, false, now)
	if err != nil {
		return entitlement.Record{}, entitlement.Record{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if err := repo.Upsert(ctx, &entity.Entitlement{IdentityId: identity.Id, Record: next}); err != nil {
		return entitlement.Record{}, entitlement.Record{}, storeError(err)
	}

	if err := uow.Commit(); err != nil {
		return entitlement.Record{}, entitlement.Record{}, storeError(err)
	}
	return before, next, nil
}

func (s *entitlementService) subscribe(ctx context.Context, identity entity.Identity, plan entitlement.Plan, isTrial bool, reason string) (entitlement.Record, error) {
	before, err := s.load(ctx, identity)
	if err != nil {
		return entitlement.Record{}, err
	}

	next, changed, err := entitlement.Subscribe(before, plan, isTrial, s.now())
	if err != nil {
		return entitlement.Record{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if !changed {
		return before, nil
	}

	if err := s.store(ctx, identity, next); err != nil {
		return entitlement.Record{}, err
	}
	s.recordTransition(ctx, identity, before, next, reason)
	return next, nil
}

// revalidate loads the record and applies both expiry clocks. When settings
// cannot be read or fail validation, a freemium record is served as tier
// none and left untouched in storage.
func (s *entitlementService) revalidate(ctx context.Context, identity entity.Identity) (current, error) {
	if identity.IsAuthenticated() && identity.GuestSession != "" {
		// Signing in discards whatever the guest session held.
		if err := s.guests.Delete(ctx, identity.GuestSession); err != nil {
			s.logger.Warn("ENTITLEMENT", "Failed to drop guest record on sign-in", map[string]interface{}{"error": err.Error()})
		}
	}

	rec, err := s.load(ctx, identity)
	if err != nil {
		return current{}, err
	}

	now := s.now()
	var codeExpiry *time.Time
	degraded := false
	if rec.Status == entitlement.StatusFreemium {
		settings, err := s.settings.Lookup(ctx)
		if err != nil {
			degraded = true
			s.logger.Warn("ENTITLEMENT", "Settings unavailable, freemium access suspended for this request", map[string]interface{}{
				"identity_id": identity.Id,
				"error":       err.Error(),
			})
		} else {
			codeExpiry = settings.FreemiumCodeExpiry
		}
	}

	var next entitlement.Record
	var changed bool
	if degraded {
		next, changed = entitlement.ExpireByDate(rec, now)
	} else {
		next, changed = entitlement.Revalidate(rec, now, codeExpiry)
	}

	if changed {
		if err := s.store(ctx, identity, next); err != nil {
			return current{}, err
		}
		s.recordTransition(ctx, identity, rec, next, ReasonRevalidated)
	}

	return current{record: next, tier: entitlement.Evaluate(next, now, codeExpiry)}, nil
}

func (s *entitlementService) load(ctx context.Context, identity entity.Identity) (entitlement.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if !identity.IsAuthenticated() {
		rec, _, err := s.guests.Get(ctx, identity.GuestSession)
		if err != nil {
			return entitlement.Record{}, storeError(err)
		}
		return rec, nil
	}

	stored, err := s.uowFactory.NewUnitOfWork(ctx).EntitlementRepository().
		FindOne(ctx, specification.ByIdentityId{IdentityId: identity.Id})
	if err != nil {
		return entitlement.Record{}, storeError(err)
	}
	if stored == nil {
		return entitlement.Zero(), nil
	}
	return stored.Record, nil
}

// store is a single write, so a failed transition leaves the prior record
// as it was.
func (s *entitlementService) store(ctx context.Context, identity entity.Identity, rec entitlement.Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var err error
	if identity.IsAuthenticated() {
		err = s.uowFactory.NewUnitOfWork(ctx).EntitlementRepository().
			Upsert(ctx, &entity.Entitlement{IdentityId: identity.Id, Record: rec})
	} else {
		err = s.guests.Save(ctx, identity.GuestSession, rec)
	}
	if err != nil {
		s.logger.Error("ENTITLEMENT", "Failed to persist entitlement", map[string]interface{}{
			"identity_id":   identity.Id,
			"identity_kind": identity.Kind,
			"error":         err.Error(),
		})
		return storeError(err)
	}
	return nil
}

func (s *entitlementService) recordTransition(ctx context.Context, identity entity.Identity, before, after entitlement.Record, reason string) {
	metrics.TransitionsTotal.WithLabelValues(string(before.Status), string(after.Status), reason).Inc()
	s.logger.Info("ENTITLEMENT", "Entitlement changed", map[string]interface{}{
		"identity_id": identity.Id,
		"reason":      reason,
		"from":        before.Status,
		"to":          after.Status,
	})
	s.publisher.PublishEntitlementChanged(ctx, identity, before, after, reason)
}

// respond evaluates a freshly written record. Only freemium needs the
// settings record; if it cannot be read the tier falls to none.
func (s *entitlementService) respond(ctx context.Context, rec entitlement.Record) *dto.EntitlementResponse {
	var codeExpiry *time.Time
	if rec.Status == entitlement.StatusFreemium {
		if settings, err := s.settings.Lookup(ctx); err == nil {
			codeExpiry = settings.FreemiumCodeExpiry
		}
	}
	return toEntitlementResponse(rec, entitlement.Evaluate(rec, s.now(), codeExpiry))
}

func toEntitlementResponse(rec entitlement.Record, tier entitlement.Tier) *dto.EntitlementResponse {
	tools := tier.Tools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = string(t)
	}
	return &dto.EntitlementResponse{
		Plan:       string(rec.Plan),
		Status:     string(rec.Status),
		IsTrial:    rec.IsTrial,
		ExpiryDate: rec.ExpiryDate,
		Tier:       string(tier),
		Tools:      names,
	}
}
