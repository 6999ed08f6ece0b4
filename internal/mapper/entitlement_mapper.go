package mapper

import (
	"docgentor-be/internal/entity"
	"docgentor-be/internal/model"
	"docgentor-be/pkg/entitlement"
)

type EntitlementMapper struct{}

func NewEntitlementMapper() *EntitlementMapper {
	return &EntitlementMapper{}
}

func (m *EntitlementMapper) ToEntity(e *model.Entitlement) *entity.Entitlement {
	if e == nil {
		return nil
	}
	return &entity.Entitlement{
		IdentityId: e.IdentityId,
		Record: entitlement.Record{
			Plan:       entitlement.Plan(e.Plan),
			Status:     entitlement.Status(e.Status),
			IsTrial:    e.IsTrial,
			ExpiryDate: e.ExpiryDate,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *EntitlementMapper) ToModel(e *entity.Entitlement) *model.Entitlement {
	if e == nil {
		return nil
	}
	return &model.Entitlement{
		IdentityId: e.IdentityId,
		Plan:       string(e.Record.Plan),
		Status:     string(e.Record.Status),
		IsTrial:    e.Record.IsTrial,
		ExpiryDate: e.Record.ExpiryDate,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (m *EntitlementMapper) RedemptionToEntity(r *model.PaymentRedemption) *entity.PaymentRedemption {
	if r == nil {
		return nil
	}
	return &entity.PaymentRedemption{
		Id:         r.Id,
		OrderId:    r.OrderId,
		PaymentId:  r.PaymentId,
		IdentityId: r.IdentityId,
		Plan:       r.Plan,
		RedeemedAt: r.RedeemedAt,
	}
}

func (m *EntitlementMapper) RedemptionToModel(r *entity.PaymentRedemption) *model.PaymentRedemption {
	if r == nil {
		return nil
	}
	return &model.PaymentRedemption{
		Id:         r.Id,
		OrderId:    r.OrderId,
		PaymentId:  r.PaymentId,
		IdentityId: r.IdentityId,
		Plan:       r.Plan,
		RedeemedAt: r.RedeemedAt,
	}
}

func (m *EntitlementMapper) AuditLogToEntity(l *model.EntitlementAuditLog) *entity.EntitlementAuditLog {
	if l == nil {
		return nil
	}
	return &entity.EntitlementAuditLog{
		Id:         l.Id,
		EventType:  l.EventType,
		IdentityId: l.IdentityId,
		Payload:    map[string]interface{}(l.Payload),
		OccurredAt: l.OccurredAt,
	}
}

func (m *EntitlementMapper) AuditLogToModel(l *entity.EntitlementAuditLog) *model.EntitlementAuditLog {
	if l == nil {
		return nil
	}
	return &model.EntitlementAuditLog{
		Id:         l.Id,
		EventType:  l.EventType,
		IdentityId: l.IdentityId,
		Payload:    l.Payload,
		OccurredAt: l.OccurredAt,
	}
}
