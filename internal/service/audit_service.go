package service

import (
	"context"
	"time"

	"docgentor-be/internal/dto"
	"docgentor-be/internal/repository/specification"
	"docgentor-be/internal/repository/unitofwork"
)

const defaultAuditPageSize = 50

type IAuditService interface {
	ListAuditLogs(ctx context.Context, query *dto.AuditLogQuery) ([]*dto.AuditLogResponse, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	timeout    time.Duration
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory, timeout time.Duration) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
		timeout:    timeout,
	}
}

// ListAuditLogs returns the newest entries first.
func (s *auditService) ListAuditLogs(ctx context.Context, query *dto.AuditLogQuery) ([]*dto.AuditLogResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	specs := []specification.Specification{}
	if query.IdentityId != "" {
		specs = append(specs, specification.ByIdentityId{IdentityId: query.IdentityId})
	}
	if query.EventType != "" {
		specs = append(specs, specification.ByEventType{EventType: query.EventType})
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	specs = append(specs,
		specification.OrderBy{Field: "occurred_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Offset},
	)

	logs, err := s.uowFactory.NewUnitOfWork(ctx).EntitlementAuditRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, storeError(err)
	}

	res := make([]*dto.AuditLogResponse, len(logs))
	for i, l := range logs {
		res[i] = &dto.AuditLogResponse{
			Id:         l.Id.String(),
			EventType:  l.EventType,
			IdentityId: l.IdentityId,
			Payload:    l.Payload,
			OccurredAt: l.OccurredAt,
		}
	}
	return res, nil
}
