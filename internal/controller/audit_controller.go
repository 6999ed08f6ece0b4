package controller

import (
	"docgentor-be/internal/dto"
	"docgentor-be/internal/pkg/serverutils"
	"docgentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	ListAuditLogs(ctx *fiber.Ctx) error
}

type auditController struct {
	service       service.IAuditService
	adminRequired fiber.Handler
}

func NewAuditController(service service.IAuditService, adminRequired fiber.Handler) IAuditController {
	return &auditController{
		service:       service,
		adminRequired: adminRequired,
	}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", c.adminRequired)
	h.Get("/audit-logs", c.ListAuditLogs)
}

func (c *auditController) ListAuditLogs(ctx *fiber.Ctx) error {
	var query dto.AuditLogQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.ListAuditLogs(ctx.UserContext(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit logs retrieved", res))
}
