package controller

import (
	"docgentor-be/internal/dto"
	"docgentor-be/internal/pkg/serverutils"
	"docgentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEntitlementController interface {
	RegisterRoutes(r fiber.Router)
	GetEntitlement(ctx *fiber.Ctx) error
	CheckAccess(ctx *fiber.Ctx) error
	ConfirmPayment(ctx *fiber.Ctx) error
	RedeemFreemiumCode(ctx *fiber.Ctx) error
	ActivateDeveloperTrial(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type entitlementController struct {
	service service.IEntitlementService
}

func NewEntitlementController(service service.IEntitlementService) IEntitlementController {
	return &entitlementController{service: service}
}

func (c *entitlementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/entitlement")
	h.Get("/", c.GetEntitlement)
	h.Get("/access", c.CheckAccess)
	h.Post("/confirm-payment", c.ConfirmPayment)
	h.Post("/freemium", c.RedeemFreemiumCode)
	h.Post("/developer-trial", c.ActivateDeveloperTrial)
	h.Post("/cancel", c.Cancel)
}

func (c *entitlementController) GetEntitlement(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext(), serverutils.GetIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Entitlement retrieved", res))
}

func (c *entitlementController) CheckAccess(ctx *fiber.Ctx) error {
	tool := ctx.Query("tool")
	if tool == "" {
		return fiber.NewError(fiber.StatusBadRequest, "tool is required")
	}

	res, err := c.service.CheckAccess(ctx.UserContext(), serverutils.GetIdentity(ctx), tool)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Access checked", res))
}

// ConfirmPayment answers 200 with isVerified=false for a bad signature.
func (c *entitlementController) ConfirmPayment(ctx *fiber.Ctx) error {
	var req dto.ConfirmPaymentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ConfirmPayment(ctx.UserContext(), serverutils.GetIdentity(ctx), &req)
	if err != nil {
		return err
	}
	message := "Payment confirmed"
	if !res.IsVerified {
		message = "Payment could not be verified"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *entitlementController) RedeemFreemiumCode(ctx *fiber.Ctx) error {
	var req dto.RedeemCodeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.RedeemFreemiumCode(ctx.UserContext(), serverutils.GetIdentity(ctx), req.Code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *entitlementController) ActivateDeveloperTrial(ctx *fiber.Ctx) error {
	var req dto.RedeemCodeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ActivateDeveloperTrial(ctx.UserContext(), serverutils.GetIdentity(ctx), req.Code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *entitlementController) Cancel(ctx *fiber.Ctx) error {
	res, err := c.service.Cancel(ctx.UserContext(), serverutils.GetIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", res))
}
