package controller

import (
	"fmt"

	"docgentor-be/internal/dto"
	"docgentor-be/internal/pkg/serverutils"
	"docgentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	CreateOrder(ctx *fiber.Ctx) error
	VerifyPayment(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	r.Post("/order", c.CreateOrder)
	r.Post("/verify", c.VerifyPayment)
}

// CreateOrder answers with the processor's order object as is.
func (c *paymentController) CreateOrder(ctx *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateOrder(ctx.UserContext(), serverutils.GetIdentity(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *paymentController) VerifyPayment(ctx *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.VerifyPayment(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// parseBody decodes and validates a JSON body. Either failure is a 400.
func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrValidation)
	}
	return serverutils.ValidateRequest(out)
}
