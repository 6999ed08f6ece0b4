package controller

import (
	"docgentor-be/internal/dto"
	"docgentor-be/internal/service"
	"docgentor-be/pkg/accesscode"

	"github.com/gofiber/fiber/v2"
)

type IAccessCodeController interface {
	RegisterRoutes(r fiber.Router)
	ValidateAdminCode(ctx *fiber.Ctx) error
	ValidateDeveloperCode(ctx *fiber.Ctx) error
}

type accessCodeController struct {
	service service.IAccessCodeService
}

func NewAccessCodeController(service service.IAccessCodeService) IAccessCodeController {
	return &accessCodeController{service: service}
}

func (c *accessCodeController) RegisterRoutes(r fiber.Router) {
	r.Post("/validate-admin-code", c.ValidateAdminCode)
	r.Post("/validate-developer-code", c.ValidateDeveloperCode)
}

func (c *accessCodeController) ValidateAdminCode(ctx *fiber.Ctx) error {
	return c.validate(ctx, c.service.ValidateAdminCode)
}

func (c *accessCodeController) ValidateDeveloperCode(ctx *fiber.Ctx) error {
	return c.validate(ctx, c.service.ValidateDeveloperCode)
}

func (c *accessCodeController) validate(ctx *fiber.Ctx, check func(string) accesscode.Result) error {
	var req dto.ValidateCodeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res := check(req.Code)
	status := fiber.StatusOK
	if !res.IsValid {
		status = fiber.StatusUnauthorized
	}
	return ctx.Status(status).JSON(dto.ValidateCodeResponse{
		IsValid: res.IsValid,
		Message: res.Message,
	})
}
