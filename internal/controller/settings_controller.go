package controller

import (
	"docgentor-be/internal/dto"
	"docgentor-be/internal/pkg/serverutils"
	"docgentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	GetSettings(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
}

type settingsController struct {
	service       service.ISettingsService
	adminRequired fiber.Handler
}

// NewSettingsController takes the guard applied to the write route.
func NewSettingsController(service service.ISettingsService, adminRequired fiber.Handler) ISettingsController {
	return &settingsController{
		service:       service,
		adminRequired: adminRequired,
	}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	r.Get("/settings", c.GetSettings)
	r.Post("/settings", c.adminRequired, c.UpdateSettings)
}

// GetSettings never fails: an unreadable store yields the defaults.
func (c *settingsController) GetSettings(ctx *fiber.Ctx) error {
	settings := c.service.GetSettings(ctx.UserContext())
	return ctx.JSON(service.ToSettingsResponse(settings))
}

func (c *settingsController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	// The identity from the token outranks a client-supplied actor id.
	if identity := serverutils.GetIdentity(ctx); identity.IsAdmin() {
		req.ActorId = identity.Id
	}

	res, err := c.service.UpdateSettings(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
