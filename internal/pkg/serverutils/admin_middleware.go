package serverutils

import (
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const AdminCodeHeader = "X-Admin-Code"

// AdminMiddleware lets the request through when the caller's token carries
// role=admin or the X-Admin-Code header passes the admin validator. It must
// run after IdentityMiddleware.
func AdminMiddleware(codes service.IAccessCodeService, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity := GetIdentity(ctx)
		if identity.IsAdmin() {
			return ctx.Next()
		}
		if code := ctx.Get(AdminCodeHeader); code != "" && codes.ValidateAdminCode(code).IsValid {
			return ctx.Next()
		}

		log.Warn("HTTP", "Admin route refused", map[string]interface{}{
			"path":        ctx.Path(),
			"identity_id": identity.Id,
		})
		return service.ErrForbidden
	}
}
