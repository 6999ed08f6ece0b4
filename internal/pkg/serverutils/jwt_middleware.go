package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"docgentor-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	identityLocalsKey  = "identity"
	GuestSessionHeader = "X-Guest-Session"
)

var errInvalidToken = errors.New("invalid token")

func parseClaims(secret, authHeader string) (jwt.MapClaims, error) {
	tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenStr == "" || secret == "" {
		return nil, errInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	return claims, nil
}

// IdentityMiddleware resolves who is calling. A valid Bearer token yields a
// user; anything else is a guest keyed by X-Guest-Session, which is minted
// and echoed back when absent or malformed. A present but invalid token is
// rejected rather than downgraded to a guest.
func IdentityMiddleware(jwtSecret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		session := ctx.Get(GuestSessionHeader)
		if _, err := uuid.Parse(session); err != nil {
			session = ""
		}

		if authHeader := ctx.Get(fiber.HeaderAuthorization); authHeader != "" {
			claims, err := parseClaims(jwtSecret, authHeader)
			if err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
			}
			userId, _ := claims["user_id"].(string)
			if userId == "" {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
			}
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)

			ctx.Locals(identityLocalsKey, entity.Identity{
				Id:           userId,
				Kind:         entity.IdentityUser,
				Email:        email,
				Role:         role,
				GuestSession: session,
			})
			return ctx.Next()
		}

		if session == "" {
			session = uuid.NewString()
		}
		ctx.Set(GuestSessionHeader, session)
		ctx.Locals(identityLocalsKey, entity.Identity{
			Kind:         entity.IdentityGuest,
			GuestSession: session,
		})
		return ctx.Next()
	}
}

// GetIdentity returns the caller resolved by IdentityMiddleware, or an
// anonymous guest when the middleware did not run.
func GetIdentity(ctx *fiber.Ctx) entity.Identity {
	if identity, ok := ctx.Locals(identityLocalsKey).(entity.Identity); ok {
		return identity
	}
	return entity.Identity{Kind: entity.IdentityGuest}
}
