package middleware

import (
	"github.com/gofiber/fiber/v2"

	"wbl-portal-backend/models"
	apimodels "wbl-portal-backend/models/api"
)

// Authentication itself happens upstream; the gateway forwards the resolved
// identity in these headers. This middleware only requires their presence and
// makes them available to controllers.
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"

	localsUserID   = "user_id"
	localsUserRole = "user_role"
)

func IdentityRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := ctx.Get(headerUserID)
		if userID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("user identity is missing"))
		}
		ctx.Locals(localsUserID, userID)
		ctx.Locals(localsUserRole, ctx.Get(headerUserRole))
		return ctx.Next()
	}
}

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetUserRole(ctx) != models.UserRoleAdmin {
			return ctx.SendStatus(fiber.StatusForbidden)
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	if value, ok := ctx.Locals(localsUserID).(string); ok {
		return value
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	if value, ok := ctx.Locals(localsUserRole).(string); ok {
		return models.UserRole(value)
	}
	return ""
}
