package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/helper"
	"github.com/yigaglobal/fellowship_service/internal/services"
)

// AuthMiddleware verifies the bearer credential and resolves the backing
// account. Missing, invalid, expired and inactive-account cases all get the
// same generic denial so nothing leaks about which one occurred.
func AuthMiddleware(auth helper.Auth, accountSvc services.AccountService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Get("Authorization"))

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return unauthorized(ctx)
		}

		acc, err := accountSvc.GetByID(ctx.UserContext(), claims.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": domain.ErrStoreUnavailable.Error(),
				})
			}
			return unauthorized(ctx)
		}
		if !acc.IsActive {
			return unauthorized(ctx)
		}

		ctx.Locals("accountID", acc.ID)
		ctx.Locals("user", claims)
		ctx.Locals("account", acc)
		return ctx.Next()
	}
}

func SuperadminOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		acc, ok := ctx.Locals("account").(*domain.Account)
		if !ok || acc == nil {
			return unauthorized(ctx)
		}

		if acc.Role != domain.RoleSuperadmin {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": domain.ErrForbidden.Error(),
			})
		}

		return ctx.Next()
	}
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "unauthorized",
	})
}
