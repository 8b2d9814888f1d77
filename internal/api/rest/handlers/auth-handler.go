package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/dto"
	"github.com/yigaglobal/fellowship_service/internal/helper"
	"github.com/yigaglobal/fellowship_service/internal/helper/utils"
	"github.com/yigaglobal/fellowship_service/internal/services"
)

type AuthHandler struct {
	svc  services.AccountService
	auth helper.Auth
}

func NewAuthHandler(svc services.AccountService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	auth := app.Group("/api/auth")

	auth.Post("/login", h.Login)
	auth.Get("/me", authMW, h.Me)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Username and password required")
	}
	if requestBody.Username == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Username and password required")
	}

	acc, err := h.svc.Login(ctx.UserContext(), requestBody.Username, requestBody.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	token, err := h.auth.GenerateToken(acc.ID, acc.Username, acc.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.NewAccountResponse(acc),
	})
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	acc, ok := ctx.Locals("account").(*domain.Account)
	if !ok || acc == nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewAccountResponse(acc))
}
