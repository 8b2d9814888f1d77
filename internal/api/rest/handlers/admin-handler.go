package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/yigaglobal/fellowship_service/internal/dto"
	"github.com/yigaglobal/fellowship_service/internal/helper/utils"
	"github.com/yigaglobal/fellowship_service/internal/services"
)

type AdminHandler struct {
	svc services.AccountService
}

func NewAdminHandler(svc services.AccountService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Listing is open to any authenticated staff; mutation is superadmin-only.
func (h *AdminHandler) SetupRoutes(app *fiber.App, authMW, superadminMW fiber.Handler) {
	admins := app.Group("/api/admins", authMW)

	admins.Get("/", h.List)
	admins.Post("/", superadminMW, h.Create)
	admins.Put("/:id", superadminMW, h.Update)
	admins.Put("/:id/toggle", superadminMW, h.Toggle)
	admins.Delete("/:id", superadminMW, h.Delete)
}

func (h *AdminHandler) List(ctx *fiber.Ctx) error {
	accs, err := h.svc.List(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"admins": accs,
	})
}

func (h *AdminHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CreateAdminRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Username, password, and name are required")
	}

	acc, err := h.svc.Create(ctx.UserContext(), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message": "Admin created successfully",
		"admin":   acc,
	})
}

func (h *AdminHandler) Update(ctx *fiber.Ctx) error {
	targetID, ok := parseID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Admin not found")
	}

	var requestBody dto.UpdateAdminRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid input")
	}

	acc, err := h.svc.Update(ctx.UserContext(), callerID(ctx), targetID, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, acc)
}

func (h *AdminHandler) Toggle(ctx *fiber.Ctx) error {
	targetID, ok := parseID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Admin not found")
	}

	acc, err := h.svc.ToggleActive(ctx.UserContext(), callerID(ctx), targetID)
	if err != nil {
		return respondError(ctx, err)
	}

	msg := "Admin deactivated successfully"
	if acc.IsActive {
		msg = "Admin activated successfully"
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": msg,
		"admin":   acc,
	})
}

func (h *AdminHandler) Delete(ctx *fiber.Ctx) error {
	targetID, ok := parseID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Admin not found")
	}

	if err := h.svc.Delete(ctx.UserContext(), callerID(ctx), targetID); err != nil {
		return respondError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Admin deleted successfully",
	})
}

func parseID(ctx *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func callerID(ctx *fiber.Ctx) uint {
	id, _ := ctx.Locals("accountID").(uint)
	return id
}
