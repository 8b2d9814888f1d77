package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/helper/utils"
)

// respondError maps the domain error taxonomy onto the HTTP contract.
// Unknown errors are logged server-side and surfaced as a generic 500.
func respondError(ctx *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return utils.ResponseValidationError(ctx, "Invalid input", ve.Fields)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrSelfModification),
		errors.Is(err, domain.ErrLastSuperadmin):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredential):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Printf("store unavailable: %v", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, domain.ErrStoreUnavailable.Error())
	default:
		log.Printf("unexpected error: %v", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Server error")
	}
}
