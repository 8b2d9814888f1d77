package utils

import "github.com/gofiber/fiber/v2"

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": msg,
	})
}

func ResponseValidationError(ctx *fiber.Ctx, msg string, fields map[string]string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": msg,
		"errors":  fields,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(data)
}
