package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/dto"
	"github.com/yigaglobal/fellowship_service/internal/helper/utils"
	"github.com/yigaglobal/fellowship_service/internal/services"
	pkgutils "github.com/yigaglobal/fellowship_service/pkg/utils"
)

const maxResumeSize = 5 * 1024 * 1024 // 5MB

var allowedResumeExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	apps := app.Group("/api/applications")

	// submission is the one public write
	apps.Post("/", h.Submit)

	apps.Get("/", authMW, h.List)
	apps.Get("/stats/summary", authMW, h.Stats)
	apps.Get("/:id", authMW, h.Get)
	apps.Put("/:id", authMW, h.Review)
	apps.Delete("/:id", authMW, h.Remove)
}

func (h *ApplicationHandler) Submit(ctx *fiber.Ctx) error {
	var requestBody dto.SubmitApplicationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	var resume *services.ResumeUpload
	if file, err := ctx.FormFile("resume"); err == nil && file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedResumeExt[ext] {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Only pdf/doc/docx/jpg/jpeg/png resumes allowed")
		}
		if file.Size > maxResumeSize {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Resume too large (max 5MB)")
		}

		f, err := file.Open()
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Cannot open uploaded file")
		}
		defer f.Close()

		b, err := pkgutils.ReadAllLimit(f, maxResumeSize)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Resume too large (max 5MB)")
		}
		resume = &services.ResumeUpload{Filename: file.Filename, Data: b}
	}

	app, err := h.svc.Submit(ctx.UserContext(), requestBody, resume)
	if err != nil {
		return respondError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

func (h *ApplicationHandler) List(ctx *fiber.Ctx) error {
	var q dto.ListApplicationsQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Invalid query")
	}

	resp, err := h.svc.List(ctx.UserContext(), q)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *ApplicationHandler) Get(ctx *fiber.Ctx) error {
	id, ok := parseID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Application not found")
	}

	app, err := h.svc.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) Review(ctx *fiber.Ctx) error {
	id, ok := parseID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Application not found")
	}

	var requestBody dto.ReviewRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid input")
	}

	acc, _ := ctx.Locals("account").(*domain.Account)
	if acc == nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	reviewer := acc.Name
	if reviewer == "" {
		reviewer = acc.Username
	}

	app, err := h.svc.Review(ctx.UserContext(), id, requestBody, reviewer)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) Remove(ctx *fiber.Ctx) error {
	id, ok := parseID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "Application not found")
	}

	if err := h.svc.Remove(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Application deleted successfully",
	})
}

func (h *ApplicationHandler) Stats(ctx *fiber.Ctx) error {
	stats, err := h.svc.Stats(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, stats)
}
