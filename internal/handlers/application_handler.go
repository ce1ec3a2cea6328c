package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/repositories"
)

const dateLayout = "2006-01-02"

type ApplicationHandler struct {
	appRepo repositories.ApplicationRepository
}

func NewApplicationHandler(appRepo repositories.ApplicationRepository) *ApplicationHandler {
	return &ApplicationHandler{appRepo: appRepo}
}

func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Company = strings.TrimSpace(req.Company)
	if req.JobTitle == "" || req.Company == "" {
		return badRequest(c, "jobTitle and company are required")
	}

	status := models.ApplicationSaved
	if req.Status != "" {
		status = models.ApplicationStatus(req.Status)
		if !status.Valid() {
			return badRequest(c, fmt.Sprintf("Invalid status %q", req.Status))
		}
	}

	dateApplied := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DateApplied != "" {
		parsed, err := time.Parse(dateLayout, req.DateApplied)
		if err != nil {
			return badRequest(c, "dateApplied must be formatted as YYYY-MM-DD")
		}
		dateApplied = parsed
	}

	app := models.JobApplication{
		ID:          uuid.New(),
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Status:      status,
		DateApplied: dateApplied,
	}

	if req.ResumeIDUsed != "" {
		resumeID, err := uuid.Parse(req.ResumeIDUsed)
		if err != nil {
			return badRequest(c, "Invalid resumeIdUsed format")
		}
		app.ResumeIDUsed = &resumeID
	}

	if err := h.appRepo.Create(&app); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	apps, err := h.appRepo.List()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID format")
	}

	var req models.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		return badRequest(c, fmt.Sprintf("Invalid status %q", req.Status))
	}

	if err := h.appRepo.UpdateStatus(id, status); err != nil {
		return respondError(c, err)
	}

	app, err := h.appRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID format")
	}

	if err := h.appRepo.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
