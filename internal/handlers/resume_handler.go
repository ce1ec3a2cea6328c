package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/services"
)

type ResumeHandler struct {
	library services.LibraryService
}

func NewResumeHandler(library services.LibraryService) *ResumeHandler {
	return &ResumeHandler{library: library}
}

func (h *ResumeHandler) HandleSave(c *fiber.Ctx) error {
	var req models.SaveResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resume, err := h.library.SaveResume(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resume)
}

func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.library.ListResumes()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid resume ID format")
	}

	resume, err := h.library.GetResume(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resume)
}

func (h *ResumeHandler) HandleSetPrimary(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid resume ID format")
	}

	resume, err := h.library.SetPrimary(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resume)
}

func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid resume ID format")
	}

	if err := h.library.DeleteResume(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearch ranks stored resumes against the job description in ?q=.
func (h *ResumeHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return badRequest(c, "Query parameter 'q' is required")
	}

	matches, err := h.library.SearchResumes(c.UserContext(), query, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"matches": matches,
	})
}
