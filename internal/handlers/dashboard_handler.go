package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/repositories"
)

type DashboardHandler struct {
	resumeRepo repositories.ResumeRepository
	appRepo    repositories.ApplicationRepository
}

func NewDashboardHandler(resumeRepo repositories.ResumeRepository, appRepo repositories.ApplicationRepository) *DashboardHandler {
	return &DashboardHandler{
		resumeRepo: resumeRepo,
		appRepo:    appRepo,
	}
}

// HandleGetDashboard counts applications in Applied or Interviewing as active.
func (h *DashboardHandler) HandleGetDashboard(c *fiber.Ctx) error {
	resumeCount, err := h.resumeRepo.Count()
	if err != nil {
		return respondError(c, err)
	}

	resp := models.DashboardResponse{ResumeCount: resumeCount}

	primary, err := h.resumeRepo.FindPrimary()
	switch {
	case err == nil:
		resp.PrimaryResume = primary.FileName
	case !errors.Is(err, repositories.ErrNotFound):
		return respondError(c, err)
	}

	if resp.ActiveApplications, err = h.appRepo.CountByStatus(models.ApplicationApplied, models.ApplicationInterviewing); err != nil {
		return respondError(c, err)
	}
	if resp.TotalApplications, err = h.appRepo.CountByStatus(); err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}
