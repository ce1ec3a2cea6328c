package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/services"
)

// MinJobDescriptionLength is the shortest job description the matcher
// endpoint accepts.
const MinJobDescriptionLength = 50

type FlowHandler struct {
	flowService services.FlowService
	maxFileSize int64
}

func NewFlowHandler(flowService services.FlowService, maxFileSize int64) *FlowHandler {
	return &FlowHandler{
		flowService: flowService,
		maxFileSize: maxFileSize,
	}
}

func (h *FlowHandler) HandleAnalyzeResume(c *fiber.Ctx) error {
	var req models.ResumeAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	analysis, err := h.flowService.AnalyzeResume(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(analysis)
}

// HandleAnalyzeUpload accepts the resume as a multipart file in the "resume"
// field and runs it through the same analysis as the JSON endpoint.
func (h *FlowHandler) HandleAnalyzeUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return badRequest(c, "Missing 'resume' file")
	}

	if file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return badRequest(c, "Failed to read uploaded file")
	}

	mimeType := services.DetectMIMEType(data)
	if !services.IsAcceptedResumeType(mimeType) {
		return badRequest(c, fmt.Sprintf("Unsupported file type %q. Please upload a PDF or DOCX resume.", mimeType))
	}

	dataURI := services.EncodeDataURI(mimeType, data)
	analysis, err := h.flowService.AnalyzeResume(c.UserContext(), models.ResumeAnalysisRequest{
		ResumeDataURI: dataURI,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"fileName":      file.Filename,
		"resumeDataUri": dataURI,
		"analysis":      analysis,
	})
}

func (h *FlowHandler) HandleMatchJob(c *fiber.Ctx) error {
	var payload models.MatchJobPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := payload.JobMatchRequest
	if payload.Analysis != nil {
		req.ResumeProfile = payload.Analysis.Profile()
	}

	if len([]rune(strings.TrimSpace(req.JobDescription))) < MinJobDescriptionLength {
		return badRequest(c, fmt.Sprintf("Job description must be at least %d characters", MinJobDescriptionLength))
	}

	result, err := h.flowService.MatchJob(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *FlowHandler) HandleRecommendJobs(c *fiber.Ctx) error {
	var payload models.RecommendJobsPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := payload.JobRecommendationRequest
	if payload.Analysis != nil {
		req.ResumeProfile = payload.Analysis.Profile()
	}

	result, err := h.flowService.RecommendJobs(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *FlowHandler) HandleInterviewPrep(c *fiber.Ctx) error {
	var req models.InterviewPrepRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.flowService.GenerateInterviewPrep(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *FlowHandler) HandleInterviewCoach(c *fiber.Ctx) error {
	var req models.InterviewCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.flowService.CoachInterview(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
