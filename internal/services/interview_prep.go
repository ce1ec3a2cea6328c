package services

import (
	"context"
	"strings"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/models"
)

// GenerateInterviewPrep never fails on model output: no output, or output
// that cannot be used, yields an empty preparation list. With no skills the
// model is not called at all.
func (s *flowService) GenerateInterviewPrep(ctx context.Context, req models.InterviewPrepRequest) (*models.InterviewPrepResult, error) {
	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}

	empty := &models.InterviewPrepResult{Preparations: []models.InterviewPrepItem{}}
	if len(skills) == 0 {
		return empty, nil
	}
	req.Skills = skills

	body, err := s.generate(ctx, GenerationRequest{
		Flow:        FlowInterviewPrep,
		Prompt:      s.promptBuilder.BuildInterviewPrepPrompt(req),
		Schema:      interviewPrepSchema(),
		Safety:      careerSafetySettings(),
		Temperature: 0.7,
	})
	if err != nil {
		if isEmptyResponse(err) {
			return empty, nil
		}
		return nil, err
	}

	out, err := decodeOutput[models.InterviewPrepResult](FlowInterviewPrep, body)
	if err != nil {
		logger.Warn().Str("flow", FlowInterviewPrep).Err(err).Msg("⚠️ Unusable model output, returning no preparations")
		return empty, nil
	}

	for _, item := range out.Preparations {
		if isBlank(item.Question) || isBlank(item.SampleAnswer) {
			continue
		}
		empty.Preparations = append(empty.Preparations, item)
	}

	return empty, nil
}
