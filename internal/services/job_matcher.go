package services

import (
	"context"
	"errors"

	"alfredoptarigan/karmamatch/internal/models"
)

func (s *flowService) MatchJob(ctx context.Context, req models.JobMatchRequest) (*models.JobMatchResult, error) {
	if isBlank(req.JobDescription) {
		return nil, invalidInput(FlowJobMatch, "jobDescription is required")
	}

	body, err := s.generate(ctx, GenerationRequest{
		Flow:        FlowJobMatch,
		Prompt:      s.promptBuilder.BuildJobMatchPrompt(req),
		Schema:      jobMatchSchema(),
		Safety:      careerSafetySettings(),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeOutput[models.JobMatchResult](FlowJobMatch, body)
	if err != nil {
		return nil, err
	}

	if isBlank(result.JobRanking) || isBlank(result.FitCategory) {
		return nil, emptyResponse(FlowJobMatch, errors.New("jobRanking and fitCategory are required in model output"))
	}

	return result, nil
}
