package services

import (
	"context"
	"fmt"

	"alfredoptarigan/karmamatch/internal/models"
)

func (s *flowService) RecommendJobs(ctx context.Context, req models.JobRecommendationRequest) (*models.JobRecommendations, error) {
	if req.ResumeProfile.IsBlank() {
		return nil, invalidInput(FlowJobRecommendation, "at least one of resumeSkills, resumeExperience or resumeEducation is required")
	}

	body, err := s.generate(ctx, GenerationRequest{
		Flow:        FlowJobRecommendation,
		Prompt:      s.promptBuilder.BuildJobRecommendationPrompt(req),
		Schema:      jobRecommendationsSchema(),
		Safety:      careerSafetySettings(),
		Temperature: 0.5,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeOutput[models.JobRecommendations](FlowJobRecommendation, body)
	if err != nil {
		return nil, err
	}

	if result.Recommendations == nil {
		result.Recommendations = []models.RecommendedJob{}
	}
	for i, job := range result.Recommendations {
		if isBlank(job.ID) || isBlank(job.Title) || isBlank(job.Company) || isBlank(job.Reasoning) {
			return nil, emptyResponse(FlowJobRecommendation, fmt.Errorf("recommendation %d is missing a required field", i))
		}
	}

	return result, nil
}
