package services

import (
	"context"
	"errors"
	"fmt"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/models"
)

type resumeAnalysisOutput struct {
	Skills     []string            `json:"skills"`
	Experience []models.Experience `json:"experience"`
	Education  []models.Education  `json:"education"`
	ATSScore   *int                `json:"atsScore"`
}

func (s *flowService) AnalyzeResume(ctx context.Context, req models.ResumeAnalysisRequest) (*models.ResumeAnalysis, error) {
	doc, err := ValidateResumeDocument(req.ResumeDataURI)
	if err != nil {
		return nil, invalidInput(FlowResumeAnalysis, "resumeDataUri: %w", err)
	}

	logger.Info().
		Str("flow", FlowResumeAnalysis).
		Str("mime_type", doc.MIMEType).
		Int("bytes", len(doc.Data)).
		Msg("🤖 Analyzing resume")

	body, err := s.generate(ctx, GenerationRequest{
		Flow:        FlowResumeAnalysis,
		Prompt:      s.promptBuilder.BuildResumeAnalysisPrompt(),
		Media:       &InlineMedia{MIMEType: doc.MIMEType, Data: doc.Data},
		Schema:      resumeAnalysisSchema(),
		Safety:      resumeSafetySettings(),
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	out, err := decodeOutput[resumeAnalysisOutput](FlowResumeAnalysis, body)
	if err != nil {
		return nil, err
	}

	if out.ATSScore == nil {
		return nil, emptyResponse(FlowResumeAnalysis, errors.New("atsScore missing from model output"))
	}
	if *out.ATSScore < 0 || *out.ATSScore > 100 {
		return nil, emptyResponse(FlowResumeAnalysis, fmt.Errorf("atsScore %d outside 0-100", *out.ATSScore))
	}

	analysis := &models.ResumeAnalysis{
		Skills:     out.Skills,
		Experience: out.Experience,
		Education:  out.Education,
		ATSScore:   *out.ATSScore,
	}
	if analysis.Skills == nil {
		analysis.Skills = []string{}
	}
	if analysis.Experience == nil {
		analysis.Experience = []models.Experience{}
	}
	if analysis.Education == nil {
		analysis.Education = []models.Education{}
	}

	return analysis, nil
}
