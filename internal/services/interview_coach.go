package services

import (
	"context"

	"alfredoptarigan/karmamatch/internal/models"
)

func validateCoachRequest(req models.InterviewCoachRequest) error {
	if !req.Action.Valid() {
		return invalidInput(FlowInterviewCoach, "action must be %q or %q", models.CoachActionGenerateQuestions, models.CoachActionFeedbackOnAnswer)
	}
	if req.QuestionCategory != "" && !req.QuestionCategory.Valid() {
		return invalidInput(FlowInterviewCoach, "questionCategory %q is not one of behavioral, technical, situational, general", req.QuestionCategory)
	}
	if req.Action == models.CoachActionFeedbackOnAnswer {
		if isBlank(req.InterviewQuestion) {
			return invalidInput(FlowInterviewCoach, "interviewQuestion is required for %s", req.Action)
		}
		if isBlank(req.UserAnswer) {
			return invalidInput(FlowInterviewCoach, "userAnswer is required for %s", req.Action)
		}
	}
	return nil
}

// CoachInterview fails on missing output like the job flows do. A present
// answer is passed through as is, with GeneralTips defaulted to an empty list.
func (s *flowService) CoachInterview(ctx context.Context, req models.InterviewCoachRequest) (*models.InterviewCoachResult, error) {
	if err := validateCoachRequest(req); err != nil {
		return nil, err
	}

	body, err := s.generate(ctx, GenerationRequest{
		Flow:        FlowInterviewCoach,
		Prompt:      s.promptBuilder.BuildInterviewCoachPrompt(req),
		Schema:      interviewCoachSchema(),
		Safety:      careerSafetySettings(),
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeOutput[models.InterviewCoachResult](FlowInterviewCoach, body)
	if err != nil {
		return nil, err
	}

	if result.GeneralTips == nil {
		result.GeneralTips = []string{}
	}

	return result, nil
}
