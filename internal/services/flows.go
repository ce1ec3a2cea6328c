package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/models"
)

const (
	FlowResumeAnalysis    = "resume_analysis"
	FlowJobMatch          = "job_match"
	FlowJobRecommendation = "job_recommendation"
	FlowInterviewPrep     = "interview_prep"
	FlowInterviewCoach    = "interview_coach"

	DefaultFlowTimeout = 60 * time.Second
)

// FlowService runs the five prompt flows against the model. Each call is
// independent and safe for concurrent use.
type FlowService interface {
	AnalyzeResume(ctx context.Context, req models.ResumeAnalysisRequest) (*models.ResumeAnalysis, error)
	MatchJob(ctx context.Context, req models.JobMatchRequest) (*models.JobMatchResult, error)
	RecommendJobs(ctx context.Context, req models.JobRecommendationRequest) (*models.JobRecommendations, error)
	GenerateInterviewPrep(ctx context.Context, req models.InterviewPrepRequest) (*models.InterviewPrepResult, error)
	CoachInterview(ctx context.Context, req models.InterviewCoachRequest) (*models.InterviewCoachResult, error)
}

type flowService struct {
	generator     Generator
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

func NewFlowService(generator Generator, timeout time.Duration) FlowService {
	if timeout <= 0 {
		timeout = DefaultFlowTimeout
	}

	return &flowService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

type generation struct {
	body []byte
	err  error
}

// generate sends one request and waits for the answer, the flow deadline or
// the caller's cancellation, whichever comes first. When it stops waiting the
// in-flight call is left to finish on its own and its answer is dropped.
func (s *flowService) generate(ctx context.Context, req GenerationRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger.Debug().
		Str("flow", req.Flow).
		Int("prompt_chars", len(req.Prompt)).
		Bool("media", req.Media != nil).
		Msg("📝 Calling model")

	done := make(chan generation, 1)
	go func() {
		body, err := s.generator.Generate(ctx, req)
		done <- generation{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.Warn().Str("flow", req.Flow).Err(ctx.Err()).Msg("⏱️ Stopped waiting for model")
		return nil, upstreamError(req.Flow, fmt.Errorf("model call abandoned: %w", ctx.Err()))
	case res := <-done:
		if res.err != nil {
			logger.Error().Str("flow", req.Flow).Err(res.err).Msg("❌ Model call failed")
			return nil, upstreamError(req.Flow, res.err)
		}
		if isEmptyBody(res.body) {
			logger.Warn().Str("flow", req.Flow).Msg("⚠️ Model returned no output")
			return nil, emptyResponse(req.Flow, errors.New("model returned no output"))
		}
		return res.body, nil
	}
}

func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeOutput unmarshals the JSON object in body into T. String values are
// never rewritten, only a fence around the whole answer is dropped.
func decodeOutput[T any](flow string, body []byte) (*T, error) {
	jsonStr := extractJSON(string(body))
	if strings.TrimSpace(jsonStr) == "null" {
		return nil, emptyResponse(flow, errors.New("model returned null"))
	}

	var out T
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return nil, emptyResponse(flow, fmt.Errorf("failed to unmarshal model output: %w", err))
	}
	return &out, nil
}

// extractJSON returns the JSON document in a model answer. A body that is
// already valid JSON is returned as is. Otherwise one surrounding markdown
// fence is removed, and as a last resort the outermost object is taken.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if json.Valid([]byte(text)) {
		return text
	}

	unfenced := strings.TrimPrefix(text, "```json")
	unfenced = strings.TrimPrefix(unfenced, "```")
	unfenced = strings.TrimSpace(strings.TrimSuffix(unfenced, "```"))
	if json.Valid([]byte(unfenced)) {
		return unfenced
	}

	start := strings.Index(unfenced, "{")
	end := strings.LastIndex(unfenced, "}")
	if start != -1 && end > start {
		return unfenced[start : end+1]
	}

	return unfenced
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
