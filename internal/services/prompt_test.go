package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/karmamatch/internal/models"
)

const (
	generateBlockMarker = "Please generate 5 relevant interview questions."
	feedbackBlockMarker = "Please provide constructive feedback on their answer."
)

func TestBuildInterviewCoachPromptGenerate(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildInterviewCoachPrompt(models.InterviewCoachRequest{
		Action:            models.CoachActionGenerateQuestions,
		QuestionCategory:  models.QuestionCategoryBehavioral,
		InterviewQuestion: "ignored question",
		UserAnswer:        "ignored answer",
	})

	assert.Contains(t, prompt, generateBlockMarker)
	assert.Contains(t, prompt, "Focus on behavioral questions.")
	assert.NotContains(t, prompt, feedbackBlockMarker)
	assert.NotContains(t, prompt, "ignored question")
	assert.NotContains(t, prompt, "Considering the following job description")
}

func TestBuildInterviewCoachPromptGenerateWithoutCategory(t *testing.T) {
	prompt := NewPromptBuilder().BuildInterviewCoachPrompt(models.InterviewCoachRequest{
		Action: models.CoachActionGenerateQuestions,
	})

	assert.Contains(t, prompt, "Provide a mix of general questions.")
	assert.NotContains(t, prompt, "Focus on")
}

func TestBuildInterviewCoachPromptFeedback(t *testing.T) {
	prompt := NewPromptBuilder().BuildInterviewCoachPrompt(models.InterviewCoachRequest{
		Action:            models.CoachActionFeedbackOnAnswer,
		JobDescription:    "Senior Go engineer",
		QuestionCategory:  models.QuestionCategoryTechnical,
		InterviewQuestion: "Why Go?",
		UserAnswer:        "Because of goroutines.",
	})

	assert.Contains(t, prompt, feedbackBlockMarker)
	assert.Contains(t, prompt, `The user was asked the following question: "Why Go?"`)
	assert.Contains(t, prompt, "---\nBecause of goroutines.\n---")
	assert.Contains(t, prompt, "Considering the following job description:\n---\nSenior Go engineer\n---")
	assert.NotContains(t, prompt, generateBlockMarker)
	assert.NotContains(t, prompt, "Focus on technical")
}

func TestBuildInterviewPrepPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	general := pb.BuildInterviewPrepPrompt(models.InterviewPrepRequest{Skills: []string{"Go", "SQL"}})
	assert.Contains(t, general, "Given the following skills:\n- Go\n- SQL\n")
	assert.Contains(t, general, "And considering a general professional role related to these skills.")
	assert.NotContains(t, general, "And considering the job context:")
	assert.Contains(t, general, "Generate 5-7")

	withContext := pb.BuildInterviewPrepPrompt(models.InterviewPrepRequest{Skills: []string{"Go"}, JobContext: "Fintech backend"})
	assert.Contains(t, withContext, "And considering the job context: Fintech backend")
	assert.NotContains(t, withContext, "general professional role")
}

func TestBuildJobPrompts(t *testing.T) {
	pb := NewPromptBuilder()
	profile := models.ResumeProfile{
		ResumeSkills:     "Go, Kubernetes",
		ResumeExperience: "SRE at Acme (2 years)",
		ResumeEducation:  "BSc from MIT",
	}

	match := pb.BuildJobMatchPrompt(models.JobMatchRequest{ResumeProfile: profile, JobDescription: "Build APIs"})
	for _, want := range []string{"Resume Skills: Go, Kubernetes", "Resume Experience: SRE at Acme (2 years)", "Resume Education: BSc from MIT", "Job Description: Build APIs"} {
		assert.Contains(t, match, want)
	}

	recommend := pb.BuildJobRecommendationPrompt(models.JobRecommendationRequest{ResumeProfile: profile})
	assert.Contains(t, recommend, "Resume Skills: Go, Kubernetes")
	assert.Contains(t, recommend, `"85% Relevance"`)
	assert.NotContains(t, recommend, "Job Description:")
	assert.False(t, strings.Contains(recommend, "%!"), "format verbs leaked into prompt")
}

func TestBuildResumeAnalysisPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildResumeAnalysisPrompt()
	assert.Contains(t, prompt, "ATS Score")
	assert.True(t, strings.HasSuffix(prompt, "Resume:\n"))
}
