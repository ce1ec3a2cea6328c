package models

type InterviewPrepRequest struct {
	Skills     []string `json:"skills"`
	JobContext string   `json:"jobContext,omitempty"`
}

type InterviewPrepItem struct {
	Question     string `json:"question"`
	SampleAnswer string `json:"sampleAnswer"`
	Category     string `json:"category,omitempty"`
}

type InterviewPrepResult struct {
	Preparations []InterviewPrepItem `json:"preparations"`
}

type CoachAction string

const (
	CoachActionGenerateQuestions CoachAction = "generateQuestions"
	CoachActionFeedbackOnAnswer  CoachAction = "getFeedbackOnAnswer"
)

func (a CoachAction) Valid() bool {
	return a == CoachActionGenerateQuestions || a == CoachActionFeedbackOnAnswer
}

type QuestionCategory string

const (
	QuestionCategoryBehavioral  QuestionCategory = "behavioral"
	QuestionCategoryTechnical   QuestionCategory = "technical"
	QuestionCategorySituational QuestionCategory = "situational"
	QuestionCategoryGeneral     QuestionCategory = "general"
)

func (c QuestionCategory) Valid() bool {
	switch c {
	case QuestionCategoryBehavioral, QuestionCategoryTechnical, QuestionCategorySituational, QuestionCategoryGeneral:
		return true
	}
	return false
}

type InterviewCoachRequest struct {
	Action            CoachAction      `json:"action"`
	JobDescription    string           `json:"jobDescription,omitempty"`
	QuestionCategory  QuestionCategory `json:"questionCategory,omitempty"`
	InterviewQuestion string           `json:"interviewQuestion,omitempty"`
	UserAnswer        string           `json:"userAnswer,omitempty"`
}

// InterviewCoachResult always carries GeneralTips, empty when the model gave none.
type InterviewCoachResult struct {
	GeneratedQuestions []string `json:"generatedQuestions,omitempty"`
	AnswerFeedback     string   `json:"answerFeedback,omitempty"`
	GeneralTips        []string `json:"generalTips"`
}
