package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/karmamatch/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the prompt for resume extraction. The
// resume document itself is attached after this text as an inline part.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt() string {
	return `You are an expert resume analyzer. Extract the following information from the resume.

Skills: A list of skills mentioned in the resume.
Experience: A list of work experiences, including job title, company, and duration.
Education: A list of degrees and institutions.
ATS Score: An estimated ATS compatibility score as a percentage (e.g., 85 for 85%). This score should reflect how well the resume is structured for automated parsing by Applicant Tracking Systems. Consider factors like clear section headings, standard formatting, keyword relevance (general good practices), and avoidance of complex layouts or images that might hinder parsing.

Resume:
`
}

func (pb *PromptBuilder) BuildJobMatchPrompt(req models.JobMatchRequest) string {
	return fmt.Sprintf(`You are an AI job matching expert. Use the skills, experience, and education from the resume to rank the job posting based on relevance.

Resume Skills: %s
Resume Experience: %s
Resume Education: %s

Job Description: %s

Consider the resume and job description and provide a ranking of the job and a fit category.
The fit category should be either "Best Fit" or "Stretch Role".`,
		req.ResumeSkills, req.ResumeExperience, req.ResumeEducation, req.JobDescription)
}

func (pb *PromptBuilder) BuildJobRecommendationPrompt(req models.JobRecommendationRequest) string {
	return fmt.Sprintf(`You are an expert career advisor AI. Based on the following resume details, recommend 3-5 job roles that would be a good fit for the candidate.

Resume Skills: %s
Resume Experience: %s
Resume Education: %s

For each recommended job, provide:
1.  A unique ID (e.g., "recJob1", "recJob2").
2.  The job title.
3.  A plausible company name (e.g., "Innovatech Solutions", "NextGen Corp", "Global Dynamics Inc."). If unknown, use a generic but realistic type like "Growing SaaS Company" or "Established Financial Firm".
4.  A concise (1-2 sentences) reasoning explaining why this job is a good match for the candidate's profile or a brief description of typical responsibilities for such a role.
5.  An optional relevance score or category (e.g., "Strong Match", "Good Fit", "Potential Growth Area", "85%% Relevance").

Structure your output according to the 'recommendations' array in the output schema.`,
		req.ResumeSkills, req.ResumeExperience, req.ResumeEducation)
}

// BuildInterviewPrepPrompt lists every skill on its own line. Without a job
// context the model is pointed at a general role for those skills.
func (pb *PromptBuilder) BuildInterviewPrepPrompt(req models.InterviewPrepRequest) string {
	var sb strings.Builder

	sb.WriteString("You are an expert AI Interview Coach.\nGiven the following skills:\n")
	for _, skill := range req.Skills {
		sb.WriteString("- ")
		sb.WriteString(skill)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if strings.TrimSpace(req.JobContext) != "" {
		sb.WriteString("And considering the job context: ")
		sb.WriteString(req.JobContext)
		sb.WriteString("\n")
	} else {
		sb.WriteString("And considering a general professional role related to these skills.\n")
	}

	sb.WriteString(`
Generate 5-7 common and insightful interview questions that are relevant to these skills and the provided job context (if any).
For each question, provide:
1.  The question itself.
2.  A concise, strong sample answer. The answer should be well-structured, positive, and highlight relevant aspects based on the skills. Aim for answers that are 3-5 sentences long.
3.  Optionally, a category for the question (e.g., Behavioral, Technical - [Specific Skill], Problem-solving, Situational).

Focus on creating realistic and helpful preparation material. Ensure the sample answers are practical and actionable.
Structure your response according to the 'preparations' array in the output schema.`)

	return sb.String()
}

// BuildInterviewCoachPrompt includes the job description block only when one
// is given, and exactly one instruction block chosen by the action.
func (pb *PromptBuilder) BuildInterviewCoachPrompt(req models.InterviewCoachRequest) string {
	var sb strings.Builder

	sb.WriteString("You are an expert AI Interview Coach. Your goal is to help users prepare for job interviews.\n\n")

	if strings.TrimSpace(req.JobDescription) != "" {
		sb.WriteString("Considering the following job description:\n---\n")
		sb.WriteString(req.JobDescription)
		sb.WriteString("\n---\n\n")
	}

	switch req.Action {
	case models.CoachActionGenerateQuestions:
		sb.WriteString("Please generate 5 relevant interview questions.\n")
		if req.QuestionCategory != "" {
			fmt.Fprintf(&sb, "Focus on %s questions.\n", req.QuestionCategory)
		} else {
			sb.WriteString("Provide a mix of general questions.\n")
		}
		sb.WriteString("Also, provide 2-3 general interview tips.\n")
		sb.WriteString(`The output should be a JSON object with "generatedQuestions" (an array of strings) and "generalTips" (an array of strings).`)
	case models.CoachActionFeedbackOnAnswer:
		fmt.Fprintf(&sb, "The user was asked the following question: \"%s\"\n", req.InterviewQuestion)
		sb.WriteString("And provided this answer:\n---\n")
		sb.WriteString(req.UserAnswer)
		sb.WriteString("\n---\n")
		sb.WriteString("Please provide constructive feedback on their answer. Consider clarity, conciseness, relevance to the question, and the STAR method if applicable.\n")
		sb.WriteString("Also, provide 2-3 general interview tips relevant to answering questions effectively.\n")
		sb.WriteString(`The output should be a JSON object with "answerFeedback" (a string) and "generalTips" (an array of strings).`)
	}

	return sb.String()
}
