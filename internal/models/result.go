package models

// MatchJobPayload is the body of POST /jobs/match. When Analysis is set it
// is flattened and takes the place of the resume fields.
type MatchJobPayload struct {
	JobMatchRequest
	Analysis *ResumeAnalysis `json:"analysis,omitempty"`
}

type RecommendJobsPayload struct {
	JobRecommendationRequest
	Analysis *ResumeAnalysis `json:"analysis,omitempty"`
}

type SaveResumeRequest struct {
	FileName      string          `json:"fileName"`
	ResumeDataURI string          `json:"resumeDataUri"`
	Analysis      *ResumeAnalysis `json:"analysis"`
}

type ResumeMatch struct {
	Resume StoredResume `json:"resume"`
	Score  float32      `json:"score"`
}

type CreateApplicationRequest struct {
	JobTitle     string `json:"jobTitle"`
	Company      string `json:"company"`
	Status       string `json:"status"`
	DateApplied  string `json:"dateApplied"`
	ResumeIDUsed string `json:"resumeIdUsed"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type DashboardResponse struct {
	ResumeCount        int64  `json:"resumeCount"`
	PrimaryResume      string `json:"primaryResume,omitempty"`
	ActiveApplications int64  `json:"activeApplications"`
	TotalApplications  int64  `json:"totalApplications"`
}
