package models

type JobMatchRequest struct {
	ResumeProfile
	JobDescription string `json:"jobDescription"`
}

// JobMatchResult holds the model's ranking text and fit category. The
// category is free text: "Best Fit" and "Stretch Role" are asked for, not
// enforced.
type JobMatchResult struct {
	JobRanking  string `json:"jobRanking"`
	FitCategory string `json:"fitCategory"`
}

type JobRecommendationRequest struct {
	ResumeProfile
}

type RecommendedJob struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Reasoning      string `json:"reasoning"`
	RelevanceScore string `json:"relevanceScore,omitempty"`
}

type JobRecommendations struct {
	Recommendations []RecommendedJob `json:"recommendations"`
}
