package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type ResumeAnalysisRequest struct {
	ResumeDataURI string `json:"resumeDataUri"`
}

type Experience struct {
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

type EducationRecord struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// Education is one education entry of an analyzed resume. The model may
// answer with either a structured record or a plain line of text, and the
// entry is encoded back in whichever form it was decoded from.
type Education struct {
	Text   string
	Record *EducationRecord
}

func EducationText(text string) Education {
	return Education{Text: text}
}

func EducationFromRecord(degree, institution string) Education {
	return Education{Record: &EducationRecord{Degree: degree, Institution: institution}}
}

func (e Education) IsRecord() bool {
	return e.Record != nil
}

// String renders the entry the way the job flows expect it.
func (e Education) String() string {
	if e.Record == nil {
		return e.Text
	}
	return fmt.Sprintf("%s from %s", e.Record.Degree, e.Record.Institution)
}

func (e Education) MarshalJSON() ([]byte, error) {
	if e.Record != nil {
		return json.Marshal(e.Record)
	}
	return json.Marshal(e.Text)
}

func (e *Education) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty education entry")
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode education text: %w", err)
		}
		*e = Education{Text: text}
		return nil
	case '{':
		var record EducationRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to decode education record: %w", err)
		}
		*e = Education{Record: &record}
		return nil
	}

	return fmt.Errorf("education entry must be a string or an object, got %s", data)
}

type ResumeAnalysis struct {
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	ATSScore   int          `json:"atsScore"`
}

// ResumeProfile is a resume analysis flattened into the delimited strings
// consumed by the job matcher and job recommender.
type ResumeProfile struct {
	ResumeSkills     string `json:"resumeSkills"`
	ResumeExperience string `json:"resumeExperience"`
	ResumeEducation  string `json:"resumeEducation"`
}

func (p ResumeProfile) IsBlank() bool {
	return strings.TrimSpace(p.ResumeSkills) == "" &&
		strings.TrimSpace(p.ResumeExperience) == "" &&
		strings.TrimSpace(p.ResumeEducation) == ""
}

func (a ResumeAnalysis) Profile() ResumeProfile {
	experience := make([]string, 0, len(a.Experience))
	for _, exp := range a.Experience {
		experience = append(experience, fmt.Sprintf("%s at %s (%s)", exp.JobTitle, exp.Company, exp.Duration))
	}

	education := make([]string, 0, len(a.Education))
	for _, edu := range a.Education {
		education = append(education, edu.String())
	}

	return ResumeProfile{
		ResumeSkills:     strings.Join(a.Skills, ", "),
		ResumeExperience: strings.Join(experience, "; "),
		ResumeEducation:  strings.Join(education, "; "),
	}
}
