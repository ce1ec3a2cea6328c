package services

import "google.golang.org/genai"

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func stringListSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func resumeAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"skills": stringListSchema("A list of skills extracted from the resume."),
			"experience": {
				Type:        genai.TypeArray,
				Description: "A list of work experiences extracted from the resume.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"jobTitle": stringSchema("The job title."),
						"company":  stringSchema("The company name."),
						"duration": stringSchema("The duration of employment."),
					},
					Required: []string{"jobTitle", "company", "duration"},
				},
			},
			"education": {
				Type:        genai.TypeArray,
				Description: "A list of education entries, either as objects with degree and institution or as plain text lines.",
				Items: &genai.Schema{
					AnyOf: []*genai.Schema{
						{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"degree":      stringSchema("The degree obtained."),
								"institution": stringSchema("The name of the institution."),
							},
							Required: []string{"degree", "institution"},
						},
						{Type: genai.TypeString},
					},
				},
			},
			"atsScore": {
				Type:        genai.TypeInteger,
				Description: "An ATS compatibility score for the resume, from 0 to 100.",
				Minimum:     genai.Ptr[float64](0),
				Maximum:     genai.Ptr[float64](100),
			},
		},
		Required: []string{"skills", "experience", "education", "atsScore"},
	}
}

func jobMatchSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"jobRanking":  stringSchema("A ranking of the job posting based on its relevance to the resume, with an explanation."),
			"fitCategory": stringSchema(`The fit category of the job posting, either "Best Fit" or "Stretch Role".`),
		},
		Required: []string{"jobRanking", "fitCategory"},
	}
}

func jobRecommendationsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type:        genai.TypeArray,
				Description: "A list of 3-5 recommended jobs.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":             stringSchema("A unique identifier for the recommended job, e.g. recJob1."),
						"title":          stringSchema("The title of the recommended job role."),
						"company":        stringSchema("A plausible company or type of company for this role."),
						"reasoning":      stringSchema("A brief explanation of why this job is a good fit."),
						"relevanceScore": stringSchema(`An optional relevance indicator, e.g. "Strong Match".`),
					},
					Required: []string{"id", "title", "company", "reasoning"},
				},
			},
		},
		Required: []string{"recommendations"},
	}
}

func interviewPrepSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"preparations": {
				Type:        genai.TypeArray,
				Description: "A list of interview questions with sample answers.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question":     stringSchema("The interview question."),
						"sampleAnswer": stringSchema("A sample answer to the question."),
						"category":     stringSchema("The category of the question, e.g. Technical, Behavioral."),
					},
					Required: []string{"question", "sampleAnswer"},
				},
			},
		},
		Required: []string{"preparations"},
	}
}

func interviewCoachSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"generatedQuestions": stringListSchema("A list of generated interview questions."),
			"answerFeedback":     stringSchema("Constructive feedback on the user's answer."),
			"generalTips":        stringListSchema("A list of general interview tips."),
		},
	}
}
