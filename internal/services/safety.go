package services

import "google.golang.org/genai"

func safetySetting(category genai.HarmCategory, threshold genai.HarmBlockThreshold) *genai.SafetySetting {
	return &genai.SafetySetting{Category: category, Threshold: threshold}
}

// careerSafetySettings is the fixed set used by the job and interview flows.
func careerSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		safetySetting(genai.HarmCategoryHateSpeech, genai.HarmBlockThresholdBlockOnlyHigh),
		safetySetting(genai.HarmCategoryDangerousContent, genai.HarmBlockThresholdBlockNone),
		safetySetting(genai.HarmCategoryHarassment, genai.HarmBlockThresholdBlockMediumAndAbove),
		safetySetting(genai.HarmCategorySexuallyExplicit, genai.HarmBlockThresholdBlockLowAndAbove),
	}
}

func resumeSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		safetySetting(genai.HarmCategoryHateSpeech, genai.HarmBlockThresholdBlockMediumAndAbove),
		safetySetting(genai.HarmCategoryDangerousContent, genai.HarmBlockThresholdBlockMediumAndAbove),
		safetySetting(genai.HarmCategoryHarassment, genai.HarmBlockThresholdBlockMediumAndAbove),
		safetySetting(genai.HarmCategorySexuallyExplicit, genai.HarmBlockThresholdBlockMediumAndAbove),
	}
}
