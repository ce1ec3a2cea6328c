package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"google.golang.org/genai"

	"alfredoptarigan/karmamatch/internal/logger"
)

type InlineMedia struct {
	MIMEType string
	Data     []byte
}

// GenerationRequest is one structured-output call to the model. Media, when
// set, is sent after the prompt text as an inline part.
type GenerationRequest struct {
	Flow        string
	Prompt      string
	Media       *InlineMedia
	Schema      *genai.Schema
	Safety      []*genai.SafetySetting
	Temperature float32
}

// Generator returns the raw JSON text the model produced for a request.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]byte, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

const maxEmbeddingChars = 40000

type GeminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(ctx context.Context, apiKey, model, embedModel string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		client:     client,
		modelName:  model,
		embedModel: embedModel,
	}, nil
}

func (g *GeminiService) Generate(ctx context.Context, req GenerationRequest) ([]byte, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Media != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Media.Data, req.Media.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
		SafetySettings:   req.Safety,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		logger.Error().Err(err).Str("flow", req.Flow).Msg("❌ Gemini API error")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		logger.Warn().Str("flow", req.Flow).Msg("❌ Gemini API returned nil response")
		return nil, nil
	}

	text := resp.Text()
	if text == "" {
		event := logger.Warn().Str("flow", req.Flow)
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			event = event.Str("block_reason", string(resp.PromptFeedback.BlockReason))
		}
		if len(resp.Candidates) > 0 {
			event = event.Str("finish_reason", string(resp.Candidates[0].FinishReason))
		}
		event.Msg("❌ No text content in response")
		return nil, nil
	}

	logger.Debug().Str("flow", req.Flow).Int("response_chars", len(text)).Msg("📊 Gemini response received")

	return []byte(text), nil
}

func (g *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateText(text, maxEmbeddingChars)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// truncateText cuts text to at most limit bytes without splitting a rune.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
