package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/repositories"
)

type IndexerService interface {
	IndexResume(ctx context.Context, resumeID uuid.UUID) error
}

type indexerService struct {
	resumeRepo repositories.ResumeRepository
	embedder   Embedder
	index      ResumeIndex
}

func NewIndexerService(resumeRepo repositories.ResumeRepository, embedder Embedder, index ResumeIndex) IndexerService {
	return &indexerService{
		resumeRepo: resumeRepo,
		embedder:   embedder,
		index:      index,
	}
}

// IndexResume embeds a stored resume and writes it to the vector index.
// Any failure is recorded on the resume before it is returned.
func (s *indexerService) IndexResume(ctx context.Context, resumeID uuid.UUID) error {
	if err := s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	resume, err := s.resumeRepo.FindByID(resumeID)
	if err != nil {
		s.fail(resumeID, err)
		return fmt.Errorf("failed to get resume: %w", err)
	}

	text := ResumeEmbeddingText(resume)
	logger.Debug().Str("resume_id", resumeID.String()).Int("chars", len(text)).Msg("🔢 Embedding resume")

	embedding, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		s.fail(resumeID, err)
		return fmt.Errorf("failed to embed resume: %w", err)
	}

	if err := s.index.UpsertResume(ctx, resumeID.String(), resume.FileName, embedding); err != nil {
		s.fail(resumeID, err)
		return fmt.Errorf("failed to index resume: %w", err)
	}

	if err := s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexCompleted); err != nil {
		return fmt.Errorf("failed to save index status: %w", err)
	}

	logger.Info().Str("resume_id", resumeID.String()).Msg("✅ Resume indexed")
	return nil
}

func (s *indexerService) fail(resumeID uuid.UUID, cause error) {
	if err := s.resumeRepo.UpdateIndexError(resumeID, cause.Error()); err != nil {
		logger.Error().Err(err).Str("resume_id", resumeID.String()).Msg("⚠️ Failed to record index error")
	}
}

// ResumeEmbeddingText is the text embedded for a stored resume: the flattened
// analysis followed by whatever text could be extracted from the file.
func ResumeEmbeddingText(resume *models.StoredResume) string {
	profile := resume.Analysis.Data().Profile()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills: %s\n", profile.ResumeSkills)
	fmt.Fprintf(&sb, "Experience: %s\n", profile.ResumeExperience)
	fmt.Fprintf(&sb, "Education: %s\n", profile.ResumeEducation)
	if resume.Text != "" {
		sb.WriteString("\n")
		sb.WriteString(resume.Text)
	}
	return sb.String()
}
