package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/repositories"
)

var ErrSearchDisabled = errors.New("resume search is disabled")

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 20
)

type LibraryService interface {
	SaveResume(ctx context.Context, req models.SaveResumeRequest) (*models.StoredResume, error)
	ListResumes() ([]models.StoredResume, error)
	GetResume(id uuid.UUID) (*models.StoredResume, error)
	SetPrimary(id uuid.UUID) (*models.StoredResume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	SearchResumes(ctx context.Context, jobDescription string, limit int) ([]models.ResumeMatch, error)
}

type libraryService struct {
	resumeRepo repositories.ResumeRepository
	storage    StorageService
	parser     DocumentParserService
	embedder   Embedder
	index      ResumeIndex
	queue      IndexQueue
}

// NewLibraryService wires the resume library. index, embedder and queue may
// be nil, in which case resumes are stored without being indexed.
func NewLibraryService(
	resumeRepo repositories.ResumeRepository,
	storage StorageService,
	parser DocumentParserService,
	embedder Embedder,
	index ResumeIndex,
	queue IndexQueue,
) LibraryService {
	return &libraryService{
		resumeRepo: resumeRepo,
		storage:    storage,
		parser:     parser,
		embedder:   embedder,
		index:      index,
		queue:      queue,
	}
}

func (s *libraryService) indexing() bool {
	return s.index != nil && s.embedder != nil
}

func (s *libraryService) SaveResume(ctx context.Context, req models.SaveResumeRequest) (*models.StoredResume, error) {
	doc, err := ValidateResumeDocument(req.ResumeDataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: resumeDataUri: %v", ErrInvalidInput, err)
	}
	if req.Analysis == nil {
		return nil, fmt.Errorf("%w: analysis is required", ErrInvalidInput)
	}

	fileName := strings.TrimSpace(filepath.Base(req.FileName))
	if fileName == "" || fileName == "." {
		fileName = "resume" + resumeExtensions[doc.MIMEType]
	}

	storedName, filePath, err := s.storage.SaveFile(doc.Data, doc.MIMEType, "resume")
	if err != nil {
		return nil, fmt.Errorf("failed to store resume file: %w", err)
	}

	text, err := s.parser.ExtractText(doc.MIMEType, doc.Data)
	if err != nil {
		logger.Warn().Err(err).Str("file", fileName).Msg("⚠️ Could not extract resume text, storing without it")
	}

	status := models.IndexQueued
	if !s.indexing() {
		status = models.IndexDisabled
	}

	resume := &models.StoredResume{
		ID:          uuid.New(),
		FileName:    fileName,
		MIMEType:    doc.MIMEType,
		StoredName:  storedName,
		FilePath:    filePath,
		Text:        text,
		Analysis:    datatypes.NewJSONType(*req.Analysis),
		IndexStatus: status,
	}

	if err := s.resumeRepo.Create(resume); err != nil {
		if delErr := s.storage.DeleteFile(storedName); delErr != nil {
			logger.Warn().Err(delErr).Str("file", storedName).Msg("⚠️ Failed to clean up resume file")
		}
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	logger.Info().Str("resume_id", resume.ID.String()).Str("file", fileName).Bool("primary", resume.IsPrimary).Msg("💾 Resume saved")

	if status == models.IndexQueued && s.queue != nil {
		s.queue.EnqueueJob(resume.ID)
	}

	return resume, nil
}

func (s *libraryService) ListResumes() ([]models.StoredResume, error) {
	return s.resumeRepo.List()
}

func (s *libraryService) GetResume(id uuid.UUID) (*models.StoredResume, error) {
	return s.resumeRepo.FindByID(id)
}

func (s *libraryService) SetPrimary(id uuid.UUID) (*models.StoredResume, error) {
	if err := s.resumeRepo.SetPrimary(id); err != nil {
		return nil, err
	}
	return s.resumeRepo.FindByID(id)
}

// DeleteResume removes the record first. Leftover files and vectors are
// logged rather than failing the call.
func (s *libraryService) DeleteResume(ctx context.Context, id uuid.UUID) error {
	resume, err := s.resumeRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.resumeRepo.Delete(id); err != nil {
		return err
	}

	if resume.StoredName != "" {
		if err := s.storage.DeleteFile(resume.StoredName); err != nil {
			logger.Warn().Err(err).Str("resume_id", id.String()).Msg("⚠️ Failed to delete resume file")
		}
	}

	if s.index != nil {
		if err := s.index.DeleteResume(ctx, id.String()); err != nil {
			logger.Warn().Err(err).Str("resume_id", id.String()).Msg("⚠️ Failed to delete resume vectors")
		}
	}

	logger.Info().Str("resume_id", id.String()).Msg("🗑️ Resume deleted")
	return nil
}

// SearchResumes ranks stored resumes by similarity to a job description.
// Hits whose record no longer exists are skipped.
func (s *libraryService) SearchResumes(ctx context.Context, jobDescription string, limit int) ([]models.ResumeMatch, error) {
	if !s.indexing() {
		return nil, ErrSearchDisabled
	}
	if isBlank(jobDescription) {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	hits, err := s.index.SearchSimilar(ctx, embedding, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []models.ResumeMatch{}, nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.ResumeID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	resumes, err := s.resumeRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.StoredResume, len(resumes))
	for _, r := range resumes {
		byID[r.ID.String()] = r
	}

	matches := make([]models.ResumeMatch, 0, len(hits))
	for _, hit := range hits {
		resume, ok := byID[hit.ResumeID]
		if !ok {
			continue
		}
		matches = append(matches, models.ResumeMatch{Resume: resume, Score: hit.Score})
	}

	return matches, nil
}
