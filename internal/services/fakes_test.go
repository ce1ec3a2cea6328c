package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/repositories"
)

type fakeGenerator struct {
	mu       sync.Mutex
	body     []byte
	err      error
	block    bool
	requests []GenerationRequest
}

func newFakeGenerator(body string) *fakeGenerator {
	if body == "" {
		return &fakeGenerator{}
	}
	return &fakeGenerator{body: []byte(body)}
}

func (f *fakeGenerator) Generate(ctx context.Context, req GenerationRequest) ([]byte, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	body, err, block := f.body, f.err, f.block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return body, err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeGenerator) lastRequest() GenerationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type fakeEmbedder struct {
	mu    sync.Mutex
	err   error
	texts []string
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeIndex struct {
	mu      sync.Mutex
	points  map[string]string
	hits    []SearchResult
	err     error
	deleted []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{points: map[string]string{}}
}

func (f *fakeIndex) InitCollection(context.Context) error { return nil }

func (f *fakeIndex) UpsertResume(_ context.Context, resumeID, fileName string, _ []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.points[resumeID] = fileName
	return nil
}

func (f *fakeIndex) SearchSimilar(context.Context, []float32, int) ([]SearchResult, error) {
	return f.hits, f.err
}

func (f *fakeIndex) DeleteResume(_ context.Context, resumeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, resumeID)
	delete(f.points, resumeID)
	return nil
}

type fakeQueue struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (f *fakeQueue) EnqueueJob(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
}

type fakeParser struct {
	text string
	err  error
}

func (f fakeParser) ExtractText(string, []byte) (string, error) {
	return f.text, f.err
}

// memResumeRepo is an in-memory ResumeRepository.
type memResumeRepo struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*models.StoredResume
	order   []uuid.UUID
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{resumes: map[uuid.UUID]*models.StoredResume{}}
}

var _ repositories.ResumeRepository = (*memResumeRepo)(nil)

func (m *memResumeRepo) Create(resume *models.StoredResume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.resumes) == 0 {
		resume.IsPrimary = true
	}
	copied := *resume
	m.resumes[resume.ID] = &copied
	m.order = append(m.order, resume.ID)
	return nil
}

func (m *memResumeRepo) get(id uuid.UUID) (*models.StoredResume, error) {
	r, ok := m.resumes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r, nil
}

func (m *memResumeRepo) FindByID(id uuid.UUID) (*models.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.get(id)
	if err != nil {
		return nil, err
	}
	copied := *r
	return &copied, nil
}

func (m *memResumeRepo) FindByIDs(ids []uuid.UUID) ([]models.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StoredResume
	for _, id := range ids {
		if r, ok := m.resumes[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memResumeRepo) List() ([]models.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StoredResume
	for _, id := range m.order {
		if r, ok := m.resumes[id]; ok {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsPrimary && !out[j].IsPrimary })
	return out, nil
}

func (m *memResumeRepo) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.resumes)), nil
}

func (m *memResumeRepo) FindPrimary() (*models.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resumes {
		if r.IsPrimary {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memResumeRepo) SetPrimary(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.get(id); err != nil {
		return err
	}
	for rid, r := range m.resumes {
		r.IsPrimary = rid == id
	}
	return nil
}

func (m *memResumeRepo) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.get(id)
	if err != nil {
		return err
	}
	delete(m.resumes, id)
	if r.IsPrimary {
		for i := len(m.order) - 1; i >= 0; i-- {
			if next, ok := m.resumes[m.order[i]]; ok {
				next.IsPrimary = true
				break
			}
		}
	}
	return nil
}

func (m *memResumeRepo) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.get(id)
	if err != nil {
		return err
	}
	r.IndexStatus = status
	if status == models.IndexCompleted {
		r.IndexError = nil
	}
	return nil
}

func (m *memResumeRepo) UpdateIndexError(id uuid.UUID, errorMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.get(id)
	if err != nil {
		return err
	}
	r.IndexStatus = models.IndexFailed
	r.IndexError = &errorMsg
	return nil
}

func (m *memResumeRepo) FindPendingIndexing(limit int) ([]models.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StoredResume
	for _, id := range m.order {
		if r, ok := m.resumes[id]; ok && r.IndexStatus == models.IndexQueued && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memResumeRepo) RequeueAll() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resumes {
		r.IndexStatus = models.IndexQueued
		r.IndexError = nil
	}
	return int64(len(m.resumes)), nil
}

func (m *memResumeRepo) status(id uuid.UUID) models.IndexStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.resumes[id]; ok {
		return r.IndexStatus
	}
	return ""
}

var errBoom = errors.New("boom")
