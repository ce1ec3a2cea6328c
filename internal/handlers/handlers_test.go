package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/karmamatch/internal/models"
	"alfredoptarigan/karmamatch/internal/repositories"
	"alfredoptarigan/karmamatch/internal/services"
)

type stubFlows struct {
	err          error
	analyzeReq   models.ResumeAnalysisRequest
	matchReq     models.JobMatchRequest
	recommendReq models.JobRecommendationRequest
	calls        int
}

func (s *stubFlows) AnalyzeResume(_ context.Context, req models.ResumeAnalysisRequest) (*models.ResumeAnalysis, error) {
	s.calls++
	s.analyzeReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ResumeAnalysis{Skills: []string{"Go"}, Experience: []models.Experience{}, Education: []models.Education{}, ATSScore: 80}, nil
}

func (s *stubFlows) MatchJob(_ context.Context, req models.JobMatchRequest) (*models.JobMatchResult, error) {
	s.calls++
	s.matchReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.JobMatchResult{JobRanking: "9/10", FitCategory: "Best Fit"}, nil
}

func (s *stubFlows) RecommendJobs(_ context.Context, req models.JobRecommendationRequest) (*models.JobRecommendations, error) {
	s.calls++
	s.recommendReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.JobRecommendations{Recommendations: []models.RecommendedJob{}}, nil
}

func (s *stubFlows) GenerateInterviewPrep(_ context.Context, _ models.InterviewPrepRequest) (*models.InterviewPrepResult, error) {
	s.calls++
	return &models.InterviewPrepResult{Preparations: []models.InterviewPrepItem{}}, s.err
}

func (s *stubFlows) CoachInterview(_ context.Context, _ models.InterviewCoachRequest) (*models.InterviewCoachResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.InterviewCoachResult{GeneralTips: []string{}}, nil
}

type memApplications struct {
	mu   sync.Mutex
	apps map[uuid.UUID]models.JobApplication
}

func newMemApplications() *memApplications {
	return &memApplications{apps: map[uuid.UUID]models.JobApplication{}}
}

func (m *memApplications) Create(app *models.JobApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps[app.ID] = *app
	return nil
}

func (m *memApplications) FindByID(id uuid.UUID) (*models.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &app, nil
}

func (m *memApplications) List() ([]models.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.JobApplication, 0, len(m.apps))
	for _, app := range m.apps {
		out = append(out, app)
	}
	return out, nil
}

func (m *memApplications) UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return repositories.ErrNotFound
	}
	app.Status = status
	m.apps[id] = app
	return nil
}

func (m *memApplications) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.apps, id)
	return nil
}

func (m *memApplications) CountByStatus(statuses ...models.ApplicationStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, app := range m.apps {
		if len(statuses) == 0 {
			n++
			continue
		}
		for _, s := range statuses {
			if app.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func newTestApp(flows *FlowHandler, apps *ApplicationHandler) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/api/v1"), flows, nil, apps, nil)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

const longJobDescription = "We are hiring a backend engineer to build Go services on Kubernetes."

func TestMatchJobRequiresLongDescription(t *testing.T) {
	flows := &stubFlows{}
	app := newTestApp(NewFlowHandler(flows, services.MaxResumeBytes), nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/jobs/match", map[string]any{
		"resumeSkills":   "Go",
		"jobDescription": "Too short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_input", body["kind"])
	assert.Zero(t, flows.calls)
}

func TestMatchJobFlattensAnalysis(t *testing.T) {
	flows := &stubFlows{}
	app := newTestApp(NewFlowHandler(flows, services.MaxResumeBytes), nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/jobs/match", map[string]any{
		"jobDescription": longJobDescription,
		"analysis": map[string]any{
			"skills":     []string{"Go", "SQL"},
			"experience": []map[string]string{{"jobTitle": "SRE", "company": "Acme", "duration": "1 year"}},
			"education":  []any{"BSc", map[string]string{"degree": "MSc", "institution": "KTH"}},
			"atsScore":   70,
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Best Fit", body["fitCategory"])
	assert.Equal(t, "Go, SQL", flows.matchReq.ResumeSkills)
	assert.Equal(t, "SRE at Acme (1 year)", flows.matchReq.ResumeExperience)
	assert.Equal(t, "BSc; MSc from KTH", flows.matchReq.ResumeEducation)
}

func TestFlowErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"invalid", &services.FlowError{Flow: "f", Kind: services.ErrInvalidInput, Err: errors.New("bad")}, fiber.StatusBadRequest, "invalid_input"},
		{"empty", &services.FlowError{Flow: "f", Kind: services.ErrEmptyResponse}, fiber.StatusBadGateway, "empty_response"},
		{"upstream", &services.FlowError{Flow: "f", Kind: services.ErrUpstream, Err: errors.New("quota exceeded")}, fiber.StatusBadGateway, "upstream_error"},
		{"timeout", &services.FlowError{Flow: "f", Kind: services.ErrUpstream, Err: context.DeadlineExceeded}, fiber.StatusGatewayTimeout, "upstream_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(NewFlowHandler(&stubFlows{err: tc.err}, services.MaxResumeBytes), nil)

			resp, body := doJSON(t, app, http.MethodPost, "/api/v1/interview/coach", map[string]any{"action": "generateQuestions"})
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.kind, body["kind"])
			assert.Contains(t, body["error"], tc.err.Error())
		})
	}
}

func TestAnalyzeResumeJSON(t *testing.T) {
	flows := &stubFlows{}
	app := newTestApp(NewFlowHandler(flows, services.MaxResumeBytes), nil)

	uri := services.EncodeDataURI(services.MIMETypePDF, []byte("%PDF-1.4"))
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/resume/analyze", map[string]any{"resumeDataUri": uri})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(80), body["atsScore"])
	assert.Equal(t, uri, flows.analyzeReq.ResumeDataURI)
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeUploadSniffsType(t *testing.T) {
	flows := &stubFlows{}
	app := newTestApp(NewFlowHandler(flows, services.MaxResumeBytes), nil)

	pdf := []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")
	resp, err := app.Test(uploadRequest(t, "cv.pdf", pdf), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, services.EncodeDataURI(services.MIMETypePDF, pdf), flows.analyzeReq.ResumeDataURI)

	resp, err = app.Test(uploadRequest(t, "cv.pdf", []byte("plain text pretending to be a pdf")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, flows.calls)
}

func TestAnalyzeUploadRejectsLargeFiles(t *testing.T) {
	flows := &stubFlows{}
	app := newTestApp(NewFlowHandler(flows, 16), nil)

	resp, err := app.Test(uploadRequest(t, "cv.pdf", []byte("%PDF-1.7 this is longer than sixteen bytes")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, flows.calls)
}

func TestApplicationLifecycle(t *testing.T) {
	repo := newMemApplications()
	app := newTestApp(nil, NewApplicationHandler(repo))

	resp, created := doJSON(t, app, http.MethodPost, "/api/v1/applications", map[string]any{
		"jobTitle":     "Platform Engineer",
		"company":      "Acme",
		"status":       "Applied",
		"dateApplied":  "2026-09-01",
		"resumeIdUsed": uuid.NewString(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := created["id"].(string)

	resp, updated := doJSON(t, app, http.MethodPatch, "/api/v1/applications/"+id+"/status", map[string]any{"status": "Interviewing"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Interviewing", updated["status"])

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/applications/"+id+"/status", map[string]any{"status": "Ghosted"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, list := doJSON(t, app, http.MethodGet, "/api/v1/applications", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), list["count"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/applications/"+id, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/applications/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestCreateApplicationDefaults(t *testing.T) {
	repo := newMemApplications()
	app := newTestApp(nil, NewApplicationHandler(repo))

	resp, created := doJSON(t, app, http.MethodPost, "/api/v1/applications", map[string]any{
		"jobTitle": "SRE",
		"company":  "Initech",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Saved", created["status"])
	assert.NotContains(t, created, "resumeIdUsed")

	dateApplied, err := time.Parse(time.RFC3339, created["dateApplied"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), dateApplied, 48*time.Hour)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/applications", map[string]any{"jobTitle": "SRE"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

type stubResumeRepo struct {
	repositories.ResumeRepository
	count   int64
	primary *models.StoredResume
}

func (s *stubResumeRepo) Count() (int64, error) { return s.count, nil }

func (s *stubResumeRepo) FindPrimary() (*models.StoredResume, error) {
	if s.primary == nil {
		return nil, repositories.ErrNotFound
	}
	return s.primary, nil
}

func TestDashboardSummary(t *testing.T) {
	apps := newMemApplications()
	for _, status := range []models.ApplicationStatus{
		models.ApplicationApplied,
		models.ApplicationInterviewing,
		models.ApplicationRejected,
		models.ApplicationSaved,
	} {
		require.NoError(t, apps.Create(&models.JobApplication{ID: uuid.New(), JobTitle: "Engineer", Company: "Acme", Status: status}))
	}

	resumes := &stubResumeRepo{count: 2, primary: &models.StoredResume{FileName: "cv.pdf"}}
	app := fiber.New()
	RegisterRoutes(app.Group("/api/v1"), nil, nil, nil, NewDashboardHandler(resumes, apps))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["resumeCount"])
	assert.Equal(t, "cv.pdf", body["primaryResume"])
	assert.Equal(t, float64(2), body["activeApplications"])
	assert.Equal(t, float64(4), body["totalApplications"])

	resumes.primary = nil
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "primaryResume")
}
