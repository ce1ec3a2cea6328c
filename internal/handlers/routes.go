package handlers

import "github.com/gofiber/fiber/v2"

var endpoints = []string{
	"POST /api/v1/resume/analyze",
	"POST /api/v1/resume/analyze/upload",
	"POST /api/v1/jobs/match",
	"POST /api/v1/jobs/recommend",
	"POST /api/v1/interview/prep",
	"POST /api/v1/interview/coach",
	"POST /api/v1/resumes",
	"GET /api/v1/resumes",
	"GET /api/v1/resumes/search",
	"GET /api/v1/resumes/:id",
	"PUT /api/v1/resumes/:id/primary",
	"DELETE /api/v1/resumes/:id",
	"POST /api/v1/applications",
	"GET /api/v1/applications",
	"PATCH /api/v1/applications/:id/status",
	"DELETE /api/v1/applications/:id",
	"GET /api/v1/dashboard",
}

func Endpoints() []string {
	return append([]string(nil), endpoints...)
}

// RegisterRoutes mounts every API route on router. Handlers may be nil to
// leave their group out, which tests use to mount a single handler.
func RegisterRoutes(
	router fiber.Router,
	flows *FlowHandler,
	resumes *ResumeHandler,
	applications *ApplicationHandler,
	dashboard *DashboardHandler,
) {
	if flows != nil {
		router.Post("/resume/analyze", flows.HandleAnalyzeResume)
		router.Post("/resume/analyze/upload", flows.HandleAnalyzeUpload)
		router.Post("/jobs/match", flows.HandleMatchJob)
		router.Post("/jobs/recommend", flows.HandleRecommendJobs)
		router.Post("/interview/prep", flows.HandleInterviewPrep)
		router.Post("/interview/coach", flows.HandleInterviewCoach)
	}

	if resumes != nil {
		router.Post("/resumes", resumes.HandleSave)
		router.Get("/resumes", resumes.HandleList)
		router.Get("/resumes/search", resumes.HandleSearch)
		router.Get("/resumes/:id", resumes.HandleGet)
		router.Put("/resumes/:id/primary", resumes.HandleSetPrimary)
		router.Delete("/resumes/:id", resumes.HandleDelete)
	}

	if applications != nil {
		router.Post("/applications", applications.HandleCreate)
		router.Get("/applications", applications.HandleList)
		router.Patch("/applications/:id/status", applications.HandleUpdateStatus)
		router.Delete("/applications/:id", applications.HandleDelete)
	}

	if dashboard != nil {
		router.Get("/dashboard", dashboard.HandleGetDashboard)
	}
}
