package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"engagesurvey/internal/service"
	"engagesurvey/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// AdminHandler serves the research team's response views
type AdminHandler struct {
	responseSvc *service.ResponseService
	reportSvc   *service.ReportService
	now         func() time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(responseSvc *service.ResponseService, reportSvc *service.ReportService) *AdminHandler {
	return &AdminHandler{
		responseSvc: responseSvc,
		reportSvc:   reportSvc,
		now:         time.Now,
	}
}

// Responses handles GET /v1/admin/responses
//
//	@Summary	List stored responses
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	model.SurveyResponse
//	@Router		/v1/admin/responses [get]
func (h *AdminHandler) Responses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responseSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, fmt.Errorf("%w: %w", service.ErrStoreRead, err))
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// Response handles GET /v1/admin/responses/{id}
//
//	@Summary	Get one stored response
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Response ID"
//	@Success	200	{object}	model.SurveyResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/v1/admin/responses/{id} [get]
func (h *AdminHandler) Response(w http.ResponseWriter, r *http.Request) {
	resp, err := h.responseSvc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, fmt.Errorf("%w: %w", service.ErrStoreRead, err))
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /v1/admin/responses/export
//
//	@Summary	Download responses as the dataset CSV
//	@Tags		admin
//	@Produce	text/csv
//	@Security	BearerAuth
//	@Success	200	{file}	file
//	@Router		/v1/admin/responses/export [get]
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responseSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, fmt.Errorf("%w: %w", service.ErrStoreRead, err))
		return
	}

	log.Printf("Admin %s exported %d responses", middleware.GetAdminID(r.Context()), len(responses))

	filename := fmt.Sprintf("engagement_responses_%s.csv", h.now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := service.WriteDatasetCSV(w, responses); err != nil {
		log.Printf("CSV export interrupted: %v", err)
	}
}

// Stats handles GET /v1/admin/stats
//
//	@Summary	Content coverage statistics
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	model.ResponseStats
//	@Router		/v1/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportSvc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ParticipantCount handles GET /v1/admin/participants/count?email=
//
//	@Summary	Number of surveys submitted by an email
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		email	query		string	true	"Participant email"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/v1/admin/participants/count [get]
func (h *AdminHandler) ParticipantCount(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := validate.Var(email, "required,email"); err != nil {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	n, err := h.responseSvc.CountByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, fmt.Errorf("%w: %w", service.ErrStoreRead, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"email": email, "surveys": n})
}
