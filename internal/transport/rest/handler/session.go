package handler

import (
	"net/http"

	"engagesurvey/internal/model"
	"engagesurvey/internal/service"
	"engagesurvey/internal/transport/rest/middleware"
)

// ContentBase is the URL prefix survey images are served under
const ContentBase = "/v1/content"

// RateRequest is the request body for rating a face
type RateRequest struct {
	Value string `json:"value" validate:"required"`
	Path  string `json:"path,omitempty"` // defaults to the current face
}

// MoveResponse is returned by next/prev. Moved is false when navigation was not allowed.
type MoveResponse struct {
	Moved   bool               `json:"moved"`
	Session *model.SessionView `json:"session"`
}

// SubmitResponse is returned after a survey is saved
type SubmitResponse struct {
	Status     string  `json:"status"`
	ResponseID string  `json:"responseId"`
	Answers    int     `json:"answers"`
	Duration   float64 `json:"duration"`
}

// SessionHandler handles participant survey endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	authSvc    *service.AuthService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, authSvc *service.AuthService) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		authSvc:    authSvc,
	}
}

// Start handles POST /v1/sessions
//
//	@Summary	Start a survey
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.Participant	false	"Optional participant details"
//	@Success	201		{object}	model.StartSessionResponse
//	@Failure	503		{object}	map[string]string
//	@Router		/v1/sessions [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var participant model.Participant
	if !decodeOptionalBody(w, r, &participant) {
		return
	}

	session, err := h.sessionSvc.Start(r.Context(), participant)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.authSvc.GenerateParticipantToken(session.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &model.StartSessionResponse{
		Token:   token,
		Session: h.view(session),
	})
}

// Get handles GET /v1/sessions/{id}
//
//	@Summary	Current survey step
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.SessionView
//	@Router		/v1/sessions/{id} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// Rate handles PUT /v1/sessions/{id}/rating
//
//	@Summary	Rate a face
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Session ID"
//	@Param		body	body		RateRequest	true	"Rating"
//	@Success	200		{object}	model.SessionView
//	@Failure	400		{object}	map[string]string
//	@Router		/v1/sessions/{id}/rating [put]
func (h *SessionHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req RateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.sessionSvc.Rate(r.Context(), middleware.GetSessionID(r.Context()), req.Path, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// Next handles POST /v1/sessions/{id}/next
//
//	@Summary	Go to the next face
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	MoveResponse
//	@Router		/v1/sessions/{id}/next [post]
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, moved, err := h.sessionSvc.Advance(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &MoveResponse{Moved: moved, Session: h.view(session)})
}

// Prev handles POST /v1/sessions/{id}/prev
//
//	@Summary	Go to the previous face
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	MoveResponse
//	@Router		/v1/sessions/{id}/prev [post]
func (h *SessionHandler) Prev(w http.ResponseWriter, r *http.Request) {
	session, moved, err := h.sessionSvc.Retreat(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &MoveResponse{Moved: moved, Session: h.view(session)})
}

// Submit handles POST /v1/sessions/{id}/submit
//
//	@Summary	Submit the survey
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	SubmitResponse
//	@Failure	409	{object}	map[string]string
//	@Failure	502	{object}	map[string]string
//	@Router		/v1/sessions/{id}/submit [post]
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sessionSvc.Submit(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &SubmitResponse{
		Status:     string(model.SessionSubmitted),
		ResponseID: resp.ID,
		Answers:    len(resp.Answers),
		Duration:   resp.Duration,
	})
}

// Cancel handles DELETE /v1/sessions/{id}
//
//	@Summary	Abandon the survey
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.SessionView
//	@Router		/v1/sessions/{id} [delete]
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Cancel(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

func (h *SessionHandler) view(s *model.SurveySession) *model.SessionView {
	return model.NewSessionView(s, h.sessionSvc.Scale(), ContentBase)
}
