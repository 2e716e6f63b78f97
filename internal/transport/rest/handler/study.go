package handler

import (
	"net/http"

	"engagesurvey/internal/config"
	"engagesurvey/internal/model"
)

// StudyInfo describes the survey a participant is about to take
type StudyInfo struct {
	BatchSize int               `json:"batchSize"`
	Ratings   model.RatingScale `json:"ratings"`
	Guidance  string            `json:"guidance"`
}

// StudyHandler serves study metadata
type StudyHandler struct {
	study *config.StudyConfig
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(study *config.StudyConfig) *StudyHandler {
	return &StudyHandler{study: study}
}

// Get handles GET /v1/study
//
//	@Summary	Study description and rating scale
//	@Tags		study
//	@Produce	json
//	@Success	200	{object}	StudyInfo
//	@Router		/v1/study [get]
func (h *StudyHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &StudyInfo{
		BatchSize: h.study.BatchSize,
		Ratings:   h.study.Ratings,
		Guidance:  h.study.Guidance,
	})
}
