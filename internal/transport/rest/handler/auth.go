package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"engagesurvey/internal/model"
	"engagesurvey/internal/service"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AuthHandler handles admin authentication
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/admin/login
//
//	@Summary	Admin login
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.LoginRequest	true	"Password"
//	@Success	200		{object}	model.LoginResponse
//	@Failure	401		{object}	map[string]string
//	@Router		/v1/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeBody decodes and validates a JSON body, writing 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return validateBody(w, dst)
}

// decodeOptionalBody is decodeBody for endpoints where the body may be left
// out. An empty body leaves dst untouched, whatever the Content-Length says.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return validateBody(w, dst)
}

func validateBody(w http.ResponseWriter, dst interface{}) bool {
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed on " + fe.Tag()
			}
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": fields,
			})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrContentUnavailable):
		writeError(w, http.StatusServiceUnavailable, service.ErrContentUnavailable.Error())
	case errors.Is(err, service.ErrStoreRead):
		writeError(w, http.StatusBadGateway, service.ErrStoreRead.Error())
	case errors.Is(err, service.ErrStoreWrite):
		writeError(w, http.StatusBadGateway, service.ErrStoreWrite.Error()+", please try again")
	case errors.Is(err, service.ErrNotReady):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrUnknownItem):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
