// Package handlers exposes the registration workflow over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"p9e.in/lms/config"
	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/logger"
	"p9e.in/lms/pkg/organization"
	"p9e.in/lms/pkg/storage"
)

// maxBodyBytes caps JSON step payloads.
const maxBodyBytes = 1 << 20

type Handler struct {
	orgs  *organization.Service
	files *storage.Resolver
	db    *gorm.DB
	app   config.App
}

func New(orgs *organization.Service, files *storage.Resolver, db *gorm.DB, app config.App) *Handler {
	return &Handler{orgs: orgs, files: files, db: db, app: app}
}

type errorBody struct {
	Error   apperr.Kind       `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Sugar().Warnf("encode response: %v", err)
	}
}

// writeError maps err onto its status code. Internal causes are logged but
// never echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	body := errorBody{Error: kind, Message: "internal server error"}

	var e *apperr.Error
	if errors.As(err, &e) && kind != apperr.KindInternal {
		body.Message = e.Message
		body.Fields = e.Fields
	}
	if kind == apperr.KindInternal {
		logger.Errorf(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, apperr.Status(kind), body)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is required")
		}
		return apperr.BadRequest("invalid request body: %v", err)
	}
	return nil
}

func organizationID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, apperr.Validation("organization_id", "invalid organization id")
	}
	return id, nil
}

// queryInt reads a non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation(name, "%s must be a non-negative integer", name)
	}
	return n, nil
}
