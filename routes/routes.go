package routes

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"p9e.in/lms/config"
	"p9e.in/lms/handlers"
	"p9e.in/lms/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(h *handlers.Handler, cfg config.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recover, middleware.RequestID, middleware.AccessLog, middleware.Metrics)

	// =====================================================
	// Public Routes
	// =====================================================
	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if cfg.Upload.StorageType == "" || cfg.Upload.StorageType == "local" {
		prefix := "/" + strings.Trim(cfg.Upload.PublicPrefix, "/") + "/"
		r.PathPrefix(prefix).Handler(
			http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Upload.Dir))),
		)
	}

	// =====================================================
	// API Routes
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	registerOrganizationRoutes(api, h)
	registerFileRoutes(api, h)

	return middleware.CORS(cfg.Server.CORSOrigins)(r)
}

func registerOrganizationRoutes(api *mux.Router, h *handlers.Handler) {
	orgs := api.PathPrefix("/organizations").Subrouter()

	// static paths before {id}
	orgs.HandleFunc("", h.ListOrganizations).Methods("GET")
	orgs.HandleFunc("/", h.ListOrganizations).Methods("GET")
	orgs.HandleFunc("", h.CreateOrganization).Methods("POST")
	orgs.HandleFunc("/", h.CreateOrganization).Methods("POST")
	orgs.HandleFunc("/export", h.ExportOrganizations).Methods("GET")
	orgs.HandleFunc("/locations", h.OrganizationLocations).Methods("GET")

	orgs.HandleFunc("/{id}", h.GetOrganization).Methods("GET")
	orgs.HandleFunc("/{id}", h.DeleteOrganization).Methods("DELETE")
	orgs.HandleFunc("/{id}/checklist", h.GetChecklist).Methods("GET")
	orgs.HandleFunc("/{id}/submit", h.SubmitOrganization).Methods("POST")

	for _, s := range h.Steps() {
		orgs.HandleFunc("/{id}/"+s.Path, s.Handler).Methods("PUT")
	}
}

func registerFileRoutes(api *mux.Router, h *handlers.Handler) {
	files := api.PathPrefix("/files").Subrouter()
	files.HandleFunc("/upload/logo", h.UploadLogo).Methods("POST")
	files.HandleFunc("/upload/document", h.UploadDocument).Methods("POST")
	files.HandleFunc("/upload/multiple", h.UploadMultiple).Methods("POST")
	files.HandleFunc("/delete", h.DeleteFile).Methods("DELETE")
}
