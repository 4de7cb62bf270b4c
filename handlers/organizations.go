package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/export"
	"p9e.in/lms/pkg/organization"
)

func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req organization.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgs.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := organizationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgs.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// ListOrganizations pages with skip and limit. The total row count is sent
// in X-Total-Count.
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", organization.DefaultListLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orgs, err := h.orgs.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := h.orgs.Count(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJSON(w, http.StatusOK, orgs)
}

func (h *Handler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := organizationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orgs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stepFunc[R any] func(ctx context.Context, id uuid.UUID, req R) (*models.Organization, error)

// step adapts one step update to a PUT handler: parse id, decode the
// payload, apply, return the updated aggregate.
func step[R any](update stepFunc[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := organizationID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req R
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		org, err := update(r.Context(), id, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, org)
	}
}

// StepRoute pairs a step path segment with its handler.
type StepRoute struct {
	Path    string
	Handler http.HandlerFunc
}

// Steps lists every step update in form order.
func (h *Handler) Steps() []StepRoute {
	return []StepRoute{
		{organization.StepLaboratoryDetails, step(h.orgs.UpdateLaboratoryDetails)},
		{organization.StepRegisteredOffice, step(h.orgs.UpdateRegisteredOffice)},
		{organization.StepParentOrganization, step(h.orgs.UpdateParentOrganization)},
		{organization.StepBankDetails, step(h.orgs.UpdateBankDetails)},
		{organization.StepWorkingSchedule, step(h.orgs.UpdateWorkingSchedule)},
		{organization.StepComplianceDocuments, step(h.orgs.UpdateComplianceDocuments)},
		{organization.StepPolicyDocuments, step(h.orgs.UpdatePolicyDocuments)},
		{organization.StepInfrastructure, step(h.orgs.UpdateInfrastructure)},
		{organization.StepAccreditation, step(h.orgs.UpdateAccreditation)},
		{organization.StepOtherDetails, step(h.orgs.UpdateOtherDetails)},
		{organization.StepQualityManual, step(h.orgs.UpdateQualityManual)},
		{organization.StepQualityFormats, step(h.orgs.UpdateQualityFormats)},
	}
}

func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := organizationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	checklist, err := h.orgs.GetChecklist(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (h *Handler) SubmitOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := organizationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgs.Submit(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// ExportOrganizations downloads the registry as xlsx (default) or csv.
func (h *Handler) ExportOrganizations(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		writeError(w, r, apperr.BadRequest("unsupported export format %q, use xlsx or csv", format))
		return
	}

	orgs, err := export.Collect(r.Context(), h.orgs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()
	var (
		data        []byte
		contentType string
	)
	switch format {
	case "csv":
		data, err = export.CSV(orgs)
		contentType = "text/csv"
	default:
		buf, xerr := export.XLSX(orgs, now)
		if xerr == nil {
			data = buf.Bytes()
		}
		err = xerr
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		writeError(w, r, apperr.Internal(err, "export organizations"))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(format, now))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// OrganizationLocations returns a GeoJSON FeatureCollection of labs that
// recorded GPS coordinates.
func (h *Handler) OrganizationLocations(w http.ResponseWriter, r *http.Request) {
	orgs, err := export.Collect(r.Context(), h.orgs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := export.Locations(orgs).MarshalJSON()
	if err != nil {
		writeError(w, r, apperr.Internal(err, "encode locations"))
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}
