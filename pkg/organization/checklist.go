package organization

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"p9e.in/lms/models"
)

type ChecklistItem struct {
	StepID         int      `json:"step_id"`
	StepName       string   `json:"step_name"`
	IsCompleted    bool     `json:"is_completed"`
	RequiredFields []string `json:"required_fields"`
	MissingFields  []string `json:"missing_fields"`
}

type Checklist struct {
	OrganizationID       uuid.UUID       `json:"organization_id"`
	OverallCompletion    float64         `json:"overall_completion"`
	IsReadyForSubmission bool            `json:"is_ready_for_submission"`
	Steps                []ChecklistItem `json:"steps"`
}

// requirement is one named condition of a step.
type requirement struct {
	field string
	met   func(org *models.Organization) bool
}

type stepPolicy struct {
	id           int
	name         string
	requirements []requirement
}

// checklistPolicy is the required-field table, one entry per form step.
// A step needs the non-optional fields of its request (step 1 and the
// working schedule). Otherwise it needs its saved section row, or at least
// one row for list steps.
var checklistPolicy = []stepPolicy{
	{1, "Laboratory Details", []requirement{
		{"lab_name", func(o *models.Organization) bool { return filled(o.LabName) }},
		{"lab_address", func(o *models.Organization) bool { return filled(o.LabAddress) }},
		{"lab_state", func(o *models.Organization) bool { return filled(o.LabState) }},
		{"lab_district", func(o *models.Organization) bool { return filled(o.LabDistrict) }},
		{"lab_city", func(o *models.Organization) bool { return filled(o.LabCity) }},
		{"lab_pin_code", func(o *models.Organization) bool { return filled(o.LabPinCode) }},
	}},
	{2, "Registered Office & Top Management", []requirement{
		{"registered_office", func(o *models.Organization) bool { return o.RegisteredOffice != nil }},
	}},
	{3, "Parent Organization & Bank Details", []requirement{
		{"parent_organization", func(o *models.Organization) bool { return o.ParentOrganization != nil }},
		{"bank_details", func(o *models.Organization) bool { return o.BankDetails != nil }},
	}},
	{4, "Working Schedule", []requirement{
		{"working_schedule", func(o *models.Organization) bool { return o.WorkingSchedule != nil }},
		{"working_schedule.organization_type", func(o *models.Organization) bool {
			return o.WorkingSchedule != nil && filledPtr(o.WorkingSchedule.OrganizationType)
		}},
		{"working_schedule.proof_of_legal_identity", func(o *models.Organization) bool {
			return o.WorkingSchedule != nil && filledPtr(o.WorkingSchedule.ProofOfLegalIdentity)
		}},
	}},
	{5, "Compliance Documents", []requirement{
		{"compliance_documents", func(o *models.Organization) bool { return len(o.ComplianceDocuments) > 0 }},
	}},
	{6, "Policy Documents", []requirement{
		{"policy_documents", func(o *models.Organization) bool { return o.PolicyDocuments != nil }},
	}},
	{7, "Infrastructure", []requirement{
		{"infrastructure", func(o *models.Organization) bool { return o.Infrastructure != nil }},
	}},
	{8, "Accreditation & Other Details", []requirement{
		{"accreditation_documents", func(o *models.Organization) bool { return len(o.AccreditationDocuments) > 0 }},
		{"other_details", func(o *models.Organization) bool { return o.OtherDetails != nil }},
	}},
	{9, "Quality Manual & SOPs", []requirement{
		{"quality_manual", func(o *models.Organization) bool { return o.QualityManual != nil }},
	}},
	{10, "Quality Formats & Procedures", []requirement{
		{"quality_formats", func(o *models.Organization) bool { return len(o.QualityFormats) > 0 }},
		{"quality_procedures", func(o *models.Organization) bool { return len(o.QualityProcedures) > 0 }},
	}},
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

func filledPtr(s *string) bool { return s != nil && filled(*s) }

// Evaluate computes the checklist of a fully loaded organization.
func Evaluate(org *models.Organization) Checklist {
	items := make([]ChecklistItem, 0, len(checklistPolicy))
	complete := 0

	for _, step := range checklistPolicy {
		item := ChecklistItem{
			StepID:         step.id,
			StepName:       step.name,
			RequiredFields: make([]string, 0, len(step.requirements)),
			MissingFields:  []string{},
		}
		for _, req := range step.requirements {
			item.RequiredFields = append(item.RequiredFields, req.field)
			if !req.met(org) {
				item.MissingFields = append(item.MissingFields, req.field)
			}
		}
		item.IsCompleted = len(item.MissingFields) == 0
		if item.IsCompleted {
			complete++
		}
		items = append(items, item)
	}

	var overall float64
	if len(items) > 0 {
		overall = float64(complete) / float64(len(items)) * 100
	}

	return Checklist{
		OrganizationID:       org.ID,
		OverallCompletion:    overall,
		IsReadyForSubmission: complete == len(items),
		Steps:                items,
	}
}

// GetChecklist reports per-step completion without modifying anything.
func (s *Service) GetChecklist(ctx context.Context, id uuid.UUID) (*Checklist, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := Evaluate(org)
	return &c, nil
}
