package organization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/apperr"
)

func TestChecklistNewOrganization(t *testing.T) {
	svc := newService(t)
	org := createOrg(t, svc)

	c, err := svc.GetChecklist(context.Background(), org.ID)
	require.NoError(t, err)

	assert.Equal(t, org.ID, c.OrganizationID)
	require.Len(t, c.Steps, 10)
	for i, step := range c.Steps {
		assert.Equal(t, i+1, step.StepID)
		assert.NotEmpty(t, step.RequiredFields)
	}

	// only the laboratory basics are filled at creation
	assert.True(t, c.Steps[0].IsCompleted)
	assert.Empty(t, c.Steps[0].MissingFields)
	assert.Equal(t, []string{"lab_name", "lab_address", "lab_state", "lab_district", "lab_city", "lab_pin_code"}, c.Steps[0].RequiredFields)
	assert.False(t, c.Steps[1].IsCompleted)
	assert.Contains(t, c.Steps[1].MissingFields, "registered_office")
	assert.InDelta(t, 10.0, c.OverallCompletion, 0.001)
	assert.False(t, c.IsReadyForSubmission)
}

func TestChecklistCompleteOrganization(t *testing.T) {
	svc := newService(t)
	org := completeOrganization(t, svc)

	c, err := svc.GetChecklist(context.Background(), org.ID)
	require.NoError(t, err)
	for _, step := range c.Steps {
		assert.True(t, step.IsCompleted, "%s missing %v", step.StepName, step.MissingFields)
	}
	assert.InDelta(t, 100.0, c.OverallCompletion, 0.001)
	assert.True(t, c.IsReadyForSubmission)
}

func TestChecklistNotFound(t *testing.T) {
	svc := newService(t)
	_, err := svc.GetChecklist(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEvaluateSectionPresence(t *testing.T) {
	org := &models.Organization{
		LabName: "L", LabAddress: "A", LabState: "S", LabDistrict: "D", LabCity: "C", LabPinCode: "400001",
		RegisteredOffice: &models.RegisteredOffice{SameAsLabAddress: true},
		OtherDetails:     &models.OtherLabDetails{},
	}

	c := Evaluate(org)
	assert.True(t, c.Steps[1].IsCompleted)
	assert.Equal(t, []string{"accreditation_documents"}, c.Steps[7].MissingFields)
	assert.InDelta(t, 20.0, c.OverallCompletion, 0.001)

	org.AccreditationDocuments = []models.AccreditationDocument{{CertificationType: "NABL"}}
	c = Evaluate(org)
	assert.True(t, c.Steps[7].IsCompleted)
	assert.InDelta(t, 30.0, c.OverallCompletion, 0.001)
}

func TestEvaluateBlankValuesAreMissing(t *testing.T) {
	org := &models.Organization{
		LabName: "  ", LabAddress: "A", LabState: "S", LabDistrict: "D", LabCity: "C", LabPinCode: "400001",
		WorkingSchedule: &models.WorkingSchedule{OrganizationType: strPtr(""), ProofOfLegalIdentity: strPtr("pan")},
	}

	c := Evaluate(org)
	assert.Equal(t, []string{"lab_name"}, c.Steps[0].MissingFields)
	assert.Equal(t, []string{"working_schedule.organization_type"}, c.Steps[3].MissingFields)
	assert.Zero(t, c.OverallCompletion)
}

func TestCompleteOrganizationNeedsAccreditation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	org := completeOrganization(t, svc)

	_, err := svc.UpdateAccreditation(ctx, org.ID, AccreditationRequest{})
	require.NoError(t, err)

	c, err := svc.GetChecklist(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, c.Steps[7].IsCompleted)
	assert.Equal(t, []string{"accreditation_documents"}, c.Steps[7].MissingFields)
	assert.False(t, c.IsReadyForSubmission)
	assert.InDelta(t, 90.0, c.OverallCompletion, 0.001)
}

func TestSubmitIncompleteLeavesDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	org := createOrg(t, svc)

	_, err := svc.Submit(ctx, org.ID)
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
	assert.Contains(t, appErr.Fields, "Compliance Documents")

	got, err := svc.Get(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, got.Status)
}

func TestSubmitOneStepShort(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	org := completeOrganization(t, svc)

	_, err := svc.UpdateQualityFormats(ctx, org.ID, QualityFormatsRequest{
		QualityFormats: []DocumentItem{{Title: strPtr("F1")}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, org.ID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	got, err := svc.Get(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, got.Status)
}

func TestSubmitComplete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	org := completeOrganization(t, svc)

	got, err := svc.Submit(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, got.Status)

	// a second submission is rejected
	_, err = svc.Submit(ctx, org.ID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestSubmitNotFound(t *testing.T) {
	svc := newService(t)
	_, err := svc.Submit(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
