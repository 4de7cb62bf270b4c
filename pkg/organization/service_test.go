package organization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/testdb"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(testdb.Open(t))
}

func createOrg(t *testing.T, svc *Service) *models.Organization {
	t.Helper()
	org, err := svc.Create(context.Background(), CreateRequest{
		LabName:     "Central Testing Lab",
		LabAddress:  "12 MG Road",
		LabState:    "Maharashtra",
		LabDistrict: "Mumbai",
		LabCity:     "Mumbai",
		LabPinCode:  "400001",
	})
	require.NoError(t, err)
	return org
}

func TestCreate(t *testing.T) {
	svc := newService(t)
	org := createOrg(t, svc)

	assert.NotEqual(t, uuid.Nil, org.ID)
	assert.Equal(t, models.StatusDraft, org.Status)
	assert.Equal(t, "India", org.LabCountry)
	assert.Nil(t, org.RegisteredOffice)
	assert.Empty(t, org.TopManagement)
	assert.False(t, org.CreatedAt.IsZero())
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{
			name:  "bad pin code",
			req:   CreateRequest{LabName: "L", LabAddress: "A", LabState: "S", LabDistrict: "D", LabCity: "C", LabPinCode: "40001"},
			field: "lab_pin_code",
		},
		{
			name:  "missing name",
			req:   CreateRequest{LabAddress: "A", LabState: "S", LabDistrict: "D", LabCity: "C", LabPinCode: "400001"},
			field: "lab_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetNotFound(t *testing.T) {
	svc := newService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListPaging(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		createOrg(t, svc)
	}

	all, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := svc.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)

	page, err = svc.List(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDeleteRemovesEverySection(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	org := completeOrganization(t, svc)

	// a second organization must survive
	other := createOrg(t, svc)

	require.NoError(t, svc.Delete(ctx, org.ID))

	_, err := svc.Get(ctx, org.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	for _, table := range models.Children() {
		var n int64
		require.NoError(t, svc.db.Model(table).Where("organization_id = ?", org.ID).Count(&n).Error)
		assert.Zero(t, n, "%T rows left behind", table)
	}

	_, err = svc.Get(ctx, other.ID)
	assert.NoError(t, err)

	err = svc.Delete(ctx, org.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPurgeAndRecent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	completeOrganization(t, svc)
	createOrg(t, svc)
	createOrg(t, svc)

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	removed, err := svc.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	for _, table := range models.All() {
		var n int64
		require.NoError(t, svc.db.Model(table).Count(&n).Error)
		assert.Zero(t, n, "%T rows left behind", table)
	}

	removed, err = svc.Purge(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
