package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/lms/pkg/organization"
	"p9e.in/lms/pkg/storage"
	"p9e.in/lms/pkg/testdb"
)

func TestVersionCommand(t *testing.T) {
	root := NewRoot("1.2.3", "2025-10-14")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Version:   1.2.3")
	assert.Contains(t, out.String(), "BuildTime: 2025-10-14")
}

func seed(t *testing.T, svc *organization.Service, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), organization.CreateRequest{
			LabName:     "Lab",
			LabAddress:  "Road",
			LabState:    "Kerala",
			LabDistrict: "Ernakulam",
			LabCity:     "Kochi",
			LabPinCode:  "682001",
		})
		require.NoError(t, err)
	}
}

func TestCheckDB(t *testing.T) {
	db := testdb.Open(t)
	seed(t, organization.NewService(db), 6)

	var out bytes.Buffer
	require.NoError(t, checkDB(context.Background(), db, &out))

	text := out.String()
	assert.Contains(t, text, "[ok]      organizations")
	assert.NotContains(t, text, "[missing]")
	assert.Contains(t, text, "total organizations: 6")
	assert.Equal(t, 5, strings.Count(text, "status=draft"))
}

func TestCheckDBEmpty(t *testing.T) {
	db := testdb.Open(t)

	var out bytes.Buffer
	require.NoError(t, checkDB(context.Background(), db, &out))
	assert.Contains(t, out.String(), "total organizations: 0")
	assert.NotContains(t, out.String(), "recent organizations")
}

func TestClearData(t *testing.T) {
	db := testdb.Open(t)
	svc := organization.NewService(db)
	seed(t, svc, 2)

	local, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	stray := filepath.Join(local.Root(), storage.FolderLogos, "old.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(stray), 0o755))
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0o644))

	var out bytes.Buffer
	require.NoError(t, clearData(context.Background(), svc, local, &out))
	assert.Contains(t, out.String(), "deleted 2 organizations")

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = os.Stat(stray)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(local.Root(), storage.FolderDocuments))
	assert.NoError(t, err)
}

func TestClearDataRequiresConfirmation(t *testing.T) {
	c := newClearData()
	c.SetArgs([]string{})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	err := c.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}
