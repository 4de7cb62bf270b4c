package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestTimeOfDayColumnType(t *testing.T) {
	tests := []struct {
		name      string
		dialector gorm.Dialector
		want      string
	}{
		{"postgres", postgres.New(postgres.Config{DSN: "host=localhost"}), "TIME"},
		{"sqlite", sqlite.Open(":memory:"), "TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &gorm.DB{Config: &gorm.Config{Dialector: tt.dialector}}
			assert.Equal(t, tt.want, TimeOfDay(0).GormDBDataType(db, nil))
		})
	}
}

func TestTimeOfDayScanAndJSON(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"16:30"`), &tod))
	assert.Equal(t, "16:30", tod.String())

	v, err := tod.Value()
	require.NoError(t, err)

	var back TimeOfDay
	require.NoError(t, back.Scan(v))
	assert.Equal(t, tod, back)

	b, err := json.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, `"16:30"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"4pm"`), &tod))
}
