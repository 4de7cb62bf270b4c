package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMigrationsShiftColumns(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrations(db))

	columns, err := db.Migrator().ColumnTypes("shift_timings")
	require.NoError(t, err)

	types := map[string]string{}
	for _, c := range columns {
		types[c.Name()] = strings.ToUpper(c.DatabaseTypeName())
	}
	assert.Equal(t, "TEXT", types["shift_from"])
	assert.Equal(t, "TEXT", types["shift_to"])
}
