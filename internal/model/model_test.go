package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yockii/wx_publisher/pkg/database"
	"github.com/yockii/wx_publisher/pkg/util"
)

func TestAutoMigrateSqlite(t *testing.T) {
	util.InitNode(1)
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"), gormlogger.Silent)
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db, "sqlite"))
	assert.True(t, db.Migrator().HasTable(&UserConfig{}))

	record := &UserConfig{UserID: "u1", Config: "{}"}
	require.NoError(t, db.Create(record).Error)
	assert.NotZero(t, record.GetID())

	dup := &UserConfig{UserID: "u1", Config: "{}"}
	assert.Error(t, db.Create(dup).Error)
}

func TestAutoMigrateUnsupported(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"), gormlogger.Silent)
	require.NoError(t, err)
	assert.Error(t, AutoMigrate(db, "oracle"))
	assert.Error(t, AutoMigrate(nil, "sqlite"))
}
