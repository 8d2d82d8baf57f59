package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestEnsureDatabase_SkipsNonURLDSN(t *testing.T) {
	assert.NoError(t, ensureDatabase("host=localhost user=postgres dbname=storefront"))
	assert.NoError(t, ensureDatabase("postgres://localhost:5432"))
}

func TestMigrate_CreatesAndResetsTables(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(gormDB, false))
	for _, m := range Models() {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}

	require.NoError(t, gormDB.Create(&model.User{Email: "a@x.com", Name: "A"}).Error)
	require.NoError(t, Migrate(gormDB, true))

	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWithParseTime(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"u:p@tcp(h:3306)/shop", "u:p@tcp(h:3306)/shop?parseTime=True"},
		{"u:p@tcp(h:3306)/shop?charset=utf8mb4", "u:p@tcp(h:3306)/shop?charset=utf8mb4&parseTime=True"},
		{"u:p@tcp(h:3306)/shop?parseTime=false", "u:p@tcp(h:3306)/shop?parseTime=false"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, withParseTime(tt.dsn))
		})
	}
}
