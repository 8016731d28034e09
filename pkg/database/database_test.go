package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "postgres", Port: "5432", User: "program", Password: "test", Name: "staybooking"}

	assert.Equal(t,
		"host=postgres user=program password=test dbname=staybooking port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := OpenSQLite(":memory:", &widget{})
	require.NoError(t, err)

	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, Ping(db))
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	db, err := OpenSQLite(path, &widget{})
	require.NoError(t, err)
	require.NoError(t, db.Create(&widget{Name: "kept"}).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	var w widget
	require.NoError(t, reopened.First(&w).Error)
	assert.Equal(t, "kept", w.Name)
}

func TestOpenSQLiteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "staybooking", "data.db")

	db, err := OpenSQLite(path, &widget{})
	require.NoError(t, err)
	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	assert.FileExists(t, path)
}
