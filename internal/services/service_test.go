package services

import (
	"context"
	"testing"
	"time"

	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Module{},
		&models.Unit{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTExpiry:   168 * time.Hour,
		AdminEmails: "admin@example.com",
	}
}

func seedUser(t *testing.T, db *gorm.DB, sub, email, name string) *models.User {
	t.Helper()
	user := models.User{GoogleSub: sub, Email: email, Name: name}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// fakeVerifier returns canned claims without touching the network.
type fakeVerifier struct {
	claims *GoogleClaims
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*GoogleClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}
