package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Blank values make getEnv fall back regardless of the ambient shell.
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("LOG_RETENTION", "")

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	require.Equal(t, 720*time.Hour, cfg.LogRetention)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "24h")
	t.Setenv("LOG_RETENTION", "240h")
	t.Setenv("ADMIN_EMAILS", "root@example.com")

	cfg := Load()
	require.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	require.Equal(t, 240*time.Hour, cfg.LogRetention)
	require.Equal(t, "root@example.com", cfg.AdminEmails)
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("LOG_RETENTION", "forever")

	cfg := Load()
	require.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	require.Equal(t, 720*time.Hour, cfg.LogRetention)
}

func TestDSNComposition(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "lms", DBPassword: "pw",
		DBName: "lms", DBSSLMode: "disable",
	}
	require.Equal(t,
		"host=db user=lms password=pw dbname=lms port=5433 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
