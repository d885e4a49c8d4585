package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_SSLMODE", "PGHOST", "PGPORT",
		"DB_MAX_IDLE_CONNS", "DB_MAX_OPEN_CONNS", "SESSION_TTL", "ALLOW_ADMIN_SIGNUP"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, 2, cfg.DBMaxIdleConns)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.AllowAdminSignup)
}

func TestLoadConfigFallbacks(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("PGHOST", "pg.internal")
	t.Setenv("PGUSER", "micro")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	cfg := LoadConfig()

	assert.Equal(t, "pg.internal", cfg.DBHost)
	assert.Equal(t, "micro", cfg.DBUser)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.AllowAdminSignup)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBDriver: "postgres", DBHost: "h", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "d", DBSSLMode: "require"}
	assert.Equal(t, "host=h user=u password=p dbname=d port=5432 sslmode=require TimeZone=UTC", cfg.DSN())

	cfg.DBDriver = "mysql"
	cfg.DBPort = "3306"
	assert.Equal(t, "u:p@tcp(h:3306)/d?parseTime=true", cfg.DSN())
}
