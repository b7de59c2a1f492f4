package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8, cfg.BusinessOpenHour)
	assert.Equal(t, 22, cfg.BusinessCloseHour)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 30*time.Second, cfg.AvailabilityCacheTTL)
	assert.Equal(t, "elden.changes", cfg.ChangeExchange)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("BUSINESS_OPEN_HOUR", "6")
	t.Setenv("AVAILABILITY_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 6, cfg.BusinessOpenHour)
	assert.Equal(t, time.Minute, cfg.AvailabilityCacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default hours", Config{JWTSecret: "s", BusinessOpenHour: 8, BusinessCloseHour: 22, StoreBackend: BackendPostgres}, false},
		{"inverted hours", Config{JWTSecret: "s", BusinessOpenHour: 22, BusinessCloseHour: 8, StoreBackend: BackendPostgres}, true},
		{"hour out of range", Config{JWTSecret: "s", BusinessOpenHour: 8, BusinessCloseHour: 24, StoreBackend: BackendPostgres}, true},
		{"empty secret", Config{BusinessOpenHour: 8, BusinessCloseHour: 22, StoreBackend: BackendMemory}, true},
		{"unknown backend", Config{JWTSecret: "s", BusinessOpenHour: 8, BusinessCloseHour: 22, StoreBackend: "firestore"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
