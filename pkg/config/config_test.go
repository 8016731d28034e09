package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybooking/pkg/models"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("STAYBOOKING_API", "")
	t.Setenv("STAYBOOKING_DATA", "/tmp/staybooking-test.db")
	t.Setenv("STAYBOOKING_TIMEOUT", "")
	t.Setenv("STAYBOOKING_LANG", "")
	t.Setenv("STAYBOOKING_OFFLINE", "")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, models.LanguageEN, cfg.Language)
	assert.False(t, cfg.Offline)
	assert.Equal(t, 5, cfg.BreakerFailures)
}

func TestLoadClientFromEnv(t *testing.T) {
	t.Setenv("STAYBOOKING_API", "https://api.staybooking.test")
	t.Setenv("STAYBOOKING_DATA", "/tmp/staybooking-test.db")
	t.Setenv("STAYBOOKING_TIMEOUT", "3s")
	t.Setenv("STAYBOOKING_LANG", "de")
	t.Setenv("STAYBOOKING_OFFLINE", "true")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://api.staybooking.test", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, models.LanguageDE, cfg.Language)
	assert.True(t, cfg.Offline)
}

func TestClientValidate(t *testing.T) {
	valid := ClientConfig{
		APIBaseURL:      "http://localhost:8080",
		DataPath:        "staybooking.db",
		Timeout:         time.Second,
		BreakerFailures: 1,
	}

	tcases := []struct {
		name   string
		mutate func(c *ClientConfig)
		err    bool
	}{
		{name: "valid config", mutate: func(c *ClientConfig) {}, err: false},
		{name: "empty api url", mutate: func(c *ClientConfig) { c.APIBaseURL = "" }, err: true},
		{name: "relative api url", mutate: func(c *ClientConfig) { c.APIBaseURL = "localhost" }, err: true},
		{name: "empty data path", mutate: func(c *ClientConfig) { c.DataPath = "" }, err: true},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Timeout = 0 }, err: true},
		{name: "zero breaker failures", mutate: func(c *ClientConfig) { c.BreakerFailures = 0 }, err: true},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			if tc.err {
				assert.Error(t, c.Validate(), "expected error for config: %s", tc.name)
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestLoadBackend(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("SIGNING_KEY", "c29tZV9zZWNyZXQ=")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := LoadBackend()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []byte("some_secret"), cfg.SigningKey)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadBackendRejectsBadInput(t *testing.T) {
	t.Setenv("SIGNING_KEY", "not base64!")
	_, err := LoadBackend()
	assert.Error(t, err)

	t.Setenv("SIGNING_KEY", "c29tZV9zZWNyZXQ=")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = LoadBackend()
	assert.Error(t, err)
}
