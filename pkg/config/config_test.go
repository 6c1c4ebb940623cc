package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SFSHOP_API_BASE_URL", "https://shop.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.App.IsDev())
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, 1500*time.Millisecond, cfg.UI.NoticeTTL)
	require.Equal(t, 3*time.Second, cfg.UI.ConfirmClearWindow)
	require.NotEmpty(t, cfg.Session.TokenPath)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("SFSHOP_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonHTTPBaseURL(t *testing.T) {
	t.Setenv("SFSHOP_API_BASE_URL", "ftp://shop.example.com")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SFSHOP_API_BASE_URL", "http://localhost:4000")
	t.Setenv("SFSHOP_API_TIMEOUT", "2s")
	t.Setenv("SFSHOP_APP_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.App.IsProd())
	require.Equal(t, 2*time.Second, cfg.API.Timeout)
}
