package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
auth:
  tenant_id: 72f988bf-86f1-41af-91ab-2d7cd011db47
  client_id: 11111111-2222-3333-4444-555555555555
skus:
  DEV: 3b555118-da6a-4418-894f-7df1e2096870
endpoints:
  admin_url: https://contoso-admin.sharepoint.example
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "72f988bf-86f1-41af-91ab-2d7cd011db47", cfg.TenantID("contoso"))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", cfg.ClientID())
	assert.Equal(t, "https://contoso-admin.sharepoint.example", cfg.AdminURL("contoso"))
	assert.Equal(t, "3b555118-da6a-4418-894f-7df1e2096870", cfg.SKUs["DEV"])
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth: ["), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDefaults(t *testing.T) {
	t.Setenv("O365CTL_TENANT_ID", "")
	t.Setenv("O365CTL_CLIENT_ID", "")

	var cfg Config
	assert.Equal(t, "contoso.onmicrosoft.com", cfg.TenantID("contoso"))
	assert.Equal(t, DefaultClientID, cfg.ClientID())
	assert.Equal(t, "https://contoso-admin.sharepoint.com", cfg.AdminURL("contoso"))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("O365CTL_TENANT_ID", "env-tenant")
	t.Setenv("O365CTL_CLIENT_ID", "env-client")

	var cfg Config
	assert.Equal(t, "env-tenant", cfg.TenantID("contoso"))
	assert.Equal(t, "env-client", cfg.ClientID())
}
