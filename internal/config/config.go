// Package config loads the optional per-user configuration file and its
// environment overlay. Everything has a workable default: a tenant admin
// can run the tool with nothing but the positional parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultClientID is the well-known public client used for delegated
// administrative sign-in when no app registration is configured.
const DefaultClientID = "14d82eec-204b-4c2f-b7e8-296a70dab67e"

// Config is the on-disk configuration shape.
type Config struct {
	Auth struct {
		// TenantID overrides the AAD tenant derived from the tenant name
		// positional parameter.
		TenantID string `yaml:"tenant_id"`
		// ClientID overrides DefaultClientID.
		ClientID string `yaml:"client_id"`
	} `yaml:"auth"`

	// SKUs adds or overrides license-code → SKU ID rows in the built-in
	// decision table.
	SKUs map[string]string `yaml:"skus"`

	Endpoints struct {
		// AdminURL overrides the derived SharePoint admin endpoint.
		AdminURL string `yaml:"admin_url"`
	} `yaml:"endpoints"`
}

// Load reads the config file at path, or the default per-user location
// when path is empty. A missing file yields the zero config; a present
// but unparsable file is an error. A .env file in the working directory
// is overlaid first so secrets stay out of the YAML.
func Load(path string) (Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(home, ".o365ctl", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// TenantID resolves the AAD tenant for authentication: the configured
// override, the O365CTL_TENANT_ID variable, or the tenant name's default
// onmicrosoft.com domain, in that order of preference.
func (c Config) TenantID(tenant string) string {
	if c.Auth.TenantID != "" {
		return c.Auth.TenantID
	}
	if v := os.Getenv("O365CTL_TENANT_ID"); v != "" {
		return v
	}
	return tenant + ".onmicrosoft.com"
}

// ClientID resolves the application client ID.
func (c Config) ClientID() string {
	if c.Auth.ClientID != "" {
		return c.Auth.ClientID
	}
	if v := os.Getenv("O365CTL_CLIENT_ID"); v != "" {
		return v
	}
	return DefaultClientID
}

// AdminURL resolves the SharePoint admin endpoint for the tenant.
func (c Config) AdminURL(tenant string) string {
	if c.Endpoints.AdminURL != "" {
		return c.Endpoints.AdminURL
	}
	return fmt.Sprintf("https://%s-admin.sharepoint.com", tenant)
}
