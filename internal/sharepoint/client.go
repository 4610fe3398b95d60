// Package sharepoint wraps the SharePoint admin endpoint used to manage
// OneDrive for Business storage quotas. Quota writes go through the
// tenant administration service, not Graph, which is why this client
// exists next to the directory session.
package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/api"
	saml "github.com/koltyakov/gosip/auth/saml"
)

// Admin is the slice of the admin endpoint the quota command consumes.
type Admin interface {
	// SetStorageQuota sets the storage maximum and warning level (in MB)
	// on the given site.
	SetStorageQuota(ctx context.Context, siteURL string, maxMB, warnMB int64) error

	// Probe performs a cheap authenticated read against the admin site.
	Probe(ctx context.Context) error
}

// Client talks to the tenant admin site over gosip.
type Client struct {
	adminURL string
	sp       *gosip.SPClient
}

// New builds an admin client for the given admin site URL, authenticating
// with the SAML user credential strategy.
func New(adminURL, username, password string) (*Client, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("sharepoint admin credentials not configured (O365CTL_SP_USERNAME / O365CTL_SP_PASSWORD)")
	}
	auth := &saml.AuthCnfg{
		SiteURL:  adminURL,
		Username: username,
		Password: password,
	}
	return &Client{
		adminURL: strings.TrimRight(adminURL, "/"),
		sp:       &gosip.SPClient{AuthCnfg: auth},
	}, nil
}

// setSitePropertiesBody is the tenant-administration RPC payload.
type setSitePropertiesBody struct {
	SiteURL             string `json:"siteUrl"`
	StorageMaximumLevel int64  `json:"storageMaximumLevel"`
	StorageWarningLevel int64  `json:"storageWarningLevel"`
}

// SetStorageQuota implements Admin.
func (c *Client) SetStorageQuota(ctx context.Context, siteURL string, maxMB, warnMB int64) error {
	body, err := json.Marshal(setSitePropertiesBody{
		SiteURL:             siteURL,
		StorageMaximumLevel: maxMB,
		StorageWarningLevel: warnMB,
	})
	if err != nil {
		return err
	}

	endpoint := c.adminURL + "/_api/Microsoft.Online.SharePoint.TenantAdministration.Tenant/SetSiteProperties"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json;odata=verbose")
	req.Header.Set("Content-Type", "application/json;odata=verbose")

	resp, err := c.sp.Execute(req)
	if err != nil {
		return fmt.Errorf("set quota on %s: %w", siteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("set quota on %s: %s: %s", siteURL, resp.Status, strings.TrimSpace(string(detail)))
	}
	return nil
}

// Probe implements Admin with a minimal authenticated web read.
func (c *Client) Probe(ctx context.Context) error {
	if _, err := api.NewSP(c.sp).Web().Select("Title").Get(); err != nil {
		return fmt.Errorf("probe %s: %w", c.adminURL, err)
	}
	return nil
}

// PersonalSiteURL derives a user's OneDrive personal site URL from their
// principal name, the way the hosting service maps UPNs onto the my-site
// namespace: dots and the at-sign become underscores.
func PersonalSiteURL(tenant, principal string) string {
	mangled := strings.NewReplacer(".", "_", "@", "_").Replace(strings.ToLower(principal))
	return fmt.Sprintf("https://%s-my.sharepoint.com/personal/%s", tenant, mangled)
}
