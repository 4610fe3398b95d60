package directory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/google/uuid"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"
)

// graphScopes is the scope set requested for every Graph session.
var graphScopes = []string{"https://graph.microsoft.com/.default"}

// GraphProvider establishes Graph sessions with an interactive device-code
// sign-in. The operator authenticates once; the resulting session is
// reused for the entire run.
type GraphProvider struct {
	TenantID string
	ClientID string

	// Prompt receives the device-code instructions shown to the operator.
	Prompt io.Writer

	// credential overrides the interactive credential when set (tests).
	credential azcore.TokenCredential
}

// WithCredential returns a copy of the provider that authenticates with
// the given credential instead of prompting.
func (p GraphProvider) WithCredential(cred azcore.TokenCredential) GraphProvider {
	p.credential = cred
	return p
}

// Connect implements SessionProvider.
func (p GraphProvider) Connect(ctx context.Context) (Session, error) {
	cred := p.credential
	if cred == nil {
		var err error
		cred, err = azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			TenantID: p.TenantID,
			ClientID: p.ClientID,
			UserPrompt: func(_ context.Context, dc azidentity.DeviceCodeMessage) error {
				fmt.Fprintln(p.Prompt, dc.Message)
				return nil
			},
		})
		if err != nil {
			return nil, &AuthError{Endpoint: "graph", Err: err}
		}
	}

	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, graphScopes)
	if err != nil {
		return nil, &AuthError{Endpoint: "graph", Err: err}
	}

	slog.Debug("graph session established", "tenant", p.TenantID)
	return &graphSession{client: client}, nil
}

// graphSession implements Session over the Microsoft Graph SDK. The
// mailbox GUID attribute is mastered in the account's on-premises
// immutable ID, which is how migration tooling reconciles object GUIDs
// across directories.
type graphSession struct {
	client *msgraphsdk.GraphServiceClient
}

func (s *graphSession) Lookup(ctx context.Context, principal string) (User, error) {
	cfg := &users.UserItemRequestBuilderGetRequestConfiguration{
		QueryParameters: &users.UserItemRequestBuilderGetQueryParameters{
			Select: []string{"id", "userPrincipalName", "onPremisesImmutableId"},
		},
	}
	u, err := s.client.Users().ByUserId(principal).Get(ctx, cfg)
	if err != nil {
		if graphNotFound(err) {
			return User{}, &LookupError{Principal: principal, NotFound: true, Err: err}
		}
		return User{}, &LookupError{Principal: principal, Err: fmt.Errorf("%s", graphMessage(err))}
	}

	user := User{PrincipalName: principal}
	if id := u.GetId(); id != nil {
		user.ID = *id
	}
	if upn := u.GetUserPrincipalName(); upn != nil {
		user.PrincipalName = *upn
	}
	if g := u.GetOnPremisesImmutableId(); g != nil {
		user.MailboxGUID = *g
	}
	return user, nil
}

func (s *graphSession) SetMailboxGUID(ctx context.Context, principal, guid string) error {
	body := models.NewUser()
	body.SetOnPremisesImmutableId(&guid)

	if _, err := s.client.Users().ByUserId(principal).Patch(ctx, body, nil); err != nil {
		return &UpdateError{Principal: principal, Err: fmt.Errorf("%s", graphMessage(err))}
	}
	return nil
}

func (s *graphSession) DriveQuota(ctx context.Context, principal string) (Quota, error) {
	drive, err := s.client.Users().ByUserId(principal).Drive().Get(ctx, nil)
	if err != nil {
		if graphNotFound(err) {
			return Quota{}, &LookupError{Principal: principal, NotFound: true, Err: err}
		}
		return Quota{}, &LookupError{Principal: principal, Err: fmt.Errorf("%s", graphMessage(err))}
	}

	var quota Quota
	if q := drive.GetQuota(); q != nil {
		if v := q.GetTotal(); v != nil {
			quota.Total = *v
		}
		if v := q.GetUsed(); v != nil {
			quota.Used = *v
		}
		if v := q.GetRemaining(); v != nil {
			quota.Remaining = *v
		}
	}
	return quota, nil
}

func (s *graphSession) AssignLicense(ctx context.Context, principal string, sku uuid.UUID) error {
	lic := models.NewAssignedLicense()
	lic.SetSkuId(&sku)

	body := users.NewItemAssignLicensePostRequestBody()
	body.SetAddLicenses([]models.AssignedLicenseable{lic})
	body.SetRemoveLicenses([]uuid.UUID{})

	if _, err := s.client.Users().ByUserId(principal).AssignLicense().Post(ctx, body, nil); err != nil {
		if graphNotFound(err) {
			return &LookupError{Principal: principal, NotFound: true, Err: err}
		}
		return &UpdateError{Principal: principal, Err: fmt.Errorf("%s", graphMessage(err))}
	}
	return nil
}

func (s *graphSession) OrganizationName(ctx context.Context) (string, error) {
	resp, err := s.client.Organization().Get(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("organization read: %s", graphMessage(err))
	}
	orgs := resp.GetValue()
	if len(orgs) == 0 {
		return "", fmt.Errorf("organization read: empty result")
	}
	if name := orgs[0].GetDisplayName(); name != nil {
		return *name, nil
	}
	return "", nil
}
