package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/o365ctl/internal/sharepoint"
)

func TestConnectAllEndpointsHealthy(t *testing.T) {
	session := &fakeSession{orgName: "Contoso Ltd"}
	opts := &RootOptions{
		NoColor:     true,
		Sessions:    fakeProvider{session: session},
		AdminClient: func(string) (sharepoint.Admin, error) { return &fakeAdmin{}, nil },
	}

	buf := &bytes.Buffer{}
	cmd := NewConnectCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"contoso"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "[ OK ] graph: connected to Contoso Ltd")
	assert.Contains(t, out, "[ OK ] sharepoint-admin")
	assert.Contains(t, out, "All endpoints reachable.")
}

func TestConnectFailedProbeExitsNonZero(t *testing.T) {
	session := &fakeSession{orgErr: errors.New("503 service unavailable")}
	opts := &RootOptions{
		NoColor:     true,
		Sessions:    fakeProvider{session: session},
		AdminClient: func(string) (sharepoint.Admin, error) { return &fakeAdmin{}, nil },
	}

	buf := &bytes.Buffer{}
	cmd := NewConnectCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"contoso"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "[FAIL] graph")
}

func TestConnectSkipsAdminWithoutCredentials(t *testing.T) {
	session := &fakeSession{orgName: "Contoso Ltd"}
	opts := &RootOptions{
		NoColor:  true,
		Sessions: fakeProvider{session: session},
		AdminClient: func(string) (sharepoint.Admin, error) {
			return nil, errors.New("sharepoint admin credentials not configured")
		},
	}

	buf := &bytes.Buffer{}
	cmd := NewConnectCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"contoso"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "skipping sharepoint-admin")
	assert.NotContains(t, buf.String(), "[FAIL]")
}

func TestConnectBlankTenant(t *testing.T) {
	opts := &RootOptions{}
	cmd := NewConnectCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{" "})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
