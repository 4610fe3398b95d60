package license

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/o365ctl/internal/ingest"
	"github.com/roach88/o365ctl/internal/report"
	"github.com/roach88/o365ctl/internal/runlog"
)

func TestResolveBuiltinCodes(t *testing.T) {
	sku, err := Resolve("E3", nil)
	require.NoError(t, err)
	assert.Equal(t, "6fd2c87f-b296-42f0-b197-1e91e994b900", sku.String())

	// Case-insensitive.
	lower, err := Resolve("e5", nil)
	require.NoError(t, err)
	assert.Equal(t, "c7df2760-2c81-4ef7-b578-5b5392b571df", lower.String())
}

func TestResolveOverrideShadowsBuiltin(t *testing.T) {
	overrides := map[string]string{
		"e3":  "3b555118-da6a-4418-894f-7df1e2096870",
		"DEV": "18181a46-0d4e-45cd-891e-60aabd171b4e",
	}

	sku, err := Resolve("E3", overrides)
	require.NoError(t, err)
	assert.Equal(t, "3b555118-da6a-4418-894f-7df1e2096870", sku.String())

	dev, err := Resolve("dev", overrides)
	require.NoError(t, err)
	assert.Equal(t, "18181a46-0d4e-45cd-891e-60aabd171b4e", dev.String())
}

func TestResolveUnknownCode(t *testing.T) {
	_, err := Resolve("E99", nil)
	require.Error(t, err)

	var unknown *UnknownCodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "E99", unknown.Code)
	assert.Contains(t, unknown.Known, "E3")
}

func TestResolveMalformedOverride(t *testing.T) {
	_, err := Resolve("BAD", map[string]string{"BAD": "not-a-guid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed SKU ID")
}

type fakeAssignDir struct {
	calls []string
	fail  map[string]error
}

func (f *fakeAssignDir) AssignLicense(_ context.Context, principal string, _ uuid.UUID) error {
	f.calls = append(f.calls, principal)
	return f.fail[principal]
}

func TestAssignerContinuesPastFailures(t *testing.T) {
	dir := &fakeAssignDir{fail: map[string]error{
		"bob@contoso.com": errors.New("no seats left"),
	}}

	log := runlog.New("license-assign", t.TempDir())
	require.NoError(t, log.Open())
	defer log.Close()

	var outcomes []report.Outcome
	a := &Assigner{
		Directory: dir,
		Sink:      report.SinkFunc(func(o report.Outcome) { outcomes = append(outcomes, o) }),
		Log:       log,
	}

	sku := uuid.MustParse("6fd2c87f-b296-42f0-b197-1e91e994b900")
	records := []ingest.Record{
		{PrincipalName: "alice@contoso.com"},
		{PrincipalName: "bob@contoso.com"},
		{PrincipalName: "carol@contoso.com"},
	}

	errCount := a.Run(context.Background(), records, "E3", sku)
	assert.Equal(t, 1, errCount)
	assert.Equal(t, []string{"alice@contoso.com", "bob@contoso.com", "carol@contoso.com"}, dir.calls)

	require.Len(t, outcomes, 3)
	assert.Equal(t, report.StatusChanged, outcomes[0].Status)
	assert.Equal(t, report.StatusError, outcomes[1].Status)
	assert.Equal(t, report.StatusChanged, outcomes[2].Status)
}
