package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "UserPrincipalName,MailboxGuid\n" +
	"alice@contoso.com,{6F9619FF-8B86-D011-B42D-00C04FC964FF}\n" +
	"bob@contoso.com,1b4e28ba-2fa1-11d2-883f-0016d3cca427\n"

func TestReadParsesRows(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "alice@contoso.com", records[0].PrincipalName)
	assert.Equal(t, "{6F9619FF-8B86-D011-B42D-00C04FC964FF}", records[0].DeclaredGUID)
	assert.Equal(t, "bob@contoso.com", records[1].PrincipalName)
}

func TestReadStripsUTF8BOM(t *testing.T) {
	records, err := Read(strings.NewReader("\xef\xbb\xbf" + sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)
	// The BOM must not leak into the first header, which would break the
	// principal-name column binding.
	assert.Equal(t, "alice@contoso.com", records[0].PrincipalName)
}

func TestReadDecodesUTF16(t *testing.T) {
	// UTF-16LE with BOM, as produced by legacy Export-Csv defaults.
	var buf []byte
	buf = append(buf, 0xff, 0xfe)
	for _, r := range sampleCSV {
		buf = append(buf, byte(r), byte(r>>8))
	}
	records, err := Read(strings.NewReader(string(buf)))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bob@contoso.com", records[1].PrincipalName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path)
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Error(), "no records")
}

func TestLoadHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.csv")
	require.NoError(t, os.WriteFile(path, []byte("UserPrincipalName,MailboxGuid\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no records")
}

func TestLoadReadsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestValidateTenant(t *testing.T) {
	assert.NoError(t, ValidateTenant("contoso"))

	err := ValidateTenant("   ")
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
