package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFormatsFlags() {
	formatsJSON = false
	formatsRoutes = false
	formatsDB = false
}

func TestRunFormatsHuman(t *testing.T) {
	resetFormatsFlags()

	var buf bytes.Buffer
	require.NoError(t, runFormats(testCmd(&buf), nil))

	out := buf.String()
	assert.Contains(t, out, "Supported File Types:")
	assert.Contains(t, out, "pdf")
	assert.Contains(t, out, "extractor-pdf")
	assert.Contains(t, out, "markdown")
}

func TestRunFormatsJSON(t *testing.T) {
	resetFormatsFlags()
	formatsJSON = true

	var buf bytes.Buffer
	require.NoError(t, runFormats(testCmd(&buf), nil))

	var listing map[string]typeInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &listing))

	// Signature-backed types report signature detection even when the type
	// also has an extension rule.
	assert.Equal(t, "signature", listing["pdf"].Detection)
	assert.Equal(t, "extension", listing["markdown"].Detection)
	assert.Equal(t, "db-extractor-sqlite", listing["sqlite"].Processor)
}

func TestRunFormatsRoutes(t *testing.T) {
	resetFormatsFlags()
	formatsRoutes = true

	var buf bytes.Buffer
	require.NoError(t, runFormats(testCmd(&buf), nil))

	out := buf.String()
	assert.Contains(t, out, "Routing Table:")
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "db-extractor-sqlite")
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "berkeleydb")
	assert.Contains(t, out, "planned")
}

func TestRunFormatsDB(t *testing.T) {
	resetFormatsFlags()
	formatsDB = true

	var buf bytes.Buffer
	require.NoError(t, runFormats(testCmd(&buf), nil))

	out := buf.String()
	assert.Contains(t, out, "Detectable database formats:")
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "3.x")
	assert.Contains(t, out, "dbf")
	assert.Contains(t, out, "dBase III")
}

func TestSupportedTypesExcludesBareZipRule(t *testing.T) {
	resetFormatsFlags()

	types := supportedTypes()

	// The zip signature rule defers to container inspection and carries no
	// handler of its own; the listing shows zip via its extension rule.
	zip, ok := types["zip"]
	require.True(t, ok)
	assert.Equal(t, "archive-extractor", zip.Processor)
}
