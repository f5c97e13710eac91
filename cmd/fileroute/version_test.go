package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runVersion(testCmd(&buf), nil))

	out := buf.String()
	assert.Contains(t, out, "fileroute v")
	assert.Contains(t, out, "Commit:")
	assert.Contains(t, out, "Go version:")
	assert.Contains(t, out, "OS/Arch:")
}
