package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foody.backend/pkg/crypto"
)

func TestRun(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	orig := stdout
	stdout = tmp
	t.Cleanup(func() { stdout = orig })

	require.NoError(t, run(2))

	data, err := os.ReadFile(tmp.Name())
	require.NoError(t, err)
	out := string(data)

	assert.Equal(t, 2, strings.Count(out, "API_KEY=KEY_"))
	assert.Equal(t, 2, strings.Count(out, "KEY_HASH="))

	// The printed hash must match the printed key.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	rawKey := strings.TrimPrefix(lines[0], "API_KEY=")
	hash := strings.TrimPrefix(lines[2], "KEY_HASH=")
	assert.Equal(t, crypto.HashApiKey(rawKey), hash)
	assert.Equal(t, rawKey[:8], strings.TrimPrefix(lines[1], "KEY_PREFIX="))
}

func TestRun_InvalidCount(t *testing.T) {
	assert.Error(t, run(0))
	assert.Error(t, run(-3))
}
