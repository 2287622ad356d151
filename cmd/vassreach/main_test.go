package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/solver"
)

func TestLoadInstanceParsesTextualSpec(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/spec.txt"
	body := "vars c\nrules\nc >= 0 -> c' = c + 1;\ninit c = 0\ntarget c = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	iv, err := loadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, 1, iv.VASS.Dim())
}

func TestLoadInstanceParsesJSON(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/spec.json"
	body := `{
  "net": {"num_places": 1, "transitions": [{"weights": [{"place": 0, "weight": 1}]}]},
  "initial": [0],
  "final": [3]
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	iv, err := loadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, 1, iv.VASS.Dim())
}

func TestStatusStringMapping(t *testing.T) {
	assert.Equal(t, "true", statusString(solver.StatusReachable))
	assert.Equal(t, "false", statusString(solver.StatusUnreachable))
	assert.Equal(t, "unknown", statusString(solver.StatusUnknown))
}
