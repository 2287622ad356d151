package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/config"
	"github.com/vassreach/vassreach/lsg"
	"github.com/vassreach/vassreach/solver"
)

func TestDefaultMatchesSolverDefaults(t *testing.T) {
	c := config.Default()
	cc, err := c.ToCegarConfig()
	require.NoError(t, err)

	want := solver.DefaultCegarConfig()
	assert.Equal(t, want.ModuloMode, cc.ModuloMode)
	assert.Equal(t, want.LTCEnabled, cc.LTCEnabled)
	assert.Equal(t, want.LSGEnabled, cc.LSGEnabled)
	assert.Equal(t, want.LSGStrategy, cc.LSGStrategy)
}

func TestLoadOverridesOnlyNamedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vassreach.toml")
	body := `
timeout = "5s"
max_iterations = 42

[modulo]
mode = "Increment"

[lsg]
strategy = "RandomSCC"
max_refinement_steps = 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)

	cc, err := c.ToCegarConfig()
	require.NoError(t, err)
	assert.Equal(t, solver.Increment, cc.ModuloMode)
	assert.Equal(t, lsg.RandomSCC, cc.LSGStrategy)
	assert.Equal(t, 3, cc.LSGMaxRefinementSteps)
	assert.Equal(t, 42, cc.MaxIterations)

	// lts.* was not named in the file, so it keeps Default()'s values.
	assert.True(t, cc.LTCEnabled)
	assert.True(t, cc.LTCRelaxedEnabled)
}

func TestLoadRejectsUnknownModuloMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[modulo]\nmode = \"Bogus\"\n"), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	_, err = c.ToCegarConfig()
	assert.Error(t, err)
}
