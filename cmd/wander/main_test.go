package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/wander/config"
)

func testConfig(seed uint64) *config.Config {
	cfg := config.Default()
	cfg.Sim.Seed = seed
	cfg.Sim.Places = 5
	cfg.Sim.Peers = 20
	return cfg
}

func TestRunHeadless(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHeadless(testConfig(7), 300, 100*time.Millisecond, &out, zap.NewNop()))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "run "))
	assert.Contains(t, text, "seed 7")
	assert.Contains(t, text, "sim.arrivals")
	assert.Regexp(t, `sim\.ticks\s+300\n`, text)
}

func TestRunHeadlessDeterministic(t *testing.T) {
	summary := func() []string {
		var out bytes.Buffer
		require.NoError(t, runHeadless(testConfig(99), 200, 50*time.Millisecond, &out, zap.NewNop()))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		// First line carries the run id
		return lines[1:]
	}
	assert.Equal(t, summary(), summary())
}

func TestRunHeadlessRejectsNegative(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runHeadless(testConfig(1), -1, time.Millisecond, &out, zap.NewNop()))
	assert.Error(t, runHeadless(testConfig(1), 1, -time.Millisecond, &out, zap.NewNop()))
}

func TestRunHeadlessWritesTrace(t *testing.T) {
	cfg := testConfig(3)
	cfg.Trace.Dir = t.TempDir()
	cfg.Trace.Index = true

	var out bytes.Buffer
	require.NoError(t, runHeadless(cfg, 50, 100*time.Millisecond, &out, zap.NewNop()))

	assert.FileExists(t, filepath.Join(cfg.Trace.Dir, "index.db"))
	entries, err := os.ReadDir(filepath.Join(cfg.Trace.Dir, "ticks"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestHandleKey(t *testing.T) {
	sim := newSimulation(testConfig(1), zap.NewNop())
	defer sim.close()

	space := tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
	assert.False(t, handleKey(space, sim, nil, zap.NewNop()))
	assert.True(t, sim.clock.IsPaused())
	assert.False(t, handleKey(space, sim, nil, zap.NewNop()))
	assert.False(t, sim.clock.IsPaused())

	// Mute without audio is a no-op
	assert.False(t, handleKey(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), sim, nil, zap.NewNop()))

	assert.True(t, handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), sim, nil, zap.NewNop()))
	assert.True(t, handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), sim, nil, zap.NewNop()))
}

func TestConfigDumpCommand(t *testing.T) {
	cfgFile = ""
	t.Chdir(t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "dump"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "places: 10")
	assert.Contains(t, out.String(), "favorites:")
}
