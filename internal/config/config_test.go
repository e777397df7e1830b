package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
circuit: arbiter-en
width: 3
cycles: 2
commit_notify: true
log_level: debug
trace:
  vcd: out.vcd
  signals: [reqs, grants]
vectors:
  - in: {en: 1, reqs: 7}
    out: {grants: 1}
  - in: {reqs: 0}
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Circuit:       "arbiter-en",
		Width:         3,
		Cycles:        2,
		MaxIterations: rtlsim.DefaultMaxIterations,
		CommitNotify:  true,
		LogLevel:      "debug",
		Trace:         Trace{VCD: "out.vcd", Signals: []string{"reqs", "grants"}},
		Vectors: []hwtest.Vector{
			{In: map[string]uint64{"en": 1, "reqs": 7}, Out: map[string]uint64{"grants": 1}},
			{In: map[string]uint64{"reqs": 0}},
		},
	}, cfg)
	assert.True(t, cfg.Trace.Enabled())
	assert.Len(t, cfg.Options(), 2)
}

func TestParse_empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Trace.Enabled())
}

func TestParse_invalid(t *testing.T) {
	td := []struct {
		name string
		yaml string
		err  string
	}{
		{"unknown_field", "circuits: arbiter", "field circuits not found"},
		{"unknown_circuit", "circuit: cpu", `unknown circuit "cpu"`},
		{"width_zero", "width: 0", "width must be in [1, 64], got 0"},
		{"width_large", "width: 65", "width must be in [1, 64], got 65"},
		{"negative_cycles", "cycles: -1", "cycles must not be negative"},
		{"negative_iterations", "max_iterations: -5", "max_iterations must not be negative"},
		{"log_level", "log_level: loud", "log_level"},
		{"empty_vector", "vectors: [{}]", "vectors[0]: empty vector"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(d.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("circuit: sorter\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sorter", cfg.Circuit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("circuit: nope\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config "+path)
}

func TestCircuits(t *testing.T) {
	assert.Equal(t, []string{"arbiter", "arbiter-en", "sorter", "sorter-flat"}, Circuits())
}
