package script

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/pullrefresh"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)

			trace, err := Run(s, pullrefresh.DefaultConfig(), nil)
			require.NoError(t, err)
			assert.True(t, trace.Passed(), "expectation failures:\n%s", strings.Join(trace.Failures, "\n"))
			assert.Len(t, trace.Entries, len(s.Steps))
		})
	}
}

func TestRunCountsIndicatorCalls(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "threshold_commit.yaml"))
	require.NoError(t, err)

	trace, err := Run(s, pullrefresh.DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, trace.RefreshCalls)
	assert.Equal(t, 1, trace.Plays)
	assert.Equal(t, 1, trace.Resets)
}

func TestRunReportsFailedExpectation(t *testing.T) {
	s, err := Parse([]byte(`
name: wrong guess
steps:
  - touch: start
  - touch: move
    dy: 20
  - touch: end
    expect:
      state: refreshing
`))
	require.NoError(t, err)

	trace, err := Run(s, pullrefresh.DefaultConfig(), nil)
	require.NoError(t, err)
	require.False(t, trace.Passed())
	assert.Contains(t, trace.Failures[0], "state = idle, want refreshing")
}

func TestScrollIgnoredWhilePullOwnsTouches(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - scroll: 120
    expect:
      scroll_y: 0
      lock: arbiter
`))
	require.NoError(t, err)

	trace, err := Run(s, pullrefresh.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.True(t, trace.Passed(), trace.Failures)
	assert.Equal(t, "ignored: native scrolling disabled", trace.Entries[0].Note)
}

func TestRunRejectsBadConfig(t *testing.T) {
	s, err := Parse([]byte(`
config:
  pull_threshold: -5
steps:
  - touch: start
`))
	require.NoError(t, err)

	_, err = Run(s, pullrefresh.DefaultConfig(), nil)
	require.ErrorIs(t, err, pullrefresh.ErrInvalidConfig)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no steps", "name: empty"},
		{"unknown key", "steps:\n  - touch: start\n    pressure: 3"},
		{"two actions", "steps:\n  - touch: start\n    wait: 1s"},
		{"no action", "steps:\n  - dy: 4"},
		{"unknown touch", "steps:\n  - touch: hover"},
		{"unknown content event", "steps:\n  - content: fling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - wait: 50ms\n"))
	require.NoError(t, err)

	assert.Equal(t, "unnamed", s.Name)
	assert.Equal(t, float32(400), s.Content.Viewport)
	assert.Equal(t, float32(400), s.Content.Height)
	assert.Equal(t, "wait 50ms", s.Steps[0].String())
}

func TestConfigOverrides(t *testing.T) {
	threshold := float32(42)
	easing := "cubic"
	cfg := ConfigOverrides{PullThreshold: &threshold, Easing: &easing}.Apply(pullrefresh.DefaultConfig())

	assert.Equal(t, float32(42), cfg.PullThreshold)
	assert.Equal(t, "cubic", cfg.Spring.Easing)
	assert.Equal(t, float32(100), cfg.OpenHeight)
}
