package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agiangrant/pullrefresh"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.toml")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != "pullrefresh test\n" {
		t.Errorf("output = %q", out)
	}
}

func TestConfigPrintsDefaults(t *testing.T) {
	out, err := execute(t, "config", "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	cfg, err := pullrefresh.ParseConfig([]byte(out))
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, out)
	}
	if cfg.OpenHeight != 100 || cfg.PullThreshold != 100 {
		t.Errorf("open_height = %v, pull_threshold = %v", cfg.OpenHeight, cfg.PullThreshold)
	}
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("PULLREFRESH_OPEN_HEIGHT", "150")

	out, err := execute(t, "config", "--config", missingConfig(t), "--threshold", "42")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	cfg, err := pullrefresh.ParseConfig([]byte(out))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if cfg.PullThreshold != 42 {
		t.Errorf("pull_threshold = %v, want 42", cfg.PullThreshold)
	}
	if cfg.OpenHeight != 150 {
		t.Errorf("open_height = %v, want 150", cfg.OpenHeight)
	}
}

func TestConfigRejectsBadOverride(t *testing.T) {
	_, err := execute(t, "config", "--config", missingConfig(t), "--threshold=-1")
	if !errors.Is(err, pullrefresh.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pullrefresh.toml")

	out, err := execute(t, "init", path, "--config", missingConfig(t), "--open-height", "80")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "Created "+path) {
		t.Errorf("output = %q", out)
	}
	cfg, err := pullrefresh.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.OpenHeight != 80 {
		t.Errorf("open_height = %v, want 80", cfg.OpenHeight)
	}

	if _, err := execute(t, "init", path, "--config", missingConfig(t)); err == nil {
		t.Error("second init without --force succeeded")
	}
	if _, err := execute(t, "init", path, "--config", missingConfig(t), "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestReplay(t *testing.T) {
	script := filepath.Join("..", "..", "..", "internal", "script", "testdata", "threshold_commit.yaml")

	out, err := execute(t, "replay", script, "--config", missingConfig(t))
	if err != nil {
		t.Fatalf("replay error = %v\n%s", err, out)
	}
	for _, want := range []string{"threshold commit", "refreshing", "refresh calls=1 play=1 reset=1", "PASS"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReplayFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.yaml")
	data := "name: wrong\nsteps:\n  - touch: start\n    expect:\n      state: refreshing\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "replay", path, "--config", missingConfig(t))
	if !errors.Is(err, ErrExpectationFailed) {
		t.Fatalf("error = %v, want ErrExpectationFailed", err)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "state = idle, want refreshing") {
		t.Errorf("output missing failure detail:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"error", false},
		{"loud", true},
	}
	for _, tt := range tests {
		_, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestDemoSettings(t *testing.T) {
	t.Setenv("PULLREFRESH_REFRESH_FOR", "2s")

	a := newApp("test")
	a.command()

	s, err := a.decodeDemoSettings()
	if err != nil {
		t.Fatalf("decodeDemoSettings() error = %v", err)
	}
	if s.RefreshFor != 2*time.Second {
		t.Errorf("RefreshFor = %v, want 2s", s.RefreshFor)
	}
	if s.Lines != 50 {
		t.Errorf("Lines = %d, want 50", s.Lines)
	}
}

func TestDemoSettingsRejectsBadDuration(t *testing.T) {
	t.Setenv("PULLREFRESH_REFRESH_FOR", "soon")

	a := newApp("test")
	a.command()

	if _, err := a.decodeDemoSettings(); err == nil {
		t.Error("expected error for bad duration")
	}
}
