// Package script replays recorded gesture scenarios against a controller on a
// virtual clock, so interaction sequences can be checked without a device.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agiangrant/pullrefresh"
)

// ErrInvalidScript is wrapped by every parse or validation failure.
var ErrInvalidScript = errors.New("invalid script")

// Script is one scenario.
type Script struct {
	Name    string          `yaml:"name"`
	Config  ConfigOverrides `yaml:"config"`
	Content ContentSetup    `yaml:"content"`
	Caller  CallerSetup     `yaml:"caller"`
	Steps   []Step          `yaml:"steps"`
}

// ConfigOverrides replace fields of the base configuration when set.
type ConfigOverrides struct {
	OpenHeight    *float32 `yaml:"open_height"`
	PullThreshold *float32 `yaml:"pull_threshold"`
	DampingFactor *float32 `yaml:"damping_factor"`
	DeadZone      *float32 `yaml:"dead_zone"`
	SpringMS      *int     `yaml:"spring_ms"`
	Easing        *string  `yaml:"easing"`
}

// Apply returns base with the overrides applied.
func (o ConfigOverrides) Apply(base pullrefresh.Config) pullrefresh.Config {
	if o.OpenHeight != nil {
		base.OpenHeight = *o.OpenHeight
	}
	if o.PullThreshold != nil {
		base.PullThreshold = *o.PullThreshold
	}
	if o.DampingFactor != nil {
		base.DampingFactor = *o.DampingFactor
	}
	if o.DeadZone != nil {
		base.DeadZone = *o.DeadZone
	}
	if o.SpringMS != nil {
		base.Spring.DurationMS = *o.SpringMS
	}
	if o.Easing != nil {
		base.Spring.Easing = *o.Easing
	}
	return base
}

// ContentSetup sizes the simulated scroll view.
type ContentSetup struct {
	Height   float32 `yaml:"height"`
	Viewport float32 `yaml:"viewport"`
	// AnimateScroll eases scrolls the controller requests as animated
	// instead of jumping.
	AnimateScroll bool `yaml:"animate_scroll"`
}

// CallerSetup describes how the simulated owning screen reacts to OnRefresh.
type CallerSetup struct {
	// AutoConfirm raises IsRefreshing right after OnRefresh fires.
	AutoConfirm bool `yaml:"auto_confirm"`
	// RefreshFor clears IsRefreshing this long after it was raised by
	// AutoConfirm. Zero leaves it raised.
	RefreshFor time.Duration `yaml:"refresh_for"`
}

// Touch phases accepted by Step.Touch.
const (
	TouchStart  = "start"
	TouchMove   = "move"
	TouchEnd    = "end"
	TouchCancel = "cancel"
)

// Content notifications accepted by Step.Content.
const (
	ContentTouchEnd = "touch-end"
	ContentDragEnd  = "drag-end"
)

// Step is one action. Exactly one of Touch, Wait, Refreshing, Scroll or
// Content must be set. Expect, if present, is checked after the action.
type Step struct {
	Touch      string        `yaml:"touch,omitempty"`
	DX         float32       `yaml:"dx,omitempty"`
	DY         float32       `yaml:"dy,omitempty"`
	Wait       time.Duration `yaml:"wait,omitempty"`
	Refreshing *bool         `yaml:"refreshing,omitempty"`
	Scroll     *float32      `yaml:"scroll,omitempty"`
	Content    string        `yaml:"content,omitempty"`
	Expect     *Expectation  `yaml:"expect,omitempty"`
}

// Expectation asserts on controller state after a step.
type Expectation struct {
	State        string   `yaml:"state,omitempty"`
	Lock         string   `yaml:"lock,omitempty"`
	PullHeight   *float32 `yaml:"pull_height,omitempty"`
	ScrollY      *float32 `yaml:"scroll_y,omitempty"`
	RefreshCalls *int     `yaml:"refresh_calls,omitempty"`
}

func (s Step) actions() int {
	n := 0
	if s.Touch != "" {
		n++
	}
	if s.Wait != 0 {
		n++
	}
	if s.Refreshing != nil {
		n++
	}
	if s.Scroll != nil {
		n++
	}
	if s.Content != "" {
		n++
	}
	return n
}

func (s Step) String() string {
	switch {
	case s.Touch == TouchMove:
		return fmt.Sprintf("touch move dx=%g dy=%g", s.DX, s.DY)
	case s.Touch != "":
		return "touch " + s.Touch
	case s.Wait != 0:
		return "wait " + s.Wait.String()
	case s.Refreshing != nil:
		return fmt.Sprintf("refreshing=%t", *s.Refreshing)
	case s.Scroll != nil:
		return fmt.Sprintf("scroll %g", *s.Scroll)
	case s.Content != "":
		return "content " + s.Content
	default:
		return "noop"
	}
}

func (s Step) validate() error {
	if n := s.actions(); n != 1 {
		return fmt.Errorf("step must have exactly one action, has %d", n)
	}
	switch s.Touch {
	case "", TouchStart, TouchMove, TouchEnd, TouchCancel:
	default:
		return fmt.Errorf("unknown touch phase %q", s.Touch)
	}
	switch s.Content {
	case "", ContentTouchEnd, ContentDragEnd:
	default:
		return fmt.Errorf("unknown content notification %q", s.Content)
	}
	if s.Wait < 0 {
		return fmt.Errorf("negative wait %v", s.Wait)
	}
	return nil
}

// Parse decodes and validates a YAML scenario. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i+1, err)
		}
	}
	if s.Content.Viewport == 0 {
		s.Content.Viewport = 400
	}
	if s.Content.Height < s.Content.Viewport {
		s.Content.Height = s.Content.Viewport
	}
	if strings.TrimSpace(s.Name) == "" {
		s.Name = "unnamed"
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
