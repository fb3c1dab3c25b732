package pullrefresh

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/pullrefresh/retained"
)

// Indicator is the loading animation shown above the content.
// Play and Reset must be idempotent; the controller never reads a result.
type Indicator interface {
	Play()
	Reset()
}

// Config holds the construction-time settings of a Controller.
// Zero numeric fields take their defaults, so a zero DeadZone or
// PullThreshold cannot be expressed; use a small positive value instead.
type Config struct {
	// Height of the fully open indicator, in content units.
	OpenHeight float32 `toml:"open_height"`
	// Pull distance that commits a refresh on release. Independent of OpenHeight.
	PullThreshold float32 `toml:"pull_threshold"`
	// Fraction of the raw drag that becomes pull distance.
	DampingFactor float32 `toml:"damping_factor"`
	// Movement below this on both axes never claims a gesture. Zero means the
	// default of 2.
	DeadZone float32 `toml:"dead_zone"`

	// Pass-throughs for the host's renderer; the controller never reads them.
	BackgroundColor string            `toml:"background_color"`
	IndicatorStyle  map[string]string `toml:"indicator_style,omitempty"`

	Spring SpringSettings `toml:"spring"`

	// Indicator is the loading animation handle. Nil means no animation.
	Indicator Indicator `toml:"-"`
	// Logger receives debug-level transition logs. Nil means slog.Default().
	Logger *slog.Logger `toml:"-"`
}

// SpringSettings is the serializable form of retained.SpringConfig.
type SpringSettings struct {
	DurationMS int    `toml:"duration_ms"`
	Easing     string `toml:"easing"`
}

// DefaultConfig returns the stock pull-to-refresh settings.
func DefaultConfig() Config {
	return Config{
		OpenHeight:      100,
		PullThreshold:   100,
		DampingFactor:   0.5,
		DeadZone:        2,
		BackgroundColor: "white",
		Spring: SpringSettings{
			DurationMS: 400,
			Easing:     "spring",
		},
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.OpenHeight == 0 {
		c.OpenHeight = def.OpenHeight
	}
	if c.PullThreshold == 0 {
		c.PullThreshold = def.PullThreshold
	}
	if c.DampingFactor == 0 {
		c.DampingFactor = def.DampingFactor
	}
	if c.DeadZone == 0 {
		c.DeadZone = def.DeadZone
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = def.BackgroundColor
	}
	if c.Spring.DurationMS == 0 {
		c.Spring.DurationMS = def.Spring.DurationMS
	}
	if c.Spring.Easing == "" {
		c.Spring.Easing = def.Spring.Easing
	}
	return c
}

// Validate reports the first out-of-range field. Zero numeric fields are
// accepted because they are replaced by defaults.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float32
		ok    bool
	}{
		{"open_height", c.OpenHeight, c.OpenHeight >= 0},
		{"pull_threshold", c.PullThreshold, c.PullThreshold >= 0},
		{"damping_factor", c.DampingFactor, c.DampingFactor >= 0},
		{"dead_zone", c.DeadZone, c.DeadZone >= 0},
	}
	for _, chk := range checks {
		if math.IsNaN(float64(chk.value)) || math.IsInf(float64(chk.value), 0) || !chk.ok {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfig, chk.name, chk.value)
		}
	}
	if c.Spring.DurationMS < 0 {
		return fmt.Errorf("%w: spring.duration_ms must not be negative, got %d", ErrInvalidConfig, c.Spring.DurationMS)
	}
	if retained.EasingByName(c.Spring.Easing) == nil {
		return fmt.Errorf("%w: unknown spring.easing %q", ErrInvalidConfig, c.Spring.Easing)
	}
	return nil
}

// SpringConfig converts the serializable spring settings.
func (c Config) SpringConfig() retained.SpringConfig {
	return retained.SpringConfig{
		Duration: time.Duration(c.Spring.DurationMS) * time.Millisecond,
		Easing:   retained.EasingByName(c.Spring.Easing),
	}
}

// ParseConfig decodes a TOML document on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// LoadConfig loads a configuration file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	config, err = ParseConfig(data)
	if err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// MarshalConfig encodes the serializable part of a configuration as TOML.
func MarshalConfig(config Config) ([]byte, error) {
	data, err := toml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SaveConfig writes the configuration to path.
func SaveConfig(path string, config Config) error {
	data, err := MarshalConfig(config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
