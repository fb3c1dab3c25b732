package retained

import (
	"time"
)

// ============================================================================
// Scroll Area
// ============================================================================

// ScrollToConfig configures a scroll animation.
type ScrollToConfig struct {
	Duration   time.Duration // Animation duration (default: 250ms)
	Easing     EasingFunc    // Easing function (default: EaseOutCubic)
	OnComplete func()        // Called when animation completes
}

// DefaultScrollToConfig returns sensible defaults for scroll animations.
func DefaultScrollToConfig() ScrollToConfig {
	return ScrollToConfig{
		Duration: 250 * time.Millisecond,
		Easing:   EaseOutCubic,
	}
}

// ScrollArea is the vertical scroll position of a scrollable container.
// Offsets are clamped to [0, MaxScrollY] and every offset reached is
// reported through onScroll, including the frames of an animated scroll.
type ScrollArea struct {
	registry       *AnimationRegistry
	cfg            ScrollToConfig
	contentHeight  float32
	viewportHeight float32
	scrollY        float32
	anim           *Animation
	onScroll       func(y float32)
}

// NewScrollArea creates a scroll area at offset 0.
func NewScrollArea(registry *AnimationRegistry, contentHeight, viewportHeight float32, cfg ScrollToConfig, onScroll func(y float32)) *ScrollArea {
	if cfg.Duration == 0 {
		cfg.Duration = 250 * time.Millisecond
	}
	if cfg.Easing == nil {
		cfg.Easing = EaseOutCubic
	}
	return &ScrollArea{
		registry:       registry,
		cfg:            cfg,
		contentHeight:  contentHeight,
		viewportHeight: viewportHeight,
		onScroll:       onScroll,
	}
}

// ScrollY returns the current offset.
func (s *ScrollArea) ScrollY() float32 {
	return s.scrollY
}

// MaxScrollY is the largest offset that still fills the viewport.
func (s *ScrollArea) MaxScrollY() float32 {
	if m := s.contentHeight - s.viewportHeight; m > 0 {
		return m
	}
	return 0
}

// Clamp limits y to the scrollable range.
func (s *ScrollArea) Clamp(y float32) float32 {
	return float32(clamp(float64(y), 0, float64(s.MaxScrollY())))
}

// ScrollTo moves to y, clamped. An animated scroll eases from the current
// offset and is returned so the caller may cancel it; a new ScrollTo cancels
// the one in flight.
func (s *ScrollArea) ScrollTo(y float32, animated bool) *Animation {
	if s.anim != nil {
		s.anim.Cancel()
		s.anim = nil
	}
	y = s.Clamp(y)
	if !animated || s.registry == nil {
		s.set(y)
		return nil
	}

	builder := s.registry.Animate().
		Duration(s.cfg.Duration).
		Easing(s.cfg.Easing)
	if s.cfg.OnComplete != nil {
		builder = builder.OnComplete(s.cfg.OnComplete)
	}
	s.anim = builder.FromTo(s.scrollY, y, s.set)
	return s.anim
}

func (s *ScrollArea) set(y float32) {
	s.scrollY = y
	if s.onScroll != nil {
		s.onScroll(y)
	}
}
