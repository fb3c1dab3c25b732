package retained

import (
	"math"
	"time"
)

// SpringConfig configures how a Value springs toward a target.
type SpringConfig struct {
	Duration time.Duration // Settle time (default: 400ms)
	Easing   EasingFunc    // Curve (default: EaseSpring)
}

// DefaultSpringConfig returns the spring used when none is configured.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Duration: 400 * time.Millisecond,
		Easing:   EaseSpring,
	}
}

// Value is an animated scalar. It can be set directly (tracking a finger) or
// sprung toward a target on the registry's frame schedule.
//
// A Value is not safe for concurrent use. Set it, spring it and Tick its
// registry from one goroutine.
type Value struct {
	registry *AnimationRegistry
	spring   SpringConfig
	current  float32
	active   *Animation
	onChange func(float32)
}

// NewValue creates a value starting at initial. onChange, if non-nil, is called
// every time the current value changes, either from SetTo or from a spring frame.
func NewValue(registry *AnimationRegistry, initial float32, spring SpringConfig, onChange func(float32)) *Value {
	def := DefaultSpringConfig()
	if spring.Duration <= 0 {
		spring.Duration = def.Duration
	}
	if spring.Easing == nil {
		spring.Easing = def.Easing
	}
	return &Value{
		registry: registry,
		spring:   spring,
		current:  initial,
		onChange: onChange,
	}
}

// Current returns the value as of the last SetTo or spring frame.
func (v *Value) Current() float32 {
	return v.current
}

// SetTo jumps to x, cancelling any spring in flight.
func (v *Value) SetTo(x float32) {
	v.stop()
	v.set(x)
}

// SpringTo starts animating toward target and returns immediately.
// Any earlier spring is cancelled without its settle callback. onSettled, if
// non-nil, runs from the registry's Tick once the value has reached target.
func (v *Value) SpringTo(target float32, onSettled func()) *Animation {
	v.stop()

	from := v.current
	builder := v.registry.Animate().
		Duration(v.spring.Duration).
		Easing(v.spring.Easing)

	var anim *Animation
	builder.OnComplete(func() {
		if v.active == anim {
			v.active = nil
		}
		if onSettled != nil {
			onSettled()
		}
	})
	anim = builder.Custom(func(progress float64) {
		if progress >= 1 {
			v.set(target)
			return
		}
		v.set(lerp(from, target, float32(progress)))
	})
	v.active = anim
	return anim
}

func (v *Value) stop() {
	if v.active != nil {
		v.active.Cancel()
		v.active = nil
	}
}

func (v *Value) set(x float32) {
	if x == v.current {
		return
	}
	v.current = x
	if v.onChange != nil {
		v.onChange(x)
	}
}

// Interpolate maps v from [inMin, inMax] onto [outMin, outMax], clamping to the
// output range. An empty input range maps everything to outMin.
func Interpolate(v, inMin, inMax, outMin, outMax float32) float32 {
	if inMin == inMax {
		return outMin
	}
	t := float64((v - inMin) / (inMax - inMin))
	if math.IsNaN(t) {
		return outMin
	}
	return lerp(outMin, outMax, float32(clamp(t, 0, 1)))
}
