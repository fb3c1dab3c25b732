// Package retained provides the frame-driven animation registry, animated
// values, scroll areas and pooled input events the pull controller runs on.
package retained

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// AnimationID uniquely identifies an animation.
type AnimationID uint64

var nextAnimationID atomic.Uint64

func newAnimationID() AnimationID {
	return AnimationID(nextAnimationID.Add(1))
}

// EasingFunc defines how animation progress maps to value progress.
// Input t is 0-1 (time progress), output is 0-1 (value progress).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseOutQuad - decelerate to zero
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseOutCubic - smooth deceleration (good for UI)
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseOutBack - slight overshoot then settle
	EaseOutBack EasingFunc = func(t float64) float64 {
		c1 := 1.70158
		c3 := c1 + 1
		return 1 + c3*(t-1)*(t-1)*(t-1) + c1*(t-1)*(t-1)
	}

	// EaseSpring - underdamped spring that lands exactly on 1 at t=1.
	// cos(2.5*pi) is zero, so the envelope never leaves a residue at the end.
	EaseSpring EasingFunc = func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return 1 - math.Exp(-6*t)*math.Cos(2.5*math.Pi*t)
	}
)

// EasingByName returns the easing function for a given name.
// Returns nil if the name is unknown.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-out":
		return EaseOutQuad
	case "cubic":
		return EaseOutCubic
	case "back":
		return EaseOutBack
	case "spring", "":
		return EaseSpring
	default:
		return nil
	}
}

// Animation is a single running tween owned by an AnimationRegistry.
type Animation struct {
	id         AnimationID
	startTime  time.Time // zero until the first Tick sees it
	duration   time.Duration
	update     func(progress float64) // Called each frame with eased progress 0-1
	onComplete func()                 // Called when animation finishes
	easing     EasingFunc
	loop       bool // If true, animation repeats forever
	cancelled  atomic.Bool
}

// ID returns the animation's unique identifier.
func (a *Animation) ID() AnimationID {
	return a.id
}

// Cancel stops the animation. Its completion callback never runs.
func (a *Animation) Cancel() {
	a.cancelled.Store(true)
}

// IsCancelled returns whether the animation was cancelled.
func (a *Animation) IsCancelled() bool {
	return a.cancelled.Load()
}

// AnimationRegistry manages active animations and reports when frame ticks are needed.
//
// The registry is driven by the host: call Tick once per frame from the same
// goroutine that delivers input. Update functions and completion callbacks run
// inside Tick, after the registry lock has been released, so they may freely
// start or cancel other animations.
type AnimationRegistry struct {
	mu         sync.RWMutex
	animations map[AnimationID]*Animation

	// Callback when animation state changes (for the host to start or stop frame ticks)
	onActiveChange func(hasActive bool)
}

// NewAnimationRegistry creates a new animation registry.
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		animations: make(map[AnimationID]*Animation),
	}
}

// OnActiveChange sets the callback for when animations become active/inactive.
func (r *AnimationRegistry) OnActiveChange(fn func(hasActive bool)) {
	r.mu.Lock()
	r.onActiveChange = fn
	r.mu.Unlock()
}

// Add registers a new animation.
func (r *AnimationRegistry) Add(anim *Animation) {
	r.mu.Lock()
	wasEmpty := len(r.animations) == 0
	r.animations[anim.id] = anim
	callback := r.onActiveChange
	r.mu.Unlock()

	if wasEmpty && callback != nil {
		callback(true)
	}
}

// Remove unregisters an animation.
func (r *AnimationRegistry) Remove(id AnimationID) {
	r.mu.Lock()
	_, existed := r.animations[id]
	delete(r.animations, id)
	isEmpty := len(r.animations) == 0
	callback := r.onActiveChange
	r.mu.Unlock()

	if existed && isEmpty && callback != nil {
		callback(false)
	}
}

// HasActive returns true if there are any running animations.
func (r *AnimationRegistry) HasActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations) > 0
}

// Count returns the number of active animations.
func (r *AnimationRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations)
}

type frameUpdate struct {
	anim     *Animation
	progress float64
}

// Tick advances all animations to now and removes completed ones.
// An animation's clock starts at the first Tick after it was added.
// Returns true if any animations are still active.
func (r *AnimationRegistry) Tick(now time.Time) bool {
	r.mu.Lock()

	var (
		removed    int
		updates    []frameUpdate
		toComplete []*Animation
	)

	for id, anim := range r.animations {
		if anim.cancelled.Load() {
			delete(r.animations, id)
			removed++
			continue
		}

		if anim.startTime.IsZero() {
			anim.startTime = now
		}
		elapsed := now.Sub(anim.startTime)

		if elapsed >= anim.duration {
			if anim.loop {
				anim.startTime = now
				elapsed = 0
			} else {
				delete(r.animations, id)
				removed++
				updates = append(updates, frameUpdate{anim: anim, progress: anim.easing(1.0)})
				toComplete = append(toComplete, anim)
				continue
			}
		}

		t := 0.0
		if anim.duration > 0 {
			t = clamp(float64(elapsed)/float64(anim.duration), 0, 1)
		}
		updates = append(updates, frameUpdate{anim: anim, progress: anim.easing(t)})
	}

	hasActive := len(r.animations) > 0
	callback := r.onActiveChange
	r.mu.Unlock()

	for _, u := range updates {
		// An earlier update in this frame may have cancelled a later animation.
		if u.anim.cancelled.Load() {
			continue
		}
		if u.anim.update != nil {
			u.anim.update(u.progress)
		}
	}

	for _, anim := range toComplete {
		if anim.onComplete != nil && !anim.cancelled.Load() {
			anim.onComplete()
		}
	}

	if removed > 0 && !hasActive && callback != nil {
		callback(false)
	}

	return r.HasActive()
}

// ============================================================================
// Animation Builder API
// ============================================================================

// AnimationBuilder provides a fluent API for creating animations.
type AnimationBuilder struct {
	registry   *AnimationRegistry
	duration   time.Duration
	easing     EasingFunc
	loop       bool
	onComplete func()
}

// Animate starts building an animation on the registry.
func (r *AnimationRegistry) Animate() *AnimationBuilder {
	return &AnimationBuilder{
		registry: r,
		duration: 300 * time.Millisecond,
		easing:   EaseOutCubic,
	}
}

// Duration sets how long the animation runs.
func (b *AnimationBuilder) Duration(d time.Duration) *AnimationBuilder {
	b.duration = d
	return b
}

// Easing sets the easing function.
func (b *AnimationBuilder) Easing(fn EasingFunc) *AnimationBuilder {
	b.easing = fn
	return b
}

// Loop makes the animation repeat forever until cancelled.
func (b *AnimationBuilder) Loop() *AnimationBuilder {
	b.loop = true
	return b
}

// OnComplete sets a callback for when the animation finishes.
func (b *AnimationBuilder) OnComplete(fn func()) *AnimationBuilder {
	b.onComplete = fn
	return b
}

// FromTo animates a float value between two endpoints, reporting each frame to set.
func (b *AnimationBuilder) FromTo(from, to float32, set func(float32)) *Animation {
	return b.Custom(func(progress float64) {
		set(lerp(from, to, float32(progress)))
	})
}

// Custom creates an animation with a custom update function.
// The update function receives eased progress, nominally 0-1.
func (b *AnimationBuilder) Custom(update func(progress float64)) *Animation {
	anim := &Animation{
		id:         newAnimationID(),
		duration:   b.duration,
		easing:     b.easing,
		loop:       b.loop,
		onComplete: b.onComplete,
		update:     update,
	}

	b.registry.Add(anim)
	return anim
}

// ============================================================================
// Helper Functions
// ============================================================================

// lerp linearly interpolates between two float32 values.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
