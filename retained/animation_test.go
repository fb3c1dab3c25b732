package retained

import (
	"math"
	"testing"
	"time"
)

func TestEasingEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		easing EasingFunc
	}{
		{"linear", EaseLinear},
		{"ease-out", EaseOutQuad},
		{"cubic", EaseOutCubic},
		{"back", EaseOutBack},
		{"spring", EaseSpring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.easing(0); math.Abs(got) > 1e-9 {
				t.Errorf("easing(0) = %v, want 0", got)
			}
			if got := tt.easing(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("easing(1) = %v, want 1", got)
			}
		})
	}
}

func TestEasingByName(t *testing.T) {
	if EasingByName("") == nil {
		t.Error("empty name should select the default spring")
	}
	if EasingByName("linear") == nil {
		t.Error("expected linear easing")
	}
	if EasingByName("wobble") != nil {
		t.Error("unknown name should return nil")
	}
}

func TestRegistryTickCompletes(t *testing.T) {
	reg := NewAnimationRegistry()
	start := time.Unix(0, 0)

	var last float64
	completed := 0
	reg.Animate().
		Duration(100 * time.Millisecond).
		Easing(EaseLinear).
		OnComplete(func() { completed++ }).
		Custom(func(p float64) { last = p })

	if !reg.Tick(start) {
		t.Fatal("expected animation to be active after first tick")
	}
	if last != 0 {
		t.Errorf("first tick progress = %v, want 0", last)
	}

	reg.Tick(start.Add(50 * time.Millisecond))
	if math.Abs(last-0.5) > 1e-9 {
		t.Errorf("mid progress = %v, want 0.5", last)
	}

	if reg.Tick(start.Add(100 * time.Millisecond)) {
		t.Error("expected no active animations after completion")
	}
	if last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}
	if completed != 1 {
		t.Errorf("onComplete called %d times, want 1", completed)
	}
}

func TestRegistryCancelSkipsCompletion(t *testing.T) {
	reg := NewAnimationRegistry()
	start := time.Unix(0, 0)

	completed := false
	anim := reg.Animate().
		Duration(10 * time.Millisecond).
		OnComplete(func() { completed = true }).
		Custom(func(float64) {})

	reg.Tick(start)
	anim.Cancel()
	reg.Tick(start.Add(time.Second))

	if completed {
		t.Error("cancelled animation should not complete")
	}
	if reg.Count() != 0 {
		t.Errorf("Count() = %d, want 0", reg.Count())
	}
}

func TestRegistryActiveChange(t *testing.T) {
	reg := NewAnimationRegistry()
	var transitions []bool
	reg.OnActiveChange(func(active bool) { transitions = append(transitions, active) })

	start := time.Unix(0, 0)
	reg.Animate().Duration(10 * time.Millisecond).Custom(func(float64) {})
	reg.Tick(start)
	reg.Tick(start.Add(20 * time.Millisecond))

	if len(transitions) != 2 || !transitions[0] || transitions[1] {
		t.Errorf("transitions = %v, want [true false]", transitions)
	}
}

func TestRegistryCallbackMayStartAnimation(t *testing.T) {
	reg := NewAnimationRegistry()
	start := time.Unix(0, 0)

	chained := false
	reg.Animate().
		Duration(10 * time.Millisecond).
		OnComplete(func() {
			reg.Animate().Duration(10 * time.Millisecond).Custom(func(float64) { chained = true })
		}).
		Custom(func(float64) {})

	reg.Tick(start)
	if !reg.Tick(start.Add(10 * time.Millisecond)) {
		t.Fatal("expected chained animation to keep the registry active")
	}
	reg.Tick(start.Add(20 * time.Millisecond))
	if !chained {
		t.Error("chained animation never ran")
	}
}

func TestRegistryLoop(t *testing.T) {
	reg := NewAnimationRegistry()
	start := time.Unix(0, 0)

	anim := reg.Animate().Duration(10 * time.Millisecond).Loop().Custom(func(float64) {})
	reg.Tick(start)
	if !reg.Tick(start.Add(time.Second)) {
		t.Error("looping animation should stay active")
	}
	anim.Cancel()
	if reg.Tick(start.Add(2 * time.Second)) {
		t.Error("cancelled loop should be removed")
	}
}
