// Package anim schedules time-based visual effects. The scheduler is
// purely time-and-payload driven: it holds no reference to the grid or
// turn state, and the clock is always passed in by the caller, so
// tests can drive it with a fake time.
package anim

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/hexfield/internal/hex"
)

// ErrInvalidDuration reports an enqueue with a non-positive duration.
var ErrInvalidDuration = errors.New("animation duration must be positive")

// AnimationID identifies one enqueued animation. IDs are sequential
// per scheduler, starting at 1; zero is never issued.
type AnimationID uint64

// Kind names the visual effect an animation drives.
type Kind int

const (
	// KindSlide - a unit gliding between two tiles
	KindSlide Kind = iota
	// KindPulse - a highlight swelling on one tile
	KindPulse
	// KindFade - an overlay fading in and out
	KindFade
	// KindCameraPan - the viewport easing to a new center
	KindCameraPan
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindSlide:
		return "slide"
	case KindPulse:
		return "pulse"
	case KindFade:
		return "fade"
	case KindCameraPan:
		return "camera_pan"
	default:
		return "unknown"
	}
}

// Payload carries the coordinates an effect animates over. Pulses and
// fades use From only; slides and pans use both.
type Payload struct {
	From hex.Coord
	To   hex.Coord
}

// Handle is one scheduled animation.
type Handle struct {
	ID       AnimationID
	Kind     Kind
	Payload  Payload
	Start    time.Time
	Duration time.Duration
	Blocking bool
}

// Frame is a handle with its normalized progress at the last tick,
// ready for the render layer to interpolate.
type Frame struct {
	Handle
	Progress float64 // 0 at start, clamped to 1 at completion
}

// Scheduler is the single authoritative collection of active
// animations, advanced once per rendered frame by Tick.
type Scheduler struct {
	nextID  AnimationID
	handles []Handle
	last    []Frame
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Enqueue schedules an effect starting at now. Durations must be
// positive; zero-length animations are rejected rather than silently
// completed.
func (s *Scheduler) Enqueue(kind Kind, payload Payload, duration time.Duration, blocking bool, now time.Time) (AnimationID, error) {
	if duration <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	id := s.nextID
	s.nextID++
	s.handles = append(s.handles, Handle{
		ID:       id,
		Kind:     kind,
		Payload:  payload,
		Start:    now,
		Duration: duration,
		Blocking: blocking,
	})
	return id, nil
}

// Tick advances every animation to now and returns their frames in
// enqueue order. A handle that reaches progress 1 is included in this
// tick's frames and removed afterwards, so its final frame is
// observable exactly once.
func (s *Scheduler) Tick(now time.Time) []Frame {
	frames := make([]Frame, 0, len(s.handles))
	live := s.handles[:0]
	for _, h := range s.handles {
		p := progress(h, now)
		frames = append(frames, Frame{Handle: h, Progress: p})
		if p < 1 {
			live = append(live, h)
		}
	}
	s.handles = live
	s.last = frames
	return frames
}

// Active returns the frames computed by the most recent Tick. The
// slice is a copy; callers may keep it.
func (s *Scheduler) Active() []Frame {
	out := make([]Frame, len(s.last))
	copy(out, s.last)
	return out
}

// BlockingActive reports whether any animation marked blocking is
// still running. A completed handle stops blocking as soon as the
// tick that retired it finishes.
func (s *Scheduler) BlockingActive() bool {
	for _, h := range s.handles {
		if h.Blocking {
			return true
		}
	}
	return false
}

// progress returns elapsed/duration clamped to [0, 1].
func progress(h Handle, now time.Time) float64 {
	elapsed := now.Sub(h.Start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= h.Duration {
		return 1
	}
	return float64(elapsed) / float64(h.Duration)
}
