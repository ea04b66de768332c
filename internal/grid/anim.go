package grid

import (
	"math"
	"time"
)

// DefaultTransition is how long a track resize takes.
const DefaultTransition = 400 * time.Millisecond

// Ease maps linear progress p in [0,1] through the CSS "ease" timing curve,
// cubic-bezier(0.25, 0.1, 0.25, 1).
func Ease(p float64) float64 {
	return cubicBezier(0.25, 0.1, 0.25, 1, p)
}

// cubicBezier evaluates a CSS timing function at x. The curve's x(t) is
// inverted with Newton iterations, falling back to bisection when the slope
// is too flat.
func cubicBezier(x1, y1, x2, y2, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-7
	t := x
	for i := 0; i < 8; i++ {
		diff := sampleX(t) - x
		if math.Abs(diff) < epsilon {
			return sampleY(t)
		}
		d := slopeX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= diff / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := sampleX(t)
		if math.Abs(v-x) < epsilon {
			break
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		next := (hi-lo)/2 + lo
		if next == t {
			break
		}
		t = next
	}
	return sampleY(t)
}

// Tween interpolates a track vector from one value to another over a fixed
// duration. The zero value is settled at all-zero tracks.
type Tween struct {
	from, to [Tracks]float64
	start    time.Time
	duration time.Duration
}

// NewTween returns a tween already settled at v.
func NewTween(v [Tracks]float64) Tween {
	return Tween{from: v, to: v}
}

// At returns the interpolated tracks at time now.
func (tw Tween) At(now time.Time) [Tracks]float64 {
	p := tw.progress(now)
	if p >= 1 {
		return tw.to
	}
	e := Ease(p)
	var out [Tracks]float64
	for i := range out {
		out[i] = tw.from[i] + (tw.to[i]-tw.from[i])*e
	}
	return out
}

// Done reports whether the tween has reached its target at time now.
func (tw Tween) Done(now time.Time) bool {
	return tw.progress(now) >= 1
}

// Retarget starts a new transition towards to from wherever the tween is at
// now, so an interrupted resize continues smoothly.
func (tw *Tween) Retarget(to [Tracks]float64, now time.Time, d time.Duration) {
	if to == tw.to {
		return
	}
	tw.from = tw.At(now)
	tw.to = to
	tw.start = now
	tw.duration = d
}

func (tw Tween) progress(now time.Time) float64 {
	if tw.duration <= 0 {
		return 1
	}
	elapsed := now.Sub(tw.start)
	if elapsed <= 0 {
		return 0
	}
	return math.Min(1, float64(elapsed)/float64(tw.duration))
}
