package astro

import (
	"errors"
	"math"
	"time"
)

// VisibilityWindow is one rise-transit-set cycle of a fixed target.
type VisibilityWindow struct {
	Rise        time.Time // zero if the target was already up at the start
	Transit     time.Time // time of highest altitude
	Set         time.Time // zero if the target had not set by the end
	MaxAltitude float64   // radians
	Valid       bool      // a window was found in the searched span
	Circumpolar bool      // never sets during the span
	NeverRises  bool      // never rises during the span
}

// Errors for visibility calculations.
var (
	ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")
)

type altitudeSample struct {
	t   time.Time
	alt float64
}

// AltitudeAt returns the target's altitude seen from loc at instant t.
func AltitudeAt(loc GeographicLocation, target EquatorialCoords, t time.Time) float64 {
	lst := LocalSiderealTime(CalendarDateIn(t, 0), loc)
	return EquatorialToHorizontal(loc, EquatorialToLocal(target, lst)).Altitude
}

func sampleAltitudes(loc GeographicLocation, target EquatorialCoords, start time.Time, span, step time.Duration) []altitudeSample {
	if step <= 0 {
		return nil
	}
	n := int(span/step) + 1
	samples := make([]altitudeSample, n)
	for i := range samples {
		t := start.Add(time.Duration(i) * step)
		samples[i] = altitudeSample{t: t, alt: AltitudeAt(loc, target, t)}
	}
	return samples
}

// RiseSet finds the first rise, transit and set of a fixed target within
// span after start, sampling its altitude every step. Crossings of the
// horizon are interpolated linearly between samples. A target already up at
// start has no rise; its window runs to the first set.
func RiseSet(loc GeographicLocation, target EquatorialCoords, start time.Time, span, step time.Duration) (VisibilityWindow, error) {
	samples := sampleAltitudes(loc, target, start, span, step)
	if len(samples) < 3 {
		return VisibilityWindow{}, ErrInsufficientSamples
	}

	minAlt := math.Pi / 2
	maxAlt := -math.Pi / 2
	maxIdx := 0
	for i, s := range samples {
		if s.alt < minAlt {
			minAlt = s.alt
		}
		if s.alt > maxAlt {
			maxAlt = s.alt
			maxIdx = i
		}
	}

	if minAlt > 0 {
		return VisibilityWindow{
			Transit:     samples[maxIdx].t,
			MaxAltitude: maxAlt,
			Valid:       true,
			Circumpolar: true,
		}, nil
	}
	if maxAlt < 0 {
		return VisibilityWindow{Valid: true, NeverRises: true}, nil
	}

	var w VisibilityWindow
	riseIdx, setIdx := 0, len(samples)-1
	if samples[0].alt <= 0 {
		for i := 1; i < len(samples); i++ {
			prev, curr := samples[i-1], samples[i]
			if prev.alt <= 0 && curr.alt > 0 {
				w.Rise = interpolateCrossing(prev, curr)
				riseIdx = i
				break
			}
		}
	}

	for i := riseIdx + 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if prev.alt > 0 && curr.alt <= 0 {
			w.Set = interpolateCrossing(prev, curr)
			setIdx = i - 1
			break
		}
	}

	peak := riseIdx
	for i := riseIdx + 1; i <= setIdx; i++ {
		if samples[i].alt > samples[peak].alt {
			peak = i
		}
	}

	w.Transit, w.MaxAltitude = refineTransit(samples, peak)
	if !w.Rise.IsZero() && w.Transit.Before(w.Rise) {
		w.Transit = w.Rise
	}
	if !w.Set.IsZero() && w.Transit.After(w.Set) {
		w.Transit = w.Set
	}
	w.Valid = !w.Rise.IsZero() || !w.Set.IsZero() || samples[0].alt > 0
	return w, nil
}

// refineTransit fits a parabola through the highest sample and its
// neighbours.
func refineTransit(samples []altitudeSample, idx int) (time.Time, float64) {
	peak := samples[idx]
	if idx == 0 || idx == len(samples)-1 {
		return peak.t, peak.alt
	}

	// y = a·t² + b·t + c with t = -1, 0, +1 at the three samples
	y0, y1, y2 := samples[idx-1].alt, peak.alt, samples[idx+1].alt
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2
	if a >= 0 {
		return peak.t, peak.alt
	}

	tMax := math.Max(-1, math.Min(1, -b/(2*a)))
	dt := peak.t.Sub(samples[idx-1].t)
	return peak.t.Add(time.Duration(float64(dt) * tMax)), a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds when the altitude crosses the horizon between
// two samples.
func interpolateCrossing(s1, s2 altitudeSample) time.Time {
	if math.Abs(s2.alt-s1.alt) < 1e-9 {
		return s1.t
	}
	fraction := math.Max(0, math.Min(1, -s1.alt/(s2.alt-s1.alt)))
	return s1.t.Add(time.Duration(float64(s2.t.Sub(s1.t)) * fraction))
}

// AltitudeTier buckets an altitude for display.
type AltitudeTier int

const (
	AltitudeNone   AltitudeTier = iota // below horizon
	AltitudeLow                        // 0-15 degrees
	AltitudeMedium                     // 15-45 degrees
	AltitudeHigh                       // 45+ degrees
)

// TierForAltitude returns the display tier of an altitude in radians.
func TierForAltitude(alt float64) AltitudeTier {
	switch {
	case alt <= 0:
		return AltitudeNone
	case alt < 15*math.Pi/180:
		return AltitudeLow
	case alt < 45*math.Pi/180:
		return AltitudeMedium
	default:
		return AltitudeHigh
	}
}
