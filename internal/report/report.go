// Package report renders state snapshots as text, JSON and NexStar replies
// for headless output.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-astromath/internal/astro"
	"github.com/litescript/ls-astromath/internal/state"
)

const ruleWidth = 60

var headingStyle = lipgloss.NewStyle().Bold(true)

// FormatDegrees renders an angle in radians as signed degrees:minutes:seconds.
func FormatDegrees(rad float64) string {
	return astro.FormatSexagesimal(astro.RadiansToSexagesimal(rad))
}

// FormatDegrees360 renders an angle in radians as unsigned
// degrees:minutes:seconds in [0°, 360°), for azimuths and mount axes.
func FormatDegrees360(rad float64) string {
	d := deg(astro.NormalizeToTwoPi(rad))
	min := 60 * (d - math.Trunc(d))
	sec := 60 * (min - math.Trunc(min))
	return fmt.Sprintf(" %d:%02d:%02d", int(d), int(min), int(sec))
}

// FormatHours renders an angle in radians as hours:minutes:seconds. Angles
// are reduced to (-12h, 12h] when signed is set and to [0h, 24h) otherwise.
func FormatHours(rad float64, signed bool) string {
	if signed {
		rad = astro.NormalizePi(rad)
	} else {
		rad = astro.NormalizeToTwoPi(rad)
	}
	// Dividing by 15 maps hours onto the degree field.
	return astro.FormatSexagesimal(astro.RadiansToSexagesimal(rad / 15))
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// WriteSummary writes a fixed-width text block to the given writer.
func WriteSummary(w io.Writer, snap state.Snapshot) {
	fmt.Fprintf(w, "AstroMath @ %s\n", snap.Time.UTC().Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	fmt.Fprintf(w, "%-11s lat %s  lon %s  UTC%+d\n", "Observer",
		FormatDegrees(snap.Observer.Latitude), FormatDegrees(snap.Observer.Longitude), snap.UTCOffset)
	fmt.Fprintf(w, "%-11s %04d-%02d-%02d %02d:%02d:%02d\n", "Civil",
		snap.Date.Year, snap.Date.Month, snap.Date.Day, snap.Date.Hour, snap.Date.Minute, snap.Date.Second)
	fmt.Fprintf(w, "%-11s JD %.6f  J2000 %+.6f\n", "Julian", snap.JulianDate, snap.J2000)
	fmt.Fprintf(w, "%-11s GMST %s  LST %s\n", "Sidereal",
		FormatHours(snap.GMST, false), FormatHours(snap.LST, false))

	target := "Target"
	if !snap.TargetSet {
		target = "Meridian"
	}
	fmt.Fprintf(w, "%-11s RA %s  Dec %s\n", target,
		FormatHours(snap.Target.RightAscension, false), FormatDegrees(snap.Target.Declination))
	fmt.Fprintf(w, "%-11s HA %s  Dec %s\n", "Local",
		FormatHours(snap.Local.HourAngle, true), FormatDegrees(snap.Local.Declination))

	horizon := "below horizon"
	if snap.AboveHorizon {
		horizon = "above horizon"
	}
	fmt.Fprintf(w, "%-11s Az %s  Alt %s  (%s)\n", "Horizontal",
		FormatDegrees360(snap.Horizontal.Azimuth), FormatDegrees(snap.Horizontal.Altitude), horizon)
	fmt.Fprintf(w, "%-11s RA %s  Dec %s\n", "Mount axes",
		FormatDegrees360(snap.Axis.RA), FormatDegrees360(snap.Axis.Dec))

	if snap.TargetSet {
		fmt.Fprintf(w, "%-11s %s\n", "Window", DescribeWindow(snap.Window, snap.UTCOffset))
	}
}

// DescribeWindow summarizes a visibility window in one line, with times
// shown in the observer's zone.
func DescribeWindow(win astro.VisibilityWindow, utcOffset int) string {
	zone := time.FixedZone("", utcOffset*3600)
	clock := func(t time.Time) string {
		if t.IsZero() {
			return "--:--"
		}
		return t.In(zone).Format("15:04")
	}

	switch {
	case !win.Valid:
		return "no rise or set in the next day"
	case win.NeverRises:
		return "never rises"
	case win.Circumpolar:
		return fmt.Sprintf("circumpolar, transit %s at %.1f°", clock(win.Transit), deg(win.MaxAltitude))
	}
	return fmt.Sprintf("rise %s  transit %s (%.1f°)  set %s",
		clock(win.Rise), clock(win.Transit), deg(win.MaxAltitude), clock(win.Set))
}

// WriteDetailed writes every angle with unit symbols and tenths of a
// second.
func WriteDetailed(w io.Writer, snap state.Snapshot) {
	fmt.Fprintln(w, headingStyle.Render("Observer"))
	fmt.Fprintf(w, "  latitude        %.1s\n", sexa.FmtAngle(unit.Angle(snap.Observer.Latitude)))
	fmt.Fprintf(w, "  longitude       %.1s\n", sexa.FmtAngle(unit.Angle(snap.Observer.Longitude)))

	fmt.Fprintln(w, headingStyle.Render("Time"))
	fmt.Fprintf(w, "  UTC             %s\n", snap.Time.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(w, "  Julian Date     %.6f\n", snap.JulianDate)
	fmt.Fprintf(w, "  J2000 days      %.6f\n", snap.J2000)
	fmt.Fprintf(w, "  GMST            %.1s\n", sexa.FmtRA(unit.RA(snap.GMST)))
	fmt.Fprintf(w, "  LST             %.1s\n", sexa.FmtRA(unit.RA(snap.LST)))

	fmt.Fprintln(w, headingStyle.Render("Target"))
	fmt.Fprintf(w, "  right ascension %.1s\n", sexa.FmtRA(unit.RA(snap.Target.RightAscension)))
	fmt.Fprintf(w, "  declination     %.1s\n", sexa.FmtAngle(unit.Angle(snap.Target.Declination)))
	fmt.Fprintf(w, "  hour angle      %.1s\n", sexa.FmtHourAngle(unit.HourAngle(snap.Local.HourAngle)))
	fmt.Fprintf(w, "  azimuth         %.1s\n", sexa.FmtAngle(unit.Angle(snap.Horizontal.Azimuth)))
	fmt.Fprintf(w, "  altitude        %.1s\n", sexa.FmtAngle(unit.Angle(snap.Horizontal.Altitude)))
	fmt.Fprintf(w, "  axis RA         %.1s\n", sexa.FmtAngle(unit.Angle(snap.Axis.RA)))
	fmt.Fprintf(w, "  axis Dec        %.1s\n", sexa.FmtAngle(unit.Angle(snap.Axis.Dec)))
}

// WriteNexStar writes the snapshot as the replies a NexStar hand
// controller would give to the position and location queries.
func WriteNexStar(w io.Writer, snap state.Snapshot) {
	fmt.Fprintf(w, "E %s\n", snap.NexStarRADec(false))
	fmt.Fprintf(w, "e %s\n", snap.NexStarRADec(true))
	fmt.Fprintf(w, "Z %s\n", snap.NexStarAzAlt(false))
	fmt.Fprintf(w, "z %s\n", snap.NexStarAzAlt(true))

	loc := snap.NexStarLocation()
	fields := make([]string, len(loc))
	for i, b := range loc {
		fields[i] = fmt.Sprintf("%02X", b)
	}
	fmt.Fprintf(w, "w %s\n", strings.Join(fields, " "))
}
