package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astromath/internal/astro"
	"github.com/litescript/ls-astromath/internal/report"
	"github.com/litescript/ls-astromath/internal/state"
)

// SparklineWidth is the number of cells in the altitude sparkline.
const SparklineWidth = 40

var sparklineBlocks = []rune("▁▂▃▄▅▆▇█")

func (m Model) renderClock() string {
	s := m.snapshot
	d := s.Date

	lines := []string{
		row("Civil", fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d UTC%+d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, d.UTCOffset)),
		row("Julian Date", fmt.Sprintf("%.6f", s.JulianDate)),
		row("J2000", fmt.Sprintf("%+.6f d", s.J2000)),
		row("GMST", report.FormatHours(s.GMST, false)),
		row("LST", accentStyle.Render(report.FormatHours(s.LST, false))),
		"",
	}

	name := "Target"
	if !s.TargetSet {
		name = "Meridian"
	}
	lines = append(lines,
		row(name, fmt.Sprintf("RA %s  Dec %s", report.FormatHours(s.Target.RightAscension, false), report.FormatDegrees(s.Target.Declination))),
		row("Hour angle", report.FormatHours(s.Local.HourAngle, true)),
		row("Azimuth", report.FormatDegrees360(s.Horizontal.Azimuth)),
		row("Altitude", report.FormatDegrees(s.Horizontal.Altitude)+"  "+renderHorizon(s.AboveHorizon)),
		row("Tier", renderTierBar(s.Tier)),
	)

	if s.TargetSet {
		lines = append(lines,
			row("Window", report.DescribeWindow(s.Window, s.UTCOffset)),
			row("History", renderAltitudeSparkline(s.History, SparklineWidth)),
		)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderMount() string {
	s := m.snapshot
	loc := s.NexStarLocation()

	var rec strings.Builder
	for i, b := range loc {
		if i > 0 {
			rec.WriteByte(' ')
		}
		fmt.Fprintf(&rec, "%02X", b)
	}

	raDec, azAlt := "E", "Z"
	if m.precise {
		raDec, azAlt = "e", "z"
	}

	lines := []string{
		row("Observer", fmt.Sprintf("lat %s  lon %s", report.FormatDegrees(s.Observer.Latitude), report.FormatDegrees(s.Observer.Longitude))),
		row("Axis RA", report.FormatDegrees360(s.Axis.RA)),
		row("Axis Dec", report.FormatDegrees360(s.Axis.Dec)),
		"",
		row("NexStar "+raDec, s.NexStarRADec(m.precise)),
		row("NexStar "+azAlt, s.NexStarAzAlt(m.precise)),
		row("NexStar w", rec.String()),
	}
	return strings.Join(lines, "\n")
}

func renderHorizon(above bool) string {
	if above {
		return upStyle.Render("▲ above horizon")
	}
	return downStyle.Render("▼ below horizon")
}

// tierToBar converts an altitude tier to a 4-character bar.
func tierToBar(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return "████"
	case astro.AltitudeMedium:
		return "██░░"
	case astro.AltitudeLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an altitude tier.
func tierToColor(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return "#8BE9FF"
	case astro.AltitudeMedium:
		return "#9D4EDD"
	case astro.AltitudeLow:
		return "#5A4FCF"
	default:
		return "240"
	}
}

func renderTierBar(tier astro.AltitudeTier) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier))).Render(tierToBar(tier))
}

// renderAltitudeSparkline draws the most recent samples, one cell each.
// Altitudes below the horizon use the lowest block.
func renderAltitudeSparkline(history []state.AltitudeSample, width int) string {
	if len(history) == 0 {
		return dimStyle.Render("collecting...")
	}
	if len(history) > width {
		history = history[len(history)-width:]
	}

	var sb strings.Builder
	for _, s := range history {
		sb.WriteRune(sparklineBlocks[altitudeBlock(s.Altitude)])
	}

	last := history[len(history)-1]
	span := last.Timestamp.Sub(history[0].Timestamp).Round(time.Second)
	return upStyle.Render(sb.String()) + dimStyle.Render(fmt.Sprintf(" %s", span))
}

func altitudeBlock(alt float64) int {
	t := math.Max(0, math.Min(1, alt/(math.Pi/2)))
	idx := int(t * float64(len(sparklineBlocks)-1))
	return idx
}
