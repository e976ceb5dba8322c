package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/litescript/ls-astromath/internal/astro"
	"github.com/litescript/ls-astromath/internal/state"
)

// SnapshotExport is the JSON-serializable representation of a snapshot.
// Angles are in degrees, sidereal times and right ascension in hours.
type SnapshotExport struct {
	Timestamp  time.Time       `json:"timestamp"`
	UTCOffset  int             `json:"utc_offset"`
	JulianDate float64         `json:"julian_date"`
	J2000Days  float64         `json:"j2000_days"`
	GMSTHours  float64         `json:"gmst_hours"`
	LSTHours   float64         `json:"lst_hours"`
	Observer   ObserverExport  `json:"observer"`
	Target     TargetExport    `json:"target"`
	Window     *WindowExport   `json:"window,omitempty"`
	History    []HistoryExport `json:"altitude_history,omitempty"`
}

// ObserverExport is a JSON-friendly observer location.
type ObserverExport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	LatText   string  `json:"latitude_dms"`
	LonText   string  `json:"longitude_dms"`
}

// TargetExport is a JSON-friendly target with derived coordinates.
type TargetExport struct {
	Tracked        bool    `json:"tracked"`
	RightAscension float64 `json:"ra_hours"`
	Declination    float64 `json:"dec"`
	HourAngle      float64 `json:"hour_angle_hours"`
	Azimuth        float64 `json:"azimuth"`
	Altitude       float64 `json:"altitude"`
	AboveHorizon   bool    `json:"above_horizon"`
	AxisRA         float64 `json:"axis_ra"`
	AxisDec        float64 `json:"axis_dec"`
	NexStarRADec   string  `json:"nexstar_radec"`
	NexStarAzAlt   string  `json:"nexstar_azalt"`
}

// WindowExport is a JSON-friendly visibility window.
type WindowExport struct {
	Rise        *time.Time `json:"rise,omitempty"`
	Transit     *time.Time `json:"transit,omitempty"`
	Set         *time.Time `json:"set,omitempty"`
	MaxAltitude float64    `json:"max_altitude"`
	Circumpolar bool       `json:"circumpolar"`
	NeverRises  bool       `json:"never_rises"`
}

// HistoryExport is one altitude sample.
type HistoryExport struct {
	Timestamp time.Time `json:"timestamp"`
	Altitude  float64   `json:"altitude"`
}

func hours(rad float64) float64 { return rad * 12 / math.Pi }

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ExportSnapshot converts a snapshot to an exportable format.
func ExportSnapshot(snap state.Snapshot) *SnapshotExport {
	export := &SnapshotExport{
		Timestamp:  snap.Time.UTC(),
		UTCOffset:  snap.UTCOffset,
		JulianDate: snap.JulianDate,
		J2000Days:  snap.J2000,
		GMSTHours:  hours(snap.GMST),
		LSTHours:   hours(snap.LST),
		Observer: ObserverExport{
			Latitude:  deg(snap.Observer.Latitude),
			Longitude: deg(snap.Observer.Longitude),
			LatText:   FormatDegrees(snap.Observer.Latitude),
			LonText:   FormatDegrees(snap.Observer.Longitude),
		},
		Target: TargetExport{
			Tracked:        snap.TargetSet,
			RightAscension: hours(snap.Target.RightAscension),
			Declination:    deg(snap.Target.Declination),
			HourAngle:      hours(snap.Local.HourAngle),
			Azimuth:        deg(astro.NormalizeToTwoPi(snap.Horizontal.Azimuth)),
			Altitude:       deg(snap.Horizontal.Altitude),
			AboveHorizon:   snap.AboveHorizon,
			AxisRA:         deg(snap.Axis.RA),
			AxisDec:        deg(snap.Axis.Dec),
			NexStarRADec:   snap.NexStarRADec(false),
			NexStarAzAlt:   snap.NexStarAzAlt(false),
		},
	}

	if snap.TargetSet && snap.Window.Valid {
		export.Window = &WindowExport{
			Rise:        timePtr(snap.Window.Rise),
			Transit:     timePtr(snap.Window.Transit),
			Set:         timePtr(snap.Window.Set),
			MaxAltitude: deg(snap.Window.MaxAltitude),
			Circumpolar: snap.Window.Circumpolar,
			NeverRises:  snap.Window.NeverRises,
		}
	}

	for _, s := range snap.History {
		export.History = append(export.History, HistoryExport{
			Timestamp: s.Timestamp.UTC(),
			Altitude:  deg(s.Altitude),
		})
	}

	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
