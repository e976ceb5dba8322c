package state

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-astromath/internal/astro"
)

var (
	greenwich = astro.GeographicLocation{Latitude: 51.4769 * math.Pi / 180}
	vega      = astro.EquatorialCoords{RightAscension: 279.2347 * math.Pi / 180, Declination: 38.7837 * math.Pi / 180}
	epoch     = time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)
)

func newTestManager(maxHist int) *Manager {
	cfg := DefaultConfig()
	cfg.Observer = greenwich
	cfg.MaxHistoryLen = maxHist
	return NewManager(cfg)
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}

	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}

	if !m.Snapshot().IsZero() {
		t.Error("Snapshot before Update should be zero")
	}
}

func TestManager_Update(t *testing.T) {
	m := newTestManager(10)
	m.SetTarget(vega)

	snap := m.Update(epoch)

	if m.Snapshot().IsZero() {
		t.Error("Snapshot after Update should not be zero")
	}
	if snap.Updates != 1 {
		t.Errorf("Updates = %d, want 1", snap.Updates)
	}

	wantDate := astro.CalendarDateIn(epoch, 0)
	if snap.Date != wantDate {
		t.Errorf("Date = %+v, want %+v", snap.Date, wantDate)
	}
	if got, want := snap.JulianDate, astro.JulianDate(wantDate); got != want {
		t.Errorf("JulianDate = %v, want %v", got, want)
	}
	if got, want := snap.J2000, snap.JulianDate-astro.J2000; math.Abs(got-want) > 1e-9 {
		t.Errorf("J2000 = %v, want %v", got, want)
	}

	wantLST := astro.LocalSiderealTime(wantDate, greenwich)
	if math.Abs(snap.LST-wantLST) > 1e-9 {
		t.Errorf("LST = %v, want %v", snap.LST, wantLST)
	}

	wantLocal := astro.EquatorialToLocal(vega, snap.LST)
	if math.Abs(snap.Local.HourAngle-wantLocal.HourAngle) > 1e-12 {
		t.Errorf("HourAngle = %v, want %v", snap.Local.HourAngle, wantLocal.HourAngle)
	}
	wantHor := astro.EquatorialToHorizontal(greenwich, wantLocal)
	if math.Abs(snap.Horizontal.Altitude-wantHor.Altitude) > 1e-12 {
		t.Errorf("Altitude = %v, want %v", snap.Horizontal.Altitude, wantHor.Altitude)
	}
	if snap.AboveHorizon != (snap.Horizontal.Altitude > 0) {
		t.Errorf("AboveHorizon = %v with altitude %v", snap.AboveHorizon, snap.Horizontal.Altitude)
	}
	if snap.Tier != astro.TierForAltitude(snap.Horizontal.Altitude) {
		t.Errorf("Tier = %v", snap.Tier)
	}

	if snap.WindowErr != nil {
		t.Errorf("WindowErr = %v", snap.WindowErr)
	}
	if !snap.Window.Circumpolar && !snap.Window.Valid {
		t.Errorf("Vega from Greenwich should have a window: %+v", snap.Window)
	}
}

func TestManager_NoTarget(t *testing.T) {
	m := newTestManager(10)
	snap := m.Update(epoch)

	if snap.TargetSet {
		t.Error("TargetSet should be false")
	}
	if snap.Local.HourAngle != 0 {
		t.Errorf("HourAngle = %v, want 0 on the meridian", snap.Local.HourAngle)
	}
	// The meridian on the equator culminates at 90° - latitude.
	want := math.Pi/2 - greenwich.Latitude
	if math.Abs(snap.Horizontal.Altitude-want) > 1e-9 {
		t.Errorf("Altitude = %v, want %v", snap.Horizontal.Altitude, want)
	}
	if len(snap.History) != 0 {
		t.Errorf("History length = %d, want 0 without a target", len(snap.History))
	}
}

func TestManager_ClockExtrapolation(t *testing.T) {
	m := newTestManager(10)
	m.SetTarget(vega)
	m.Update(epoch)

	// Within the resync interval the LST comes from the sidereal clock
	// and agrees with a full recomputation.
	later := epoch.Add(20 * time.Minute)
	snap := m.Update(later)
	want := astro.LocalSiderealTime(astro.CalendarDateIn(later, 0), greenwich)
	if d := math.Abs(astro.NormalizePi(snap.LST - want)); d > 1e-6 {
		t.Errorf("extrapolated LST off by %v rad", d)
	}
}

func TestManager_HistoryBuffer(t *testing.T) {
	m := newTestManager(3)
	m.SetTarget(vega)

	// Add 5 updates
	for i := 0; i < 5; i++ {
		m.Update(epoch.Add(time.Duration(i) * time.Minute))
	}

	snap := m.Snapshot()
	if len(snap.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(snap.History))
	}

	// Oldest first, starting at the third update.
	for i, s := range snap.History {
		want := epoch.Add(time.Duration(i+2) * time.Minute)
		if !s.Timestamp.Equal(want) {
			t.Errorf("History[%d] at %v, want %v", i, s.Timestamp, want)
		}
	}
}

func TestManager_SetTargetClearsHistory(t *testing.T) {
	m := newTestManager(10)
	m.SetTarget(vega)
	m.Update(epoch)
	m.Update(epoch.Add(time.Minute))

	m.SetTarget(astro.EquatorialCoords{RightAscension: 1, Declination: 0.2})
	snap := m.Update(epoch.Add(2 * time.Minute))

	if len(snap.History) != 1 {
		t.Errorf("History length = %d, want 1 after target change", len(snap.History))
	}
	if snap.Target.RightAscension != 1 {
		t.Errorf("Target = %+v", snap.Target)
	}
}

func TestManager_SetObserver(t *testing.T) {
	m := newTestManager(10)
	m.SetTarget(vega)
	m.Update(epoch)

	sydney := astro.GeographicLocation{Latitude: -33.87 * math.Pi / 180, Longitude: 151.21 * math.Pi / 180}
	m.SetObserver(sydney, 10)
	snap := m.Update(epoch)

	if snap.UTCOffset != 10 || snap.Date.UTCOffset != 10 {
		t.Errorf("UTCOffset = %d / %d, want 10", snap.UTCOffset, snap.Date.UTCOffset)
	}
	want := astro.LocalSiderealTime(astro.CalendarDateIn(epoch, 10), sydney)
	if math.Abs(snap.LST-want) > 1e-9 {
		t.Errorf("LST = %v, want %v after observer change", snap.LST, want)
	}
}

func TestManager_SnapshotIsCopy(t *testing.T) {
	m := newTestManager(10)
	m.SetTarget(vega)
	m.Update(epoch)

	snap := m.Snapshot()
	snap.History[0].Altitude = 42

	if m.Snapshot().History[0].Altitude == 42 {
		t.Error("modifying a snapshot changed the manager's history")
	}
}

func TestSnapshot_NexStar(t *testing.T) {
	snap := Snapshot{
		Target:     astro.EquatorialCoords{RightAscension: math.Pi, Declination: -math.Pi / 2},
		Horizontal: astro.HorizontalCoords{Azimuth: math.Pi / 2, Altitude: 0},
	}

	if got, want := snap.NexStarRADec(false), "8000,C000#"; got != want {
		t.Errorf("NexStarRADec = %q, want %q", got, want)
	}
	if got, want := snap.NexStarAzAlt(false), "4000,0000#"; got != want {
		t.Errorf("NexStarAzAlt = %q, want %q", got, want)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := newTestManager(20)
	m.SetTarget(vega)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Update(epoch.Add(time.Duration(i) * time.Second))
		}(i)
		go func() {
			defer wg.Done()
			_ = m.Snapshot()
			_ = m.RefreshInterval()
		}()
	}
	wg.Wait()

	if got := m.Snapshot().Updates; got != 10 {
		t.Errorf("Updates = %d, want 10", got)
	}
}
