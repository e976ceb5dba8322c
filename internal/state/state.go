// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-astromath/internal/astro"
	"github.com/litescript/ls-astromath/internal/logging"
)

// AltitudeSample is a single point in the altitude history.
type AltitudeSample struct {
	Timestamp time.Time
	Altitude  float64
}

// Manager holds the observer, the target and the derived coordinates of
// the most recent update.
type Manager struct {
	mu sync.RWMutex

	observer  astro.GeographicLocation
	utcOffset int
	target    astro.EquatorialCoords
	targetSet bool

	// LST is extrapolated from clock until the next resync.
	clock         astro.SiderealClock
	clockValid    bool
	resyncEvery   time.Duration
	window        astro.VisibilityWindow
	windowErr     error
	windowSpan    time.Duration
	windowStep    time.Duration
	current       *Snapshot
	updates       int
	history       []AltitudeSample
	maxHistoryLen int
	historyAt     int

	refreshInterval time.Duration
	log             *logging.Logger
}

// Config holds configuration for the state manager.
type Config struct {
	Observer  astro.GeographicLocation
	UTCOffset int

	MaxHistoryLen   int
	RefreshInterval time.Duration
	ResyncInterval  time.Duration
	WindowSpan      time.Duration
	WindowStep      time.Duration
	Logger          *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120, // two minutes at one update per second
		RefreshInterval: time.Second,
		ResyncInterval:  time.Hour,
		WindowSpan:      24 * time.Hour,
		WindowStep:      5 * time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxHist := cfg.MaxHistoryLen
	if maxHist <= 0 {
		maxHist = 120
	}
	span, step := cfg.WindowSpan, cfg.WindowStep
	if span <= 0 || step <= 0 {
		span, step = 24*time.Hour, 5*time.Minute
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		observer:        cfg.Observer,
		utcOffset:       cfg.UTCOffset,
		resyncEvery:     cfg.ResyncInterval,
		windowSpan:      span,
		windowStep:      step,
		maxHistoryLen:   maxHist,
		history:         make([]AltitudeSample, 0, maxHist),
		refreshInterval: cfg.RefreshInterval,
		log:             log.With("state"),
	}
}

// SetObserver moves the observer. The sidereal clock and the visibility
// window are recomputed on the next update.
func (m *Manager) SetObserver(loc astro.GeographicLocation, utcOffset int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = loc
	m.utcOffset = utcOffset
	m.invalidate()
}

// SetTarget selects the tracked object and clears its altitude history.
func (m *Manager) SetTarget(eq astro.EquatorialCoords) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = eq
	m.targetSet = true
	m.invalidate()
}

func (m *Manager) invalidate() {
	m.clockValid = false
	m.history = m.history[:0]
	m.historyAt = 0
}

// Update recomputes every derived quantity for the instant now and
// returns the resulting snapshot.
func (m *Manager) Update(now time.Time) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.clockValid || now.Before(m.clock.Reference()) ||
		(m.resyncEvery > 0 && now.Sub(m.clock.Reference()) >= m.resyncEvery) {
		m.resync(now)
	}

	date := astro.CalendarDateIn(now, m.utcOffset)
	lst := m.clock.At(now)

	target := m.target
	if !m.targetSet {
		// Without a target, track the meridian on the equator.
		target = astro.EquatorialCoords{RightAscension: lst}
	}
	local := astro.EquatorialToLocal(target, lst)
	hor := astro.EquatorialToHorizontal(m.observer, local)

	snap := Snapshot{
		Time:         now,
		Date:         date,
		JulianDate:   astro.JulianDate(date),
		J2000:        astro.J2000Date(date),
		GMST:         astro.GreenwichMeanSiderealTime(date),
		LST:          lst,
		Observer:     m.observer,
		UTCOffset:    m.utcOffset,
		Target:       target,
		TargetSet:    m.targetSet,
		Local:        local,
		Horizontal:   hor,
		AboveHorizon: hor.AboveHorizon(),
		Tier:         astro.TierForAltitude(hor.Altitude),
		Axis:         astro.LocalToAxis(local),
		Window:       m.window,
		WindowErr:    m.windowErr,
	}

	if m.targetSet {
		m.addSample(AltitudeSample{Timestamp: now, Altitude: hor.Altitude})
	}
	m.updates++
	snap.Updates = m.updates
	snap.History = m.historyOrdered()

	m.current = &snap
	return snap
}

func (m *Manager) resync(now time.Time) {
	m.clock = astro.NewSiderealClock(now, m.utcOffset, m.observer)
	m.clockValid = true
	m.log.Debug("sidereal clock synchronized at %s", now.UTC().Format(time.RFC3339))

	m.window, m.windowErr = astro.VisibilityWindow{}, nil
	if !m.targetSet {
		return
	}
	m.window, m.windowErr = astro.RiseSet(m.observer, m.target, now, m.windowSpan, m.windowStep)
	if m.windowErr != nil {
		m.log.Warn("visibility window: %v", m.windowErr)
	}
}

// addSample adds an altitude sample to the ring buffer.
func (m *Manager) addSample(s AltitudeSample) {
	if len(m.history) < m.maxHistoryLen {
		m.history = append(m.history, s)
		return
	}
	m.history[m.historyAt] = s
	m.historyAt = (m.historyAt + 1) % m.maxHistoryLen
}

// historyOrdered returns samples in chronological order.
func (m *Manager) historyOrdered() []AltitudeSample {
	if len(m.history) == 0 {
		return nil
	}
	result := make([]AltitudeSample, len(m.history))
	if len(m.history) < m.maxHistoryLen {
		copy(result, m.history)
		return result
	}
	for i := range result {
		result[i] = m.history[(m.historyAt+i)%m.maxHistoryLen]
	}
	return result
}

// Snapshot returns the result of the most recent update.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Snapshot{}
	}
	snap := *m.current
	snap.History = append([]AltitudeSample(nil), m.current.History...)
	return snap
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}
