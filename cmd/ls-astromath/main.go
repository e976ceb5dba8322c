// Command ls-astromath is a terminal sidereal clock that tracks a target's
// local and horizontal coordinates for an observer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-astromath/internal/astro"
	"github.com/litescript/ls-astromath/internal/config"
	"github.com/litescript/ls-astromath/internal/logging"
	"github.com/litescript/ls-astromath/internal/report"
	"github.com/litescript/ls-astromath/internal/state"
	"github.com/litescript/ls-astromath/internal/ui"
	"github.com/litescript/ls-astromath/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	detailedMode  bool
	nexstarMode   bool
	jsonPath      string
	watchInterval time.Duration
	atTime        string
)

func main() {
	envFile := flag.String("env-file", "", "Load settings from this file instead of .env")
	lat := flag.String("lat", "", "Observer latitude, degrees (40:26:46 or 40.446)")
	lon := flag.String("lon", "", "Observer longitude, degrees east (-3:42:12 or -3.703)")
	offset := flag.String("offset", "", "UTC offset in whole hours (e.g., -5)")
	ra := flag.String("ra", "", "Target right ascension, hours (18:36:56)")
	dec := flag.String("dec", "", "Target declination, degrees (38:47:01)")
	ha := flag.String("ha", "", "Target hour angle, hours; with --dec, instead of --ra")
	refresh := flag.Duration("refresh", 0, "Clock refresh interval (e.g., 1s, 10s)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&detailedMode, "detailed", false, "Print every angle with unit symbols")
	flag.BoolVar(&nexstarMode, "nexstar", false, "Print NexStar hand-controller replies")
	flag.StringVar(&jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat output at interval (e.g., 30s)")
	flag.StringVar(&atTime, "at", "", "Compute for this RFC 3339 instant instead of now")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-astromath %s\n", version.Version)
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatal(err)
	}
	if err := checkTargetFlags(*ra, *dec, *ha); err != nil {
		fatal(err)
	}
	if err := applyFlags(&cfg, *lat, *lon, *offset, *ra, *dec, *refresh, *logLevel); err != nil {
		fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if logger.Enabled(logging.LevelDebug) {
		logger.Debug("observer lat=%s lon=%s utc%+d", report.FormatDegrees(cfg.Location.Latitude),
			report.FormatDegrees(cfg.Location.Longitude), cfg.UTCOffset)
	}

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stateCfg := state.DefaultConfig()
	stateCfg.Observer = cfg.Location
	stateCfg.UTCOffset = cfg.UTCOffset
	stateCfg.RefreshInterval = cfg.Refresh
	stateCfg.Logger = logger
	stateMgr := state.NewManager(stateCfg)

	now := time.Now
	if atTime != "" {
		at, err := time.Parse(time.RFC3339, atTime)
		if err != nil {
			fatal(fmt.Errorf("--at: %w", err))
		}
		now = func() time.Time { return at }
	}

	target, hasTarget, err := resolveTarget(cfg, *ha, *dec, now())
	if err != nil {
		fatal(err)
	}
	if hasTarget {
		stateMgr.SetTarget(target)
	}

	// Headless mode: no TUI
	headless := summaryMode || detailedMode || nexstarMode || jsonPath != "" || atTime != "" || watchInterval > 0 ||
		!term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		if !summaryMode && !detailedMode && !nexstarMode && jsonPath == "" {
			summaryMode = true
		}
		runHeadless(ctx, stateMgr, now, logger)
		return
	}

	p := tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// checkTargetFlags rejects a declination given without a right ascension or
// hour angle to pair it with.
func checkTargetFlags(ra, dec, ha string) error {
	if dec != "" && ra == "" && ha == "" {
		return fmt.Errorf("%w: --dec requires --ra or --ha", config.ErrInvalidTarget)
	}
	return nil
}

// applyFlags overrides configuration with any flags given on the command
// line.
func applyFlags(cfg *config.Config, lat, lon, offset, ra, dec string, refresh time.Duration, logLevel string) error {
	if lat != "" {
		v, err := config.ParseAngle(lat)
		if err != nil {
			return fmt.Errorf("--lat: %w", err)
		}
		cfg.Location.Latitude = v
	}
	if lon != "" {
		v, err := config.ParseAngle(lon)
		if err != nil {
			return fmt.Errorf("--lon: %w", err)
		}
		cfg.Location.Longitude = v
	}
	if offset != "" {
		v, err := config.ParseOffset(offset)
		if err != nil {
			return fmt.Errorf("--offset: %w", err)
		}
		cfg.UTCOffset = v
	}
	if ra != "" {
		target, err := config.ParseTarget(ra, dec)
		if err != nil {
			return err
		}
		cfg.Target = target
		cfg.TargetSet = true
	}
	if refresh > 0 {
		cfg.Refresh = refresh
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return nil
}

// resolveTarget returns the configured target. A target given by hour
// angle is converted to right ascension using the sidereal time at now.
func resolveTarget(cfg config.Config, ha, dec string, now time.Time) (astro.EquatorialCoords, bool, error) {
	if ha == "" {
		return cfg.Target, cfg.TargetSet, nil
	}
	if cfg.TargetSet {
		return astro.EquatorialCoords{}, false, fmt.Errorf("--ha and --ra are mutually exclusive")
	}
	h, err := config.ParseHours(ha)
	if err != nil {
		return astro.EquatorialCoords{}, false, fmt.Errorf("--ha: %w", err)
	}
	d, err := config.ParseAngle(dec)
	if err != nil {
		return astro.EquatorialCoords{}, false, fmt.Errorf("--dec: %w", err)
	}
	lst := astro.LocalSiderealTime(astro.CalendarDateIn(now, cfg.UTCOffset), cfg.Location)
	target := astro.LocalToEquatorial(astro.EquatorialHACoords{HourAngle: h, Declination: d}, lst)
	if err := config.ValidateTarget(target); err != nil {
		return astro.EquatorialCoords{}, false, fmt.Errorf("--ha/--dec: %w", err)
	}
	return target, true, nil
}

// runHeadless prints snapshots without starting the TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, now func() time.Time, logger *logging.Logger) {
	outputOnce := func() error {
		snap := stateMgr.Update(now())

		if jsonPath != "" {
			if err := writeJSON(snap); err != nil {
				return err
			}
		}
		if summaryMode {
			report.WriteSummary(os.Stdout, snap)
		}
		if detailedMode {
			if summaryMode {
				fmt.Println()
			}
			report.WriteDetailed(os.Stdout, snap)
		}
		if nexstarMode {
			if summaryMode || detailedMode {
				fmt.Println()
			}
			report.WriteNexStar(os.Stdout, snap)
		}
		return nil
	}

	// Single run
	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fatal(err)
		}
		return
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		logger.Error("%v", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				logger.Error("%v", err)
			}
		}
	}
}

func writeJSON(snap state.Snapshot) error {
	export := report.ExportSnapshot(snap)
	if jsonPath == "-" {
		if err := export.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := export.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return f.Close()
}
