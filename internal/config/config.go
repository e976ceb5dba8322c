// Package config resolves the observer site, target and runtime settings
// from defaults, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/litescript/ls-astromath/internal/astro"
)

// Environment variable names.
const (
	EnvLatitude  = "LS_ASTROMATH_LAT"
	EnvLongitude = "LS_ASTROMATH_LON"
	EnvUTCOffset = "LS_ASTROMATH_UTC_OFFSET"
	EnvRefresh   = "LS_ASTROMATH_REFRESH"
	EnvLogLevel  = "LS_ASTROMATH_LOG_LEVEL"
	EnvTargetRA  = "LS_ASTROMATH_RA"
	EnvTargetDec = "LS_ASTROMATH_DEC"
)

const (
	DefaultRefresh = 1 * time.Second
	MinRefresh     = 1 * time.Second
	MaxRefresh     = 5 * time.Minute
)

var (
	ErrInvalidLocation = errors.New("invalid observer location")
	ErrInvalidOffset   = errors.New("invalid UTC offset")
	ErrInvalidTarget   = errors.New("invalid target coordinates")
)

// Config holds everything the command needs to build a snapshot.
type Config struct {
	Location  astro.GeographicLocation
	UTCOffset int // hours, east positive

	// Target is the tracked object. When TargetSet is false the
	// meridian at the celestial equator is used.
	Target    astro.EquatorialCoords
	TargetSet bool

	Refresh  time.Duration
	LogLevel string
}

// DefaultConfig returns a Greenwich observer with no target.
func DefaultConfig() Config {
	return Config{
		Location: astro.GeographicLocation{
			Latitude:  51.4769 * math.Pi / 180,
			Longitude: 0,
		},
		Refresh:  DefaultRefresh,
		LogLevel: "info",
	}
}

// Load returns the defaults overlaid with envFile (if it exists) and then
// the process environment. Variables already set in the environment win
// over the file. An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	cfg := DefaultConfig()

	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvLatitude); v != "" {
		lat, err := ParseAngle(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLatitude, err)
		}
		c.Location.Latitude = lat
	}
	if v := getenv(EnvLongitude); v != "" {
		lon, err := ParseAngle(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLongitude, err)
		}
		c.Location.Longitude = lon
	}
	if v := getenv(EnvUTCOffset); v != "" {
		off, err := ParseOffset(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUTCOffset, err)
		}
		c.UTCOffset = off
	}
	if v := getenv(EnvRefresh); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRefresh, err)
		}
		c.Refresh = d
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	ra, dec := getenv(EnvTargetRA), getenv(EnvTargetDec)
	if ra != "" || dec != "" {
		target, err := ParseTarget(ra, dec)
		if err != nil {
			return err
		}
		c.Target = target
		c.TargetSet = true
	}
	return nil
}

// Validate checks ranges and clamps the refresh interval.
func (c *Config) Validate() error {
	if math.IsNaN(c.Location.Latitude) || math.Abs(c.Location.Latitude) > math.Pi/2 {
		return fmt.Errorf("%w: latitude %.4f° outside ±90°", ErrInvalidLocation, c.Location.Latitude*180/math.Pi)
	}
	if math.IsNaN(c.Location.Longitude) || math.IsInf(c.Location.Longitude, 0) {
		return fmt.Errorf("%w: longitude is not finite", ErrInvalidLocation)
	}
	c.Location.Longitude = astro.NormalizePi(c.Location.Longitude)

	if c.UTCOffset < -12 || c.UTCOffset > 14 {
		return fmt.Errorf("%w: %d hours", ErrInvalidOffset, c.UTCOffset)
	}
	if c.TargetSet {
		if err := ValidateTarget(c.Target); err != nil {
			return err
		}
	}

	if c.Refresh < MinRefresh {
		c.Refresh = MinRefresh
	} else if c.Refresh > MaxRefresh {
		c.Refresh = MaxRefresh
	}
	return nil
}

// ValidateTarget reports whether target has finite coordinates and a
// declination within ±90°.
func ValidateTarget(target astro.EquatorialCoords) error {
	ra, dec := target.RightAscension, target.Declination
	if math.IsNaN(ra) || math.IsInf(ra, 0) || math.IsNaN(dec) || math.IsInf(dec, 0) {
		return fmt.Errorf("%w: coordinates are not finite", ErrInvalidTarget)
	}
	if math.Abs(dec) > math.Pi/2 {
		return fmt.Errorf("%w: declination outside ±90°", ErrInvalidTarget)
	}
	return nil
}

// ParseAngle reads degrees either as sexagesimal text ("40:26:46",
// "-3:42:12") or as a decimal number ("40.446"), returning radians.
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		deg, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", astro.ErrInvalidSexagesimal, s)
		}
		return deg * math.Pi / 180, nil
	}
	a, err := astro.ParseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	return a.Angle().Rad(), nil
}

// ParseHours reads an hour angle or right ascension in hours, as
// "5:55:10" or "5.919", returning radians.
func ParseHours(s string) (float64, error) {
	rad, err := ParseAngle(s)
	if err != nil {
		return 0, err
	}
	return rad * 15, nil
}

// ParseOffset reads a whole-hour UTC offset such as "-5" or "+2".
func ParseOffset(s string) (int, error) {
	off, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	return off, nil
}

// ParseTarget reads a right ascension in hours and a declination in
// degrees. Both must be present.
func ParseTarget(ra, dec string) (astro.EquatorialCoords, error) {
	if ra == "" || dec == "" {
		return astro.EquatorialCoords{}, fmt.Errorf("%w: both RA and Dec are required", ErrInvalidTarget)
	}
	r, err := ParseHours(ra)
	if err != nil {
		return astro.EquatorialCoords{}, fmt.Errorf("%w: RA: %v", ErrInvalidTarget, err)
	}
	d, err := ParseAngle(dec)
	if err != nil {
		return astro.EquatorialCoords{}, fmt.Errorf("%w: Dec: %v", ErrInvalidTarget, err)
	}
	return astro.EquatorialCoords{
		RightAscension: astro.NormalizeToTwoPi(r),
		Declination:    d,
	}, nil
}
