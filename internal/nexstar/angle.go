// Package nexstar encodes angles and coordinate pairs in the formats used by
// the NexStar hand-controller serial protocol.
//
// Angles travel as fractions of a full revolution: 16 bits in the standard
// commands and 32 bits in the precise ("p") variants, written as upper-case
// hex pairs terminated by '#'.
package nexstar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/litescript/ls-astromath/internal/astro"
)

const (
	revolution16 = 1 << 16
	revolution32 = 1 << 32
)

// ErrMalformedPair is returned when a coordinate pair cannot be decoded.
var ErrMalformedPair = errors.New("malformed nexstar coordinate pair")

// Nex2Rad converts a 16-bit NexStar angle to radians in [0, 2π).
func Nex2Rad(angle uint16) float64 {
	return 2 * math.Pi * float64(angle) / revolution16
}

// PreciseNex2Rad converts a 32-bit NexStar angle to radians in [0, 2π).
func PreciseNex2Rad(angle uint32) float64 {
	return 2 * math.Pi * float64(angle) / revolution32
}

// Rad2Nex converts radians to a 16-bit NexStar angle. The angle is reduced
// to [0, 2π) first and the fraction is truncated.
func Rad2Nex(rad float64) uint16 {
	return uint16(uint32(astro.NormalizeToTwoPi(rad) * revolution16 / (2 * math.Pi)))
}

// Rad2PreciseNex converts radians to a 32-bit NexStar angle.
func Rad2PreciseNex(rad float64) uint32 {
	return uint32(uint64(astro.NormalizeToTwoPi(rad) * revolution32 / (2 * math.Pi)))
}

// Pair is two angles in radians, in protocol order (RA/Dec or Az/Alt).
type Pair struct {
	First, Second float64
}

// FormatPair encodes a pair as "XXXX,XXXX#", or "XXXXXXXX,XXXXXXXX#" when
// precise is set.
func FormatPair(p Pair, precise bool) string {
	if precise {
		return fmt.Sprintf("%08X,%08X#", Rad2PreciseNex(p.First), Rad2PreciseNex(p.Second))
	}
	return fmt.Sprintf("%04X,%04X#", Rad2Nex(p.First), Rad2Nex(p.Second))
}

// ParsePair decodes a pair written by FormatPair. The trailing '#' is
// optional; the precision is taken from the field width.
func ParsePair(s string) (Pair, error) {
	body := strings.TrimSuffix(strings.TrimSpace(s), "#")
	fields := strings.Split(body, ",")
	if len(fields) != 2 || len(fields[0]) != len(fields[1]) {
		return Pair{}, fmt.Errorf("%w: %q", ErrMalformedPair, s)
	}

	var bits int
	switch len(fields[0]) {
	case 4:
		bits = 16
	case 8:
		bits = 32
	default:
		return Pair{}, fmt.Errorf("%w: %q: field width %d", ErrMalformedPair, s, len(fields[0]))
	}

	var vals [2]float64
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, bits)
		if err != nil {
			return Pair{}, fmt.Errorf("%w: %q: %v", ErrMalformedPair, s, err)
		}
		if bits == 16 {
			vals[i] = Nex2Rad(uint16(v))
		} else {
			vals[i] = PreciseNex2Rad(uint32(v))
		}
	}
	return Pair{First: vals[0], Second: vals[1]}, nil
}
