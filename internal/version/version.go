// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Mount axis coordinates, NexStar angle encoding, rise/set windows
// 0.2.0 - Sidereal clock TUI, .env configuration, JSON export
// 0.1.0 - Initial release: sexagesimal angles, Julian dates, GMST/LST, alt-az transforms
