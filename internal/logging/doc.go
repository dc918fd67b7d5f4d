// Package logging builds the slog loggers used across fieldlens.
//
// Two output formats are supported: "console", a compact timestamp/level/
// key=value line format for interactive runs, and "json" for log files and
// machine consumption. Output can fan out to stdout plus a log file.
//
// Components attach a "component" attribute via NewComponentLogger; the
// console handler hoists it into the message prefix instead of printing it
// as a trailing key.
package logging
