// Package logging is the leveled printf logger shared by the thumbcard
// server and CLI.
//
// Levels, lowest to highest:
//   - DEBUG: per-phase render timings, cache decisions, upstream detail
//   - INFO:  startup configuration and one line per generated card
//   - WARN:  recoverable problems (cache write failures, bad config values)
//   - ERROR: failed renders and upstream failures
//   - FATAL: startup errors that terminate the process
//
// The level comes from DEBUG=true or LOG_LEVEL=debug|info|warn|error and
// can be overridden at runtime with SetLevel.
package logging
