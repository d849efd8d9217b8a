// Package middleware provides HTTP middleware for thumbcard.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics keyed by route template
//   - Configurable filtering for static files and health checks
package middleware
