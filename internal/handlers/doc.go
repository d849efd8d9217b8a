// Package handlers provides HTTP request handlers for the thumbcard API.
//
// It includes handlers for:
//   - Rendering and purging cached video cards
//   - Normalized video metadata lookups
//   - Render and cache statistics
//   - Health checks, version and Prometheus metrics
package handlers
