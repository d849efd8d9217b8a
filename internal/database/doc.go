// Package database provides SQLite storage for thumbcard.
//
// It keeps three tables:
//   - videos: the last normalized metadata fetched for each video id
//   - renders: one row per generated card (path, size, render time)
//   - metadata: free-form key/value pairs such as the last cache purge
//
// The database uses WAL mode for concurrent readers and creates its schema
// on first open.
package database
