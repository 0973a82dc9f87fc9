// Package state provides thread-safe storage for polled batch-job progress.
//
// # Overview
//
// Each of the album server's batch jobs (enhance, CLIP embedding, face
// detection, face clustering) is polled by its own goroutine while it runs.
// The Store decouples those pollers from the UI: pollers call UpdateJob and
// SetPolling; the UI reads Job / Jobs copies on every frame without blocking
// a poll in flight.
//
// # Concurrency
//
// The Store uses a read-write mutex. Snapshots are value copies, so readers
// never observe a partially written update and writers never race with the
// render loop.
//
// # Error Semantics
//
// A failed poll records the error but keeps the last good status data, so
// the UI can keep showing the most recent progress alongside the failure.
package state
