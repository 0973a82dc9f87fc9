// Package controller owns the client-side state machine for the album
// terminal UI.
//
// # Overview
//
// The Controller mediates between the renderer and the album service. It
// holds everything mutable: the active view, the gallery pagination
// cursor, the selection set, the active search result set, the single-slot
// upload, and the per-kind batch-job pollers. Renderers never talk to the
// service directly; they call Controller operations and draw from
// Snapshot.
//
// # Concurrency
//
// A single mutex guards all state. Network calls release the lock while
// the request is in flight and capture a sequence token first; the token
// is re-validated before the response is committed, so a response that
// was superseded by a newer search, cursor reset, or upload is discarded
// instead of clobbering current state.
//
// # Pagination and reveal
//
// The gallery grows by fetching fixed-size pages from the server; the
// page counter advances only when a page actually yields images, and an
// empty page latches the cursor as exhausted. Search results arrive as a
// single ranked list and are revealed locally in fixed-size batches with
// no further network traffic.
//
// # Job polling
//
// Each batch job kind gets at most one polling goroutine, started on job
// start or when a refresh finds the job already running, and stopped when
// a poll reports the job finished, when a poll fails, or when the jobs
// view is torn down.
package controller
