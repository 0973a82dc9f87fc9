package state

import (
	"errors"
	"testing"
	"time"

	"github.com/lumen-tui/lumen/internal/album"
)

func TestStore_UpdateJobAndRead(t *testing.T) {
	s := NewStore()

	before := time.Now()
	s.UpdateJob(album.JobEnhance, &album.JobStatus{IsRunning: true, ProcessedCount: 3, TotalImages: 9}, nil)

	snap := s.Job(album.JobEnhance)
	if !snap.HasStatus || snap.Status.ProcessedCount != 3 {
		t.Fatalf("snapshot = %#v, want processed=3 HasStatus=true", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Unknown kinds read as empty snapshots, not panics.
	empty := s.Job(album.JobClip)
	if empty.HasStatus || empty.Kind != album.JobClip {
		t.Fatalf("empty snapshot = %#v", empty)
	}
}

func TestStore_ErrorKeepsPreviousStatus(t *testing.T) {
	s := NewStore()

	s.UpdateJob(album.JobFaceDetection, &album.JobStatus{IsRunning: true, ProcessedCount: 7, TotalFaces: 20}, nil)
	s.UpdateJob(album.JobFaceDetection, nil, errors.New("poll failed"))

	snap := s.Job(album.JobFaceDetection)
	if !snap.HasStatus || snap.Status.ProcessedCount != 7 {
		t.Fatalf("status lost on error: %#v", snap)
	}
	if snap.LastError == nil || snap.LastError.Error() != "poll failed" {
		t.Fatalf("LastError = %v, want poll failed", snap.LastError)
	}

	// A later success clears the error.
	s.UpdateJob(album.JobFaceDetection, &album.JobStatus{ProcessedCount: 20, TotalFaces: 20}, nil)
	snap = s.Job(album.JobFaceDetection)
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after success", snap.LastError)
	}
}

func TestStore_PollingFlagAndDone(t *testing.T) {
	s := NewStore()

	s.SetPolling(album.JobFaceClustering, true)
	s.UpdateJob(album.JobFaceClustering, &album.JobStatus{IsRunning: true, ProcessedCount: 1, TotalFaces: 5}, nil)
	if s.Job(album.JobFaceClustering).Done() {
		t.Fatal("Done() = true while running")
	}

	s.UpdateJob(album.JobFaceClustering, &album.JobStatus{IsRunning: false, ProcessedCount: 5, TotalFaces: 5}, nil)
	if s.Job(album.JobFaceClustering).Done() {
		t.Fatal("Done() = true while poller still attached")
	}

	s.SetPolling(album.JobFaceClustering, false)
	if !s.Job(album.JobFaceClustering).Done() {
		t.Fatal("Done() = false after completion and teardown")
	}
}

func TestStore_JobsReturnsCopies(t *testing.T) {
	s := NewStore()
	s.UpdateJob(album.JobClip, &album.JobStatus{ProcessedCount: 2, TotalImages: 4}, nil)

	jobs := s.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("Jobs() len = %d, want 1", len(jobs))
	}
	got := jobs[album.JobClip]
	got.Status.ProcessedCount = 99

	if s.Job(album.JobClip).Status.ProcessedCount != 2 {
		t.Fatal("Jobs() should return copies, store was mutated")
	}
}
