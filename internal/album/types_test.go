package album

import (
	"testing"
)

func TestJobStatusHelpers(t *testing.T) {
	s := JobStatus{ProcessedCount: 25, TotalImages: 100}
	if got := s.Percent(); got != 25 {
		t.Fatalf("Percent = %v, want 25", got)
	}
	if s.Total() != 100 {
		t.Fatalf("Total = %d, want 100", s.Total())
	}

	// Face jobs report total_faces instead.
	s = JobStatus{ProcessedCount: 5, TotalFaces: 10, CurrentFaceID: "face-5"}
	if s.Total() != 10 {
		t.Fatalf("Total = %d, want 10", s.Total())
	}
	if s.CurrentLabel() != "face-5" {
		t.Fatalf("CurrentLabel = %q, want face-5", s.CurrentLabel())
	}

	// Percent clamps: the server occasionally reports processed > total.
	s = JobStatus{ProcessedCount: 12, TotalImages: 10}
	if got := s.Percent(); got != 100 {
		t.Fatalf("Percent = %v, want clamped 100", got)
	}
	if got := (JobStatus{ProcessedCount: 3}).Percent(); got != 0 {
		t.Fatalf("Percent with no total = %v, want 0", got)
	}
}

func TestJobKindValidation(t *testing.T) {
	for _, kind := range JobKinds() {
		if !kind.Valid() {
			t.Fatalf("kind %q should be valid", kind)
		}
		if kind.Label() == string(kind) {
			t.Fatalf("kind %q has no display label", kind)
		}
	}
	if JobKind("reticulate_splines").Valid() {
		t.Fatalf("bogus kind should be invalid")
	}
	if JobFaceClustering.pathPrefix() != "/batch_face_clustering" {
		t.Fatalf("pathPrefix = %q", JobFaceClustering.pathPrefix())
	}
}

func TestImageHelpers(t *testing.T) {
	img := Image{ID: 42, Filename: "very_long_holiday_photo_name.jpg"}
	if img.Key() != "42" {
		t.Fatalf("Key = %q, want 42", img.Key())
	}
	if got := img.DisplayName(20); got != "very_long_holiday..." {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := img.DisplayName(80); got != img.Filename {
		t.Fatalf("DisplayName should not truncate short names, got %q", got)
	}
	if _, ok := img.SimilarityScore(); ok {
		t.Fatalf("SimilarityScore should be absent")
	}
	sim := 0.73
	img.Similarity = &sim
	if got, ok := img.SimilarityScore(); !ok || got != 0.73 {
		t.Fatalf("SimilarityScore = %v %v, want 0.73 true", got, ok)
	}
}

func TestClusterDisplayName(t *testing.T) {
	if got := (Cluster{ClusterID: 3}).DisplayName(); got != "Person 3" {
		t.Fatalf("DisplayName = %q, want Person 3", got)
	}
	if got := (Cluster{ClusterID: 3, Name: "Maya"}).DisplayName(); got != "Maya" {
		t.Fatalf("DisplayName = %q, want Maya", got)
	}
}

func TestIsImagePath(t *testing.T) {
	good := []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.heic"}
	for _, name := range good {
		if !IsImagePath(name) {
			t.Fatalf("IsImagePath(%q) = false, want true", name)
		}
	}
	bad := []string{"doc.pdf", "notes.txt", "video.mp4", "archive", ""}
	for _, name := range bad {
		if IsImagePath(name) {
			t.Fatalf("IsImagePath(%q) = true, want false", name)
		}
	}
}
