package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumen-tui/lumen/internal/album"
)

// fakeService is a scriptable album.Service. Each method delegates to its
// function field when set and otherwise returns a zero-value success, so
// tests only script the calls they care about. Call counts are recorded
// under a mutex because the controller may call from its own goroutines.
type fakeService struct {
	mu    sync.Mutex
	calls map[string]int

	imagesFn     func(ctx context.Context, page, limit int) (*album.PageResult, error)
	searchFn     func(ctx context.Context, queryText string, topK int) (*album.SearchResult, error)
	searchImgFn  func(ctx context.Context, file album.FileUpload) (*album.SearchResult, error)
	uploadFn     func(ctx context.Context, files []album.FileUpload) (*album.UploadResult, error)
	deleteFn     func(ctx context.Context, ids []string) (*album.BatchResult, error)
	tagFn        func(ctx context.Context, ids, tags []string) (*album.BatchResult, error)
	clustersFn   func(ctx context.Context) ([]album.Cluster, error)
	clusterImgFn func(ctx context.Context, clusterID int64) (*album.FaceSearchResult, error)
	faceByImgFn  func(ctx context.Context, file album.FileUpload) (*album.FaceSearchResult, error)
	faceByNameFn func(ctx context.Context, name string) (*album.FaceSearchResult, error)
	startJobFn   func(ctx context.Context, kind album.JobKind) (*album.JobActionResult, error)
	stopJobFn    func(ctx context.Context, kind album.JobKind) (*album.JobActionResult, error)
	jobStatusFn  func(ctx context.Context, kind album.JobKind) (*album.JobStatus, error)
}

func newFakeService() *fakeService {
	return &fakeService{calls: make(map[string]int)}
}

func (f *fakeService) record(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.calls[name]
}

func (f *fakeService) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeService) Settings(ctx context.Context) (*album.Settings, error) {
	f.record("Settings")
	return &album.Settings{}, nil
}

func (f *fakeService) SaveSettings(ctx context.Context, patch album.Settings) (*album.SettingsResponse, error) {
	f.record("SaveSettings")
	return &album.SettingsResponse{Message: "Settings saved."}, nil
}

func (f *fakeService) UploadImages(ctx context.Context, files []album.FileUpload) (*album.UploadResult, error) {
	f.record("UploadImages")
	if f.uploadFn != nil {
		return f.uploadFn(ctx, files)
	}
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Name
	}
	return &album.UploadResult{Message: fmt.Sprintf("Processed %d files.", len(files)), ProcessedFiles: names}, nil
}

func (f *fakeService) Images(ctx context.Context, page, limit int) (*album.PageResult, error) {
	f.record("Images")
	if f.imagesFn != nil {
		return f.imagesFn(ctx, page, limit)
	}
	return &album.PageResult{}, nil
}

func (f *fakeService) SearchImages(ctx context.Context, queryText string, topK int) (*album.SearchResult, error) {
	f.record("SearchImages")
	if f.searchFn != nil {
		return f.searchFn(ctx, queryText, topK)
	}
	return &album.SearchResult{}, nil
}

func (f *fakeService) SearchByImage(ctx context.Context, file album.FileUpload) (*album.SearchResult, error) {
	f.record("SearchByImage")
	if f.searchImgFn != nil {
		return f.searchImgFn(ctx, file)
	}
	return &album.SearchResult{}, nil
}

func (f *fakeService) ImageDetails(ctx context.Context, id int64) (*album.ImageDetails, error) {
	f.record("ImageDetails")
	return &album.ImageDetails{IsEnhanced: false}, nil
}

func (f *fakeService) EnhanceImage(ctx context.Context, id int64) (*album.EnhanceResult, error) {
	f.record("EnhanceImage")
	return &album.EnhanceResult{IsEnhanced: true}, nil
}

func (f *fakeService) DeleteImages(ctx context.Context, ids []string) (*album.BatchResult, error) {
	f.record("DeleteImages")
	if f.deleteFn != nil {
		return f.deleteFn(ctx, ids)
	}
	return &album.BatchResult{Success: true}, nil
}

func (f *fakeService) AddUserTags(ctx context.Context, ids []string, tags []string) (*album.BatchResult, error) {
	f.record("AddUserTags")
	if f.tagFn != nil {
		return f.tagFn(ctx, ids, tags)
	}
	return &album.BatchResult{Success: true}, nil
}

func (f *fakeService) FaceClusters(ctx context.Context) ([]album.Cluster, error) {
	f.record("FaceClusters")
	if f.clustersFn != nil {
		return f.clustersFn(ctx)
	}
	return nil, nil
}

func (f *fakeService) ClusterImages(ctx context.Context, clusterID int64) (*album.FaceSearchResult, error) {
	f.record("ClusterImages")
	if f.clusterImgFn != nil {
		return f.clusterImgFn(ctx, clusterID)
	}
	return &album.FaceSearchResult{}, nil
}

func (f *fakeService) SearchByFace(ctx context.Context, file album.FileUpload) (*album.FaceSearchResult, error) {
	f.record("SearchByFace")
	if f.faceByImgFn != nil {
		return f.faceByImgFn(ctx, file)
	}
	return &album.FaceSearchResult{}, nil
}

func (f *fakeService) SearchFacesByName(ctx context.Context, name string) (*album.FaceSearchResult, error) {
	f.record("SearchFacesByName")
	if f.faceByNameFn != nil {
		return f.faceByNameFn(ctx, name)
	}
	return &album.FaceSearchResult{}, nil
}

func (f *fakeService) StartJob(ctx context.Context, kind album.JobKind) (*album.JobActionResult, error) {
	f.record("StartJob")
	if f.startJobFn != nil {
		return f.startJobFn(ctx, kind)
	}
	return &album.JobActionResult{Success: true}, nil
}

func (f *fakeService) StopJob(ctx context.Context, kind album.JobKind) (*album.JobActionResult, error) {
	f.record("StopJob")
	if f.stopJobFn != nil {
		return f.stopJobFn(ctx, kind)
	}
	return &album.JobActionResult{Success: true}, nil
}

func (f *fakeService) JobStatus(ctx context.Context, kind album.JobKind) (*album.JobStatus, error) {
	f.record("JobStatus")
	if f.jobStatusFn != nil {
		return f.jobStatusFn(ctx, kind)
	}
	return &album.JobStatus{}, nil
}

var _ album.Service = (*fakeService)(nil)

// galleryOf builds n images named img-<offset+i>.jpg with ascending ids.
func galleryOf(offset, n int) []album.Image {
	images := make([]album.Image, n)
	for i := range images {
		id := int64(offset + i + 1)
		images[i] = album.Image{
			ID:           id,
			Filename:     fmt.Sprintf("img-%d.jpg", id),
			ThumbnailURL: fmt.Sprintf("/thumbnails/img-%d.jpg", id),
			OriginalURL:  fmt.Sprintf("/images/img-%d.jpg", id),
		}
	}
	return images
}

func scored(id int64, score float64) album.Image {
	return album.Image{
		ID:         id,
		Filename:   fmt.Sprintf("img-%d.jpg", id),
		Similarity: &score,
	}
}
