package album

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Image mirrors the image summary payload returned by the album server.
// Similarity is only present on search results.
type Image struct {
	ID           int64    `json:"id"`
	Filename     string   `json:"filename"`
	ThumbnailURL string   `json:"thumbnail_url"`
	OriginalURL  string   `json:"original_url"`
	Similarity   *float64 `json:"similarity,omitempty"`
	IsEnhanced   bool     `json:"is_enhanced,omitempty"`
}

// Key returns the image identifier in the string form used by selection
// and batch endpoints.
func (i Image) Key() string {
	return fmt.Sprintf("%d", i.ID)
}

// SimilarityScore returns the similarity value and whether it was present.
func (i Image) SimilarityScore() (float64, bool) {
	if i.Similarity == nil {
		return 0, false
	}
	return *i.Similarity, true
}

// DisplayName shortens long filenames the way the gallery renders them.
func (i Image) DisplayName(max int) string {
	name := i.Filename
	if max > 3 && len(name) > max {
		return name[:max-3] + "..."
	}
	return name
}

// PageResult mirrors /images.
type PageResult struct {
	Images     []Image `json:"images"`
	TotalCount int     `json:"total_count"`
	Error      string  `json:"error,omitempty"`
}

// SearchResult mirrors /search_images and /search_by_uploaded_image.
type SearchResult struct {
	Results       []Image `json:"results"`
	Enhanced      bool    `json:"search_mode_is_enhanced"`
	QueryFilename string  `json:"query_filename,omitempty"`
	Message       string  `json:"message,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// ImageDetails mirrors /image_details/{id}.
type ImageDetails struct {
	Description string   `json:"qwen_description"`
	Keywords    []string `json:"qwen_keywords"`
	UserTags    []string `json:"user_tags"`
	IsEnhanced  bool     `json:"is_enhanced"`
	Error       string   `json:"error,omitempty"`
}

// EnhanceResult mirrors /enhance_image/{id}.
type EnhanceResult struct {
	IsEnhanced  bool     `json:"is_enhanced"`
	Description string   `json:"qwen_description"`
	Keywords    []string `json:"qwen_keywords"`
	Error       string   `json:"error,omitempty"`
}

// UploadResult mirrors /upload_images.
type UploadResult struct {
	Message        string   `json:"message"`
	ProcessedFiles []string `json:"processed_files"`
	Error          string   `json:"error,omitempty"`
}

// BatchResult mirrors /delete_images_batch and /add_user_tags_batch.
type BatchResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Cluster mirrors one entry of /faces/clusters.
type Cluster struct {
	ClusterID         int64  `json:"cluster_id"`
	Name              string `json:"name"`
	FaceCount         int    `json:"face_count"`
	CoverThumbnailURL string `json:"cover_thumbnail_url"`
}

// DisplayName returns the person name or a numbered placeholder.
func (c Cluster) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return fmt.Sprintf("Person %d", c.ClusterID)
}

// ClusterListResponse mirrors /faces/clusters.
type ClusterListResponse struct {
	Clusters []Cluster `json:"clusters"`
	Error    string    `json:"error,omitempty"`
}

// FaceSearchResult mirrors /faces/search_by_face, /faces/search and
// /faces/clusters/{id}/images.
type FaceSearchResult struct {
	Results []Image `json:"results"`
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Settings mirrors the /config/settings document.
type Settings struct {
	QwenAnalysisEnabled   *bool    `json:"qwen_vl_analysis_enabled,omitempty"`
	UseEnhancedSearch     *bool    `json:"use_enhanced_search,omitempty"`
	QwenModelName         *string  `json:"qwen_model_name,omitempty"`
	QwenAPIKey            *string  `json:"qwen_api_key,omitempty"`
	QwenBaseURL           *string  `json:"qwen_base_url,omitempty"`
	FaceRecognition       *bool    `json:"face_recognition_enabled,omitempty"`
	FaceAPIURL            *string  `json:"face_api_url,omitempty"`
	FaceClusterThreshold  *float64 `json:"face_cluster_threshold,omitempty"`
	ClipEmbeddingEnabled  *bool    `json:"clip_embedding_enabled,omitempty"`
	FaceUploadEnabled     *bool    `json:"face_recognition_upload_enabled,omitempty"`
	FaceClusteringEnabled *bool    `json:"face_clustering_enabled,omitempty"`
}

// SettingsResponse mirrors the POST /config/settings acknowledgement.
type SettingsResponse struct {
	Message  string    `json:"message"`
	Settings *Settings `json:"settings,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// JobKind identifies one of the server's batch job families.
type JobKind string

const (
	JobEnhance        JobKind = "enhance"
	JobClip           JobKind = "clip"
	JobFaceDetection  JobKind = "face_detection"
	JobFaceClustering JobKind = "face_clustering"
)

// JobKinds lists every job family in display order.
func JobKinds() []JobKind {
	return []JobKind{JobEnhance, JobClip, JobFaceDetection, JobFaceClustering}
}

// Valid reports whether the kind names a known job family.
func (k JobKind) Valid() bool {
	switch k {
	case JobEnhance, JobClip, JobFaceDetection, JobFaceClustering:
		return true
	}
	return false
}

// Label returns a human readable job name.
func (k JobKind) Label() string {
	switch k {
	case JobEnhance:
		return "AI Enhance"
	case JobClip:
		return "CLIP Embeddings"
	case JobFaceDetection:
		return "Face Detection"
	case JobFaceClustering:
		return "Face Clustering"
	}
	return string(k)
}

func (k JobKind) pathPrefix() string {
	return "/batch_" + string(k)
}

// JobActionResult mirrors /batch_*/start and /batch_*/stop.
type JobActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JobStatus mirrors /batch_*/status. The enhance and clip jobs report
// total_images / current_image_filename; the face jobs report total_faces /
// current_face_id.
type JobStatus struct {
	IsRunning       bool     `json:"is_running"`
	ProcessedCount  int      `json:"processed_count"`
	TotalImages     int      `json:"total_images,omitempty"`
	TotalFaces      int      `json:"total_faces,omitempty"`
	CurrentFilename string   `json:"current_image_filename,omitempty"`
	CurrentFaceID   string   `json:"current_face_id,omitempty"`
	LastError       string   `json:"last_error,omitempty"`
	Errors          []string `json:"errors,omitempty"`
}

// Total returns whichever total the job family reported.
func (s JobStatus) Total() int {
	if s.TotalFaces > 0 {
		return s.TotalFaces
	}
	return s.TotalImages
}

// CurrentLabel returns the in-progress item label, if any.
func (s JobStatus) CurrentLabel() string {
	if s.CurrentFilename != "" {
		return s.CurrentFilename
	}
	return s.CurrentFaceID
}

// Percent returns completion as 0-100, clamped.
func (s JobStatus) Percent() float64 {
	total := s.Total()
	if total <= 0 {
		return 0
	}
	pct := float64(s.ProcessedCount) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
	".tiff": {},
	".heic": {},
}

// IsImagePath reports whether the filename looks like an image. Uploads
// filter on this before any request is built.
func IsImagePath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := imageExtensions[ext]
	return ok
}
