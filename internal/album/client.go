package album

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Service defines the album server operations the client exposes. It is
// implemented by *Client and can be faked for controller tests.
type Service interface {
	Settings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, patch Settings) (*SettingsResponse, error)
	UploadImages(ctx context.Context, files []FileUpload) (*UploadResult, error)
	Images(ctx context.Context, page, limit int) (*PageResult, error)
	SearchImages(ctx context.Context, queryText string, topK int) (*SearchResult, error)
	SearchByImage(ctx context.Context, file FileUpload) (*SearchResult, error)
	ImageDetails(ctx context.Context, id int64) (*ImageDetails, error)
	EnhanceImage(ctx context.Context, id int64) (*EnhanceResult, error)
	DeleteImages(ctx context.Context, ids []string) (*BatchResult, error)
	AddUserTags(ctx context.Context, ids []string, tags []string) (*BatchResult, error)
	FaceClusters(ctx context.Context) ([]Cluster, error)
	ClusterImages(ctx context.Context, clusterID int64) (*FaceSearchResult, error)
	SearchByFace(ctx context.Context, file FileUpload) (*FaceSearchResult, error)
	SearchFacesByName(ctx context.Context, name string) (*FaceSearchResult, error)
	StartJob(ctx context.Context, kind JobKind) (*JobActionResult, error)
	StopJob(ctx context.Context, kind JobKind) (*JobActionResult, error)
	JobStatus(ctx context.Context, kind JobKind) (*JobStatus, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// APIError is an application-level failure embedded in an otherwise
// successful response body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// FileUpload names one part of a multipart upload body.
type FileUpload struct {
	Name string
	Data io.Reader
}

// Client talks to the album server HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerBind = "127.0.0.1:8000"
	defaultUserAgent  = "lumen/0.1"
	requestTimeout    = 30 * time.Second
)

// NewClient builds a Client from a server URL or host:port value.
func NewClient(server string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Settings retrieves the server feature toggles and model configuration.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var payload Settings
	if err := c.get(ctx, &url.URL{Path: "/config/settings"}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SaveSettings posts the changed settings fields. Unset pointers are
// omitted so the server only touches what the caller changed.
func (c *Client) SaveSettings(ctx context.Context, patch Settings) (*SettingsResponse, error) {
	var payload SettingsResponse
	if err := c.postJSON(ctx, "/config/settings", patch, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// UploadImages sends the files as one multipart request. The caller is
// expected to have filtered out non-image files already.
func (c *Client) UploadImages(ctx context.Context, files []FileUpload) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	var payload UploadResult
	if err := c.postMultipart(ctx, "/upload_images", "files", files, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// Images retrieves one gallery page.
func (c *Client) Images(ctx context.Context, page, limit int) (*PageResult, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))
	rel := &url.URL{Path: "/images", RawQuery: values.Encode()}
	var payload PageResult
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// SearchImages performs a free-text search. The server returns the full
// unpaginated candidate list; the caller reveals it in batches.
func (c *Client) SearchImages(ctx context.Context, queryText string, topK int) (*SearchResult, error) {
	body := struct {
		QueryText string `json:"query_text"`
		TopK      int    `json:"top_k"`
	}{QueryText: queryText, TopK: topK}
	var payload SearchResult
	if err := c.postJSON(ctx, "/search_images", body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// SearchByImage performs an image similarity search with an uploaded query file.
func (c *Client) SearchByImage(ctx context.Context, file FileUpload) (*SearchResult, error) {
	var payload SearchResult
	if err := c.postMultipart(ctx, "/search_by_uploaded_image", "image_query_file", []FileUpload{file}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// ImageDetails retrieves the detail panel data for one image.
func (c *Client) ImageDetails(ctx context.Context, id int64) (*ImageDetails, error) {
	var payload ImageDetails
	if err := c.get(ctx, &url.URL{Path: fmt.Sprintf("/image_details/%d", id)}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// EnhanceImage triggers a single-image enhancement pass.
func (c *Client) EnhanceImage(ctx context.Context, id int64) (*EnhanceResult, error) {
	var payload EnhanceResult
	if err := c.postJSON(ctx, fmt.Sprintf("/enhance_image/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// DeleteImages deletes the identified images in one request.
func (c *Client) DeleteImages(ctx context.Context, ids []string) (*BatchResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no images selected")
	}
	body := struct {
		ImageIDs []string `json:"image_ids"`
	}{ImageIDs: ids}
	var payload BatchResult
	if err := c.postJSON(ctx, "/delete_images_batch", body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// AddUserTags applies the tags to every identified image in one request.
func (c *Client) AddUserTags(ctx context.Context, ids []string, tags []string) (*BatchResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no images selected")
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags provided")
	}
	body := struct {
		ImageIDs []string `json:"image_ids"`
		UserTags []string `json:"user_tags"`
	}{ImageIDs: ids, UserTags: tags}
	var payload BatchResult
	if err := c.postJSON(ctx, "/add_user_tags_batch", body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// FaceClusters retrieves the current face cluster list.
func (c *Client) FaceClusters(ctx context.Context) ([]Cluster, error) {
	var payload ClusterListResponse
	if err := c.get(ctx, &url.URL{Path: "/faces/clusters"}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return payload.Clusters, nil
}

// ClusterImages retrieves the images belonging to one cluster.
func (c *Client) ClusterImages(ctx context.Context, clusterID int64) (*FaceSearchResult, error) {
	rel := &url.URL{Path: fmt.Sprintf("/faces/clusters/%d/images", clusterID)}
	var payload FaceSearchResult
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// SearchByFace searches for images containing faces similar to the query file.
func (c *Client) SearchByFace(ctx context.Context, file FileUpload) (*FaceSearchResult, error) {
	var payload FaceSearchResult
	if err := c.postMultipart(ctx, "/faces/search_by_face", "face_query_file", []FileUpload{file}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// SearchFacesByName searches clusters by person name.
func (c *Client) SearchFacesByName(ctx context.Context, name string) (*FaceSearchResult, error) {
	values := url.Values{}
	values.Set("name", name)
	rel := &url.URL{Path: "/faces/search", RawQuery: values.Encode()}
	var payload FaceSearchResult
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// StartJob asks the server to start a batch job.
func (c *Client) StartJob(ctx context.Context, kind JobKind) (*JobActionResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}
	var payload JobActionResult
	if err := c.postJSON(ctx, kind.pathPrefix()+"/start", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &APIError{Message: payload.Error}
	}
	return &payload, nil
}

// StopJob asks the server to stop a running batch job.
func (c *Client) StopJob(ctx context.Context, kind JobKind) (*JobActionResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}
	var payload JobActionResult
	if err := c.postJSON(ctx, kind.pathPrefix()+"/stop", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// JobStatus polls the progress of a batch job.
func (c *Client) JobStatus(ctx context.Context, kind JobKind) (*JobStatus, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}
	var payload JobStatus
	if err := c.get(ctx, &url.URL{Path: kind.pathPrefix() + "/status"}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, rel *url.URL, dest any) error {
	return c.do(ctx, http.MethodGet, rel, "", nil, dest)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, http.MethodPost, &url.URL{Path: path}, "application/json", reader, dest)
}

func (c *Client) postMultipart(ctx context.Context, path, field string, files []FileUpload, dest any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile(field, file.Name)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file.Data); err != nil {
			return fmt.Errorf("copy %s: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, &url.URL{Path: path}, writer.FormDataContentType(), &buf, dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, contentType string, body io.Reader, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		// Error bodies may still carry an application message worth surfacing.
		var apiBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiBody); decodeErr == nil && apiBody.Error != "" {
			return &APIError{Message: apiBody.Error}
		}
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServerBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
