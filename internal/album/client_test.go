package album

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultServerBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultServerBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotImagesQuery url.Values
	var gotFaceQuery url.Values
	var gotSearchBody map[string]any
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/images":
			gotImagesQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(PageResult{
				Images:     []Image{{ID: 7, Filename: "cat.jpg"}},
				TotalCount: 120,
			})
		case "/search_images":
			_ = json.NewDecoder(r.Body).Decode(&gotSearchBody)
			sim := 0.42
			_ = json.NewEncoder(w).Encode(SearchResult{
				Results:  []Image{{ID: 1, Similarity: &sim}},
				Enhanced: true,
			})
		case "/faces/search":
			gotFaceQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(FaceSearchResult{Results: []Image{{ID: 3}}})
		case "/faces/clusters":
			_ = json.NewEncoder(w).Encode(ClusterListResponse{
				Clusters: []Cluster{{ClusterID: 2, FaceCount: 9}},
			})
		case "/batch_face_clustering/status":
			_ = json.NewEncoder(w).Encode(JobStatus{IsRunning: true, ProcessedCount: 4, TotalFaces: 10})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.Images(ctx, 3, 40)
	if err != nil {
		t.Fatalf("Images returned error: %v", err)
	}
	if page.TotalCount != 120 || len(page.Images) != 1 || page.Images[0].ID != 7 {
		t.Fatalf("Images payload = %#v, want 1 image, total 120", page)
	}
	if gotImagesQuery.Get("page") != "3" || gotImagesQuery.Get("limit") != "40" {
		t.Fatalf("Images query = %v, want page=3 limit=40", gotImagesQuery)
	}

	res, err := c.SearchImages(ctx, "red flowers", 200)
	if err != nil {
		t.Fatalf("SearchImages returned error: %v", err)
	}
	if !res.Enhanced || len(res.Results) != 1 {
		t.Fatalf("SearchImages payload = %#v, want enhanced, 1 result", res)
	}
	if gotSearchBody["query_text"] != "red flowers" || gotSearchBody["top_k"] != float64(200) {
		t.Fatalf("SearchImages body = %v, want query_text and top_k encoded", gotSearchBody)
	}

	faces, err := c.SearchFacesByName(ctx, "Ada Lovelace")
	if err != nil {
		t.Fatalf("SearchFacesByName returned error: %v", err)
	}
	if len(faces.Results) != 1 || faces.Results[0].ID != 3 {
		t.Fatalf("SearchFacesByName payload = %#v, want 1 result id=3", faces)
	}
	if gotFaceQuery.Get("name") != "Ada Lovelace" {
		t.Fatalf("face search query = %v, want name encoded", gotFaceQuery)
	}

	clusters, err := c.FaceClusters(ctx)
	if err != nil {
		t.Fatalf("FaceClusters returned error: %v", err)
	}
	if len(clusters) != 1 || clusters[0].FaceCount != 9 {
		t.Fatalf("FaceClusters payload = %#v, want 1 cluster", clusters)
	}

	status, err := c.JobStatus(ctx, JobFaceClustering)
	if err != nil {
		t.Fatalf("JobStatus returned error: %v", err)
	}
	if !status.IsRunning || status.Total() != 10 {
		t.Fatalf("JobStatus payload = %#v, want running, total 10", status)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "lumen/") {
		t.Fatalf("User-Agent = %q, want lumen/*", gotUserAgent)
	}
}

func TestClient_MultipartUpload(t *testing.T) {
	t.Parallel()

	var gotField string
	var gotNames []string
	var gotPayloads []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload_images" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			for _, h := range headers {
				gotNames = append(gotNames, h.Filename)
				f, _ := h.Open()
				data, _ := io.ReadAll(f)
				_ = f.Close()
				gotPayloads = append(gotPayloads, string(data))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UploadResult{
			Message:        "2 images processed",
			ProcessedFiles: gotNames,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := c.UploadImages(context.Background(), []FileUpload{
		{Name: "a.jpg", Data: strings.NewReader("aaa")},
		{Name: "b.png", Data: strings.NewReader("bbb")},
	})
	if err != nil {
		t.Fatalf("UploadImages returned error: %v", err)
	}
	if result.Message != "2 images processed" {
		t.Fatalf("UploadImages message = %q", result.Message)
	}
	if gotField != "files" {
		t.Fatalf("multipart field = %q, want files", gotField)
	}
	if len(gotNames) != 2 || gotNames[0] != "a.jpg" || gotNames[1] != "b.png" {
		t.Fatalf("multipart filenames = %v", gotNames)
	}
	if gotPayloads[0] != "aaa" || gotPayloads[1] != "bbb" {
		t.Fatalf("multipart payloads = %v", gotPayloads)
	}
}

func TestClient_ImageQueryMultipartFields(t *testing.T) {
	t.Parallel()

	fieldsByPath := map[string]string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for field := range r.MultipartForm.File {
			fieldsByPath[r.URL.Path] = field
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search_by_uploaded_image":
			_ = json.NewEncoder(w).Encode(SearchResult{QueryFilename: "q.jpg"})
		case "/faces/search_by_face":
			_ = json.NewEncoder(w).Encode(FaceSearchResult{Message: "No matching person found."})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	res, err := c.SearchByImage(context.Background(), FileUpload{Name: "q.jpg", Data: strings.NewReader("qqq")})
	if err != nil {
		t.Fatalf("SearchByImage returned error: %v", err)
	}
	if res.QueryFilename != "q.jpg" {
		t.Fatalf("SearchByImage payload = %#v", res)
	}
	if got := fieldsByPath["/search_by_uploaded_image"]; got != "image_query_file" {
		t.Fatalf("image search multipart field = %q, want image_query_file", got)
	}

	faces, err := c.SearchByFace(context.Background(), FileUpload{Name: "f.png", Data: strings.NewReader("fff")})
	if err != nil {
		t.Fatalf("SearchByFace returned error: %v", err)
	}
	if faces.Message != "No matching person found." {
		t.Fatalf("SearchByFace payload = %#v", faces)
	}
	if got := fieldsByPath["/faces/search_by_face"]; got != "face_query_file" {
		t.Fatalf("face search multipart field = %q, want face_query_file", got)
	}
}

func TestClient_UploadRequiresFiles(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.UploadImages(context.Background(), nil); err == nil {
		t.Fatalf("UploadImages returned nil error, want error")
	}
	if _, err := c.DeleteImages(context.Background(), nil); err == nil {
		t.Fatalf("DeleteImages returned nil error, want error")
	}
	if _, err := c.AddUserTags(context.Background(), []string{"1"}, nil); err == nil {
		t.Fatalf("AddUserTags returned nil error, want error")
	}
	if _, err := c.JobStatus(context.Background(), JobKind("bogus")); err == nil {
		t.Fatalf("JobStatus accepted bogus kind")
	}
}

func TestClient_ApplicationErrorsAndHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/images":
			_ = json.NewEncoder(w).Encode(PageResult{Error: "index not built"})
		case "/search_images":
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
		case "/faces/clusters":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Images(context.Background(), 1, 40)
	var apiErr *APIError
	if err == nil || !errors.As(err, &apiErr) || apiErr.Message != "index not built" {
		t.Fatalf("Images error = %v, want APIError index not built", err)
	}

	_, err = c.SearchImages(context.Background(), "x", 10)
	if err == nil || !errors.As(err, &apiErr) || apiErr.Message != "model unavailable" {
		t.Fatalf("SearchImages error = %v, want APIError model unavailable", err)
	}

	_, err = c.FaceClusters(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FaceClusters error = %v, want decode response error", err)
	}

	_, err = c.StopJob(context.Background(), JobEnhance)
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("StopJob error = %v, want status 500 error", err)
	}
}

func TestClient_CancelledRequestReturnsContextError(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err = c.Images(ctx, 1, 40)
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("Images error = %v, want context canceled", err)
	}
}
