package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumen-tui/lumen/internal/album"
)

// AttachSearchImage attaches an image file to the gallery search. While an
// attachment is present, search always runs image-similarity regardless of
// any typed text.
func (c *Controller) AttachSearchImage(path string) error {
	if !album.IsImagePath(path) {
		return fmt.Errorf("%s is not an image file", filepath.Base(path))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachment = path
	return nil
}

// ClearSearchImage detaches the gallery search image.
func (c *Controller) ClearSearchImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachment = ""
}

// AttachFaceImage attaches an image file to the face search.
func (c *Controller) AttachFaceImage(path string) error {
	if !album.IsImagePath(path) {
		return fmt.Errorf("%s is not an image file", filepath.Base(path))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faceAttachment = path
	return nil
}

// ClearFaceImage detaches the face search image.
func (c *Controller) ClearFaceImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faceAttachment = ""
}

// Search dispatches a gallery search. An attached image always wins over
// the typed text; with neither present nothing is sent and the status line
// asks for a query. Results arrive as one unpaginated list and the first
// batch is revealed immediately.
func (c *Controller) Search(ctx context.Context, text string) error {
	c.mu.Lock()
	attachment := c.attachment
	text = strings.TrimSpace(text)
	if attachment == "" && text == "" {
		c.setStatusLocked(SurfaceSearch, "Enter a search description first.", false)
		c.mu.Unlock()
		return nil
	}
	c.clearSelectionLocked()
	c.beginSearchLocked()
	seq := c.searchSeq
	if attachment != "" {
		c.setStatusLocked(SurfaceSearch, fmt.Sprintf("Searching by image %q...", filepath.Base(attachment)), false)
	} else {
		c.setStatusLocked(SurfaceSearch, fmt.Sprintf("Searching for %q...", text), false)
	}
	c.mu.Unlock()

	if attachment != "" {
		return c.searchByImage(ctx, seq, attachment)
	}
	return c.searchByText(ctx, seq, text)
}

func (c *Controller) searchByText(ctx context.Context, seq uint64, text string) error {
	result, err := c.svc.SearchImages(ctx, text, searchTopK)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return nil // superseded by a newer search or a view switch
	}
	if err != nil {
		c.setStatusLocked(SurfaceSearch, describeError("search failed", err), true)
		return err
	}

	threshold := clipOnlySearchThreshold
	if result.Enhanced {
		threshold = enhancedSearchThreshold
	}
	kept := make([]album.Image, 0, len(result.Results))
	for _, img := range result.Results {
		if score, ok := img.SimilarityScore(); ok && score >= threshold {
			kept = append(kept, img)
		}
	}

	c.commitResultsLocked(kept, text)
	if len(kept) == 0 {
		c.setStatusLocked(SurfaceSearch, fmt.Sprintf("No images matched %q closely enough.", text), false)
	} else {
		c.setStatusLocked(SurfaceSearch, fmt.Sprintf("Found %d images for %q.", len(kept), text), false)
	}
	return nil
}

func (c *Controller) searchByImage(ctx context.Context, seq uint64, path string) error {
	file, err := os.Open(path)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if seq == c.searchSeq {
			c.setStatusLocked(SurfaceSearch, describeError("image search failed", err), true)
		}
		return err
	}
	defer func() { _ = file.Close() }()

	result, err := c.svc.SearchByImage(ctx, album.FileUpload{Name: filepath.Base(path), Data: file})

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return nil
	}
	if err != nil {
		c.setStatusLocked(SurfaceSearch, describeError("image search failed", err), true)
		return err
	}

	// The server already filtered by similarity; no client-side cut here.
	label := result.QueryFilename
	if label == "" {
		label = filepath.Base(path)
	}
	c.commitResultsLocked(result.Results, label)
	if len(result.Results) == 0 {
		c.setStatusLocked(SurfaceSearch, fmt.Sprintf("No images similar to %q were found.", label), false)
	} else {
		c.setStatusLocked(SurfaceSearch, fmt.Sprintf("Found %d images similar to %q.", len(result.Results), label), false)
	}
	return nil
}

// SearchFaces dispatches a face search: an attached face image wins over
// the typed person name.
func (c *Controller) SearchFaces(ctx context.Context, name string) error {
	c.mu.Lock()
	attachment := c.faceAttachment
	name = strings.TrimSpace(name)
	if attachment == "" && name == "" {
		c.setStatusLocked(SurfaceFaces, "Enter a person name first.", false)
		c.mu.Unlock()
		return nil
	}
	c.clearSelectionLocked()
	c.beginSearchLocked()
	seq := c.searchSeq
	if attachment != "" {
		c.setStatusLocked(SurfaceFaces, fmt.Sprintf("Searching faces by image %q...", filepath.Base(attachment)), false)
	} else {
		c.setStatusLocked(SurfaceFaces, fmt.Sprintf("Searching for %q...", name), false)
	}
	c.mu.Unlock()

	var result *album.FaceSearchResult
	var err error
	if attachment != "" {
		var file *os.File
		file, err = os.Open(attachment)
		if err == nil {
			result, err = c.svc.SearchByFace(ctx, album.FileUpload{Name: filepath.Base(attachment), Data: file})
			_ = file.Close()
		}
	} else {
		result, err = c.svc.SearchFacesByName(ctx, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return nil
	}
	if err != nil {
		c.setStatusLocked(SurfaceFaces, describeError("face search failed", err), true)
		return err
	}

	label := name
	if attachment != "" {
		label = filepath.Base(attachment)
	}
	c.commitResultsLocked(result.Results, label)
	switch {
	case result.Message != "":
		c.setStatusLocked(SurfaceFaces, result.Message, false)
	case len(result.Results) == 0:
		c.setStatusLocked(SurfaceFaces, fmt.Sprintf("No photos found for %q.", label), false)
	default:
		c.setStatusLocked(SurfaceFaces, fmt.Sprintf("Found %d photos for %q.", len(result.Results), label), false)
	}
	return nil
}

// OpenCluster loads every image belonging to one face cluster as the
// current result set.
func (c *Controller) OpenCluster(ctx context.Context, cluster album.Cluster) error {
	c.mu.Lock()
	c.clearSelectionLocked()
	c.beginSearchLocked()
	seq := c.searchSeq
	c.setStatusLocked(SurfaceFaces, fmt.Sprintf("Loading photos of %s...", cluster.DisplayName()), false)
	c.mu.Unlock()

	result, err := c.svc.ClusterImages(ctx, cluster.ClusterID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return nil
	}
	if err != nil {
		c.setStatusLocked(SurfaceFaces, describeError("loading photos failed", err), true)
		return err
	}
	c.commitResultsLocked(result.Results, cluster.DisplayName())
	c.setStatusLocked(SurfaceFaces, fmt.Sprintf("Showing %d photos of %s.", len(result.Results), cluster.DisplayName()), false)
	return nil
}

// beginSearchLocked supersedes any in-flight search and empties the
// displayed result set.
func (c *Controller) beginSearchLocked() {
	c.searchSeq++
	c.searchActive = false
	c.results = nil
	c.resultsDisplayed = 0
	c.revealing = false
	c.items = nil
	c.searchLabel = ""
}

// commitResultsLocked installs a search result list and reveals its first
// batch. The caller holds the lock and has already validated the sequence
// token.
func (c *Controller) commitResultsLocked(results []album.Image, label string) {
	c.searchActive = true
	c.results = results
	c.resultsDisplayed = 0
	c.searchLabel = label
	c.items = nil
	c.revealNextBatchLocked()
}
