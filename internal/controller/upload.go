package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumen-tui/lumen/internal/album"
)

// Upload ingests the given files through the navigation-bar upload slot.
// At most one upload may be in flight; starting a new one cancels the
// previous (latest wins), and a superseded upload's completion never
// touches the status text set by the newer operation. Non-image files are
// filtered out before the request is built; if nothing survives the filter
// no request is issued. On success the gallery is force-refreshed,
// switching to it if the user was elsewhere, so the new images are visible
// immediately.
func (c *Controller) Upload(ctx context.Context, paths []string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("controller is closed")
	}
	c.uploadGen++
	gen := c.uploadGen
	if c.uploadCancel != nil {
		c.uploadCancel()
	}
	uploadCtx, cancel := context.WithCancel(ctx)
	c.uploadCancel = cancel
	c.uploading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if gen == c.uploadGen {
			c.uploading = false
			c.uploadCancel = nil
			cancel()
		}
		c.mu.Unlock()
	}()

	var kept []string
	for _, path := range paths {
		if album.IsImagePath(path) {
			kept = append(kept, path)
		}
	}
	if len(kept) == 0 {
		c.statusIfCurrent(gen, "No valid image files were selected.", true)
		return fmt.Errorf("no image files to upload")
	}

	c.statusIfCurrent(gen, fmt.Sprintf("Uploading %d images...", len(kept)), false)

	files := make([]album.FileUpload, 0, len(kept))
	var open []*os.File
	defer func() {
		for _, f := range open {
			_ = f.Close()
		}
	}()
	for _, path := range kept {
		f, err := os.Open(path)
		if err != nil {
			c.statusIfCurrent(gen, describeError("upload failed", err), true)
			return err
		}
		open = append(open, f)
		files = append(files, album.FileUpload{Name: filepath.Base(path), Data: f})
	}

	result, err := c.svc.UploadImages(uploadCtx, files)

	c.mu.Lock()
	if gen != c.uploadGen {
		// A newer upload owns the slot; this outcome is stale.
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.statusIfCurrent(gen, "Upload cancelled.", false)
			return nil
		}
		c.statusIfCurrent(gen, describeError("upload failed", err), true)
		return err
	}

	if err := c.SwitchToGallery(ctx, true); err != nil {
		return err
	}
	msg := result.Message
	if msg == "" {
		msg = fmt.Sprintf("Processed %d images.", len(result.ProcessedFiles))
	}
	c.statusIfCurrent(gen, msg, false)
	return nil
}

// CancelUpload aborts the in-flight upload, if any.
func (c *Controller) CancelUpload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uploadCancel != nil {
		c.uploadCancel()
	}
}

// Uploading reports whether an upload currently owns the slot.
func (c *Controller) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

// statusIfCurrent writes to the upload status line only while gen still
// identifies the newest upload.
func (c *Controller) statusIfCurrent(gen uint64, text string, isErr bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.uploadGen {
		c.setStatusLocked(SurfaceUpload, text, isErr)
	}
}
