package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/lumen-tui/lumen/internal/album"
)

const defaultSettle = 2 * time.Second

// Watcher monitors one directory and uploads every image file that appears
// in it. Files are uploaded only after their writes have settled, so a
// large photo being copied in is not caught half-written.
type Watcher struct {
	svc    album.Service
	dir    string
	settle time.Duration

	fsw *fsnotify.Watcher
}

// New creates a watcher over dir. A settle of zero uses the default.
func New(svc album.Service, dir string, settle time.Duration) (*Watcher, error) {
	if svc == nil {
		return nil, fmt.Errorf("service is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", dir)
	}
	if settle <= 0 {
		settle = defaultSettle
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{svc: svc, dir: dir, settle: settle, fsw: fsw}, nil
}

// Run blocks processing events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	log.Info().Str("dir", w.dir).Msg("watching for new images")

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !album.IsImagePath(event.Name) {
				continue
			}
			// Every new write pushes the settle deadline back.
			pending[event.Name] = time.Now()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")

		case <-ticker.C:
			now := time.Now()
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				w.uploadOne(ctx, path)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) uploadOne(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		// The file may have been moved or deleted before it settled.
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("file", path).Msg("stat failed")
		}
		return
	}
	if info.IsDir() {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("open failed")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := w.svc.UploadImages(ctx, []album.FileUpload{{Name: filepath.Base(path), Data: file}})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("upload failed")
		return
	}
	log.Info().Str("file", filepath.Base(path)).Str("result", result.Message).Msg("uploaded")
}
