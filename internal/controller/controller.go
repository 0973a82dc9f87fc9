package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/state"
)

// View identifies which top-level view is active.
type View int

const (
	// ViewGallery is the default paged listing of all images.
	ViewGallery View = iota
	// ViewFacePeople organizes images by detected-face clusters.
	ViewFacePeople
)

func (v View) String() string {
	if v == ViewFacePeople {
		return "faces"
	}
	return "gallery"
}

const (
	galleryPageSize  = 40
	revealBatchSize  = 40
	searchTopK       = 200
	defaultPollEvery = 2 * time.Second

	enhancedSearchThreshold = 0.50
	clipOnlySearchThreshold = 0.19
	// imageSearchSimilarityThreshold exists for parity with the server's
	// configuration; image-similarity results are filtered server-side and
	// no client-side cut is applied.
	imageSearchSimilarityThreshold = 0.6
)

// Options configure a Controller.
type Options struct {
	Service      album.Service
	Jobs         *state.Store // nil creates a private store
	PollInterval time.Duration
}

// Controller owns all mutable client state: the active view, the gallery
// pagination cursor, the selection set, the current search result set, the
// single-slot upload, and the batch-job pollers. It is safe for concurrent
// use; every network call releases the lock while in flight and re-validates
// a sequence token before committing, so stale responses never clobber newer
// state.
type Controller struct {
	mu  sync.Mutex
	svc album.Service

	jobs         *state.Store
	pollInterval time.Duration

	baseCtx context.Context
	cancel  context.CancelFunc
	closed  bool

	view      View
	items     []album.Image
	selection map[string]struct{}

	// Gallery pagination cursor. cursorSeq invalidates in-flight page
	// fetches when the cursor is reset underneath them.
	page             int
	totalCount       int
	galleryDisplayed int
	loadingGallery   bool
	galleryExhausted bool
	cursorSeq        uint64

	// Search result set, revealed in fixed-size batches.
	results          []album.Image
	resultsDisplayed int
	revealing        bool
	searchActive     bool
	searchSeq        uint64
	searchLabel      string

	attachment     string // image file attached to gallery search
	faceAttachment string // image file attached to face search

	clusters        []album.Cluster
	loadingClusters bool

	statusSeq uint64
	statuses  map[Surface]Message

	uploadGen    uint64
	uploadCancel context.CancelFunc
	uploading    bool

	pollers map[album.JobKind]*jobPoller
}

// New constructs a Controller around the given service.
func New(opts Options) (*Controller, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("service is required")
	}
	jobs := opts.Jobs
	if jobs == nil {
		jobs = state.NewStore()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollEvery
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		svc:          opts.Service,
		jobs:         jobs,
		pollInterval: interval,
		baseCtx:      ctx,
		cancel:       cancel,
		view:         ViewGallery,
		page:         1,
		selection:    make(map[string]struct{}),
		statuses:     make(map[Surface]Message),
		pollers:      make(map[album.JobKind]*jobPoller),
	}, nil
}

// Close tears down every poller and in-flight upload. The controller is
// unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.uploadCancel != nil {
		c.uploadCancel()
		c.uploadCancel = nil
	}
	pollers := c.pollers
	c.pollers = make(map[album.JobKind]*jobPoller)
	c.mu.Unlock()

	c.cancel()
	for kind, p := range pollers {
		p.stop()
		c.jobs.SetPolling(kind, false)
	}
}

// View returns the active view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Jobs exposes the job snapshot store.
func (c *Controller) Jobs() *state.Store {
	return c.jobs
}

// SwitchToGallery activates the gallery view. Unlike the face view, gallery
// entry is never a no-op: re-entering clears search state again, and with
// force it also resets the pagination cursor and re-fetches page one. That
// asymmetry is intentional and callers rely on it (the brand link doubles
// as a "reset everything" affordance).
func (c *Controller) SwitchToGallery(ctx context.Context, force bool) error {
	c.mu.Lock()
	c.view = ViewGallery
	c.clearSearchStateLocked()
	c.clearSelectionLocked()
	c.faceAttachment = ""
	c.setStatusLocked(SurfaceFaces, "", false)
	c.setStatusLocked(SurfaceSearch, "", false)
	c.setStatusLocked(SurfaceUpload, "", false)
	if !force {
		c.mu.Unlock()
		return nil
	}
	c.resetCursorLocked()
	c.items = nil
	c.mu.Unlock()

	return c.loadNextGalleryPage(ctx)
}

// SwitchToFaces activates the face-people view. Re-entry while already on
// it is an idempotent no-op; a genuine transition clears search and
// selection state and fetches the cluster list fresh (clusters are never
// cached across visits).
func (c *Controller) SwitchToFaces(ctx context.Context) error {
	c.mu.Lock()
	if c.view == ViewFacePeople {
		c.mu.Unlock()
		return nil
	}
	c.view = ViewFacePeople
	c.clearSearchStateLocked()
	c.attachment = ""
	c.clearSelectionLocked()
	c.items = nil
	c.setStatusLocked(SurfaceSearch, "", false)
	c.loadingClusters = true
	c.mu.Unlock()

	clusters, err := c.svc.FaceClusters(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingClusters = false
	if c.view != ViewFacePeople {
		// Superseded by a switch back to the gallery while loading.
		return nil
	}
	if err != nil {
		c.setStatusLocked(SurfaceFaces, describeError("loading people failed", err), true)
		return err
	}
	c.clusters = clusters
	return nil
}

// ToggleSelect flips the selection state of one image id and reports the
// new membership.
func (c *Controller) ToggleSelect(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
		return false
	}
	c.selection[id] = struct{}{}
	return true
}

// IsSelected reports selection membership.
func (c *Controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selection[id]
	return ok
}

// ClearSelection empties the selection set.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelectionLocked()
}

// SelectionCount returns the number of selected images.
func (c *Controller) SelectionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selection)
}

// SelectedIDs returns the selected ids in a stable order.
func (c *Controller) SelectedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedIDsLocked()
}

func (c *Controller) selectedIDsLocked() []string {
	ids := make([]string, 0, len(c.selection))
	for id := range c.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeleteSelected deletes every selected image in one request. On success
// the gallery is fully reloaded rather than spliced locally, so the total
// count always comes from the server.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	c.mu.Lock()
	ids := c.selectedIDsLocked()
	c.mu.Unlock()
	if len(ids) == 0 {
		return fmt.Errorf("no images selected")
	}

	result, err := c.svc.DeleteImages(ctx, ids)
	if err != nil {
		c.setStatus(SurfaceSearch, describeError("delete failed", err), true)
		return err
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "delete failed"
		}
		c.setStatus(SurfaceSearch, msg, true)
		return fmt.Errorf("%s", msg)
	}

	if err := c.SwitchToGallery(ctx, true); err != nil {
		return err
	}
	c.setStatus(SurfaceUpload, fmt.Sprintf("Deleted %d images.", len(ids)), false)
	return nil
}

// TagSelected applies the tags to every selected image in one request.
// The selection is kept so follow-up actions can reuse it.
func (c *Controller) TagSelected(ctx context.Context, tags []string) error {
	c.mu.Lock()
	ids := c.selectedIDsLocked()
	c.mu.Unlock()
	if len(ids) == 0 {
		return fmt.Errorf("no images selected")
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := trimTag(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("no tags provided")
	}

	result, err := c.svc.AddUserTags(ctx, ids, cleaned)
	if err != nil {
		c.setStatus(SurfaceSearch, describeError("tagging failed", err), true)
		return err
	}
	msg := result.Message
	if msg == "" {
		msg = fmt.Sprintf("Tagged %d images.", len(ids))
	}
	c.setStatus(SurfaceSearch, msg, false)
	return nil
}

// ImageDetails fetches the detail panel data for one image.
func (c *Controller) ImageDetails(ctx context.Context, id int64) (*album.ImageDetails, error) {
	return c.svc.ImageDetails(ctx, id)
}

// EnhanceImage triggers a single-image enhancement and patches the
// displayed copy with the server's confirmed flag.
func (c *Controller) EnhanceImage(ctx context.Context, id int64) (*album.EnhanceResult, error) {
	result, err := c.svc.EnhanceImage(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].IsEnhanced = result.IsEnhanced
		}
	}
	c.mu.Unlock()
	return result, nil
}

// Settings reads the server settings document.
func (c *Controller) Settings(ctx context.Context) (*album.Settings, error) {
	return c.svc.Settings(ctx)
}

// SaveSettings posts changed settings fields and returns the server's
// confirmed state.
func (c *Controller) SaveSettings(ctx context.Context, patch album.Settings) (*album.SettingsResponse, error) {
	response, err := c.svc.SaveSettings(ctx, patch)
	if err != nil {
		c.setStatus(SurfaceSettings, describeError("saving settings failed", err), true)
		return nil, err
	}
	msg := response.Message
	if msg == "" {
		msg = "Settings saved."
	}
	c.setStatus(SurfaceSettings, msg, false)
	return response, nil
}

func (c *Controller) clearSelectionLocked() {
	if len(c.selection) > 0 {
		c.selection = make(map[string]struct{})
	}
}

func (c *Controller) clearSearchStateLocked() {
	c.searchSeq++
	c.searchActive = false
	c.results = nil
	c.resultsDisplayed = 0
	c.revealing = false
	c.searchLabel = ""
	c.attachment = ""
}

func (c *Controller) resetCursorLocked() {
	c.cursorSeq++
	c.page = 1
	c.totalCount = 0
	c.galleryDisplayed = 0
	c.galleryExhausted = false
	c.loadingGallery = false
}
