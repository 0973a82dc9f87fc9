package controller

import "github.com/lumen-tui/lumen/internal/album"

// Snapshot is a point-in-time copy of everything a renderer needs. Slices
// and maps are cloned so the UI can hold a Snapshot across frames without
// racing controller mutations.
type Snapshot struct {
	View View

	// Items is what the active view displays: gallery pages or revealed
	// search results, in display order.
	Items    []album.Image
	Selected map[string]bool

	// Gallery cursor state.
	TotalCount int
	Page       int
	Loading    bool

	// Search state.
	SearchActive   bool
	SearchLabel    string
	ResultTotal    int
	Revealing      bool
	Attachment     string
	FaceAttachment string

	// NoMoreResults reports that RevealMore cannot produce anything
	// further: the search result set is fully revealed, or the gallery
	// is exhausted.
	NoMoreResults bool

	Clusters        []album.Cluster
	LoadingClusters bool

	Uploading bool

	Statuses map[Surface]Message
}

// Snapshot captures the current state under the lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		View:            c.view,
		Items:           append([]album.Image(nil), c.items...),
		Selected:        make(map[string]bool, len(c.selection)),
		TotalCount:      c.totalCount,
		Page:            c.page,
		Loading:         c.loadingGallery,
		SearchActive:    c.searchActive,
		SearchLabel:     c.searchLabel,
		ResultTotal:     len(c.results),
		Revealing:       c.revealing,
		Attachment:      c.attachment,
		FaceAttachment:  c.faceAttachment,
		Clusters:        append([]album.Cluster(nil), c.clusters...),
		LoadingClusters: c.loadingClusters,
		Uploading:       c.uploading,
		Statuses:        make(map[Surface]Message, len(c.statuses)),
	}
	for id := range c.selection {
		snap.Selected[id] = true
	}
	for surface, msg := range c.statuses {
		snap.Statuses[surface] = msg
	}
	if c.searchActive {
		snap.NoMoreResults = c.resultsDisplayed >= len(c.results)
	} else {
		snap.NoMoreResults = c.galleryExhausted ||
			(c.totalCount > 0 && c.galleryDisplayed >= c.totalCount)
	}
	return snap
}
