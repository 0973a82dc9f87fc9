package controller

import (
	"context"
)

// RevealMore is the scroll handler. When a search result set is present it
// takes priority: the next fixed-size batch of already-fetched results is
// appended without a network call. Otherwise the gallery cursor fetches its
// next page from the server.
func (c *Controller) RevealMore(ctx context.Context) error {
	c.mu.Lock()
	if c.searchActive {
		if !c.revealing {
			c.revealing = true
			c.revealNextBatchLocked()
			c.revealing = false
		}
		c.mu.Unlock()
		return nil
	}
	if c.view != ViewGallery {
		// Face view without an active result set has nothing to page.
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.loadNextGalleryPage(ctx)
}

// revealNextBatchLocked appends the next slice of stored search results to
// the displayed items. Repeated calls display the full list in order, with
// no duplicates, in ceil(len/batch) steps.
func (c *Controller) revealNextBatchLocked() {
	if c.resultsDisplayed >= len(c.results) {
		return
	}
	end := c.resultsDisplayed + revealBatchSize
	if end > len(c.results) {
		end = len(c.results)
	}
	c.items = append(c.items, c.results[c.resultsDisplayed:end]...)
	c.resultsDisplayed = end
}

// loadNextGalleryPage fetches one gallery page and advances the cursor.
// The page number only advances after a non-empty response, so a transient
// empty page never skips numbering. An empty page latches the cursor as
// exhausted; the latch is one-way for this cursor instance.
func (c *Controller) loadNextGalleryPage(ctx context.Context) error {
	c.mu.Lock()
	if c.loadingGallery || c.galleryExhausted {
		c.mu.Unlock()
		return nil
	}
	if c.totalCount > 0 && c.galleryDisplayed >= c.totalCount {
		c.galleryExhausted = true
		c.mu.Unlock()
		return nil
	}
	c.loadingGallery = true
	page := c.page
	seq := c.cursorSeq
	c.mu.Unlock()

	result, err := c.svc.Images(ctx, page, galleryPageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.cursorSeq {
		// The cursor was reset while this page was in flight.
		return nil
	}
	c.loadingGallery = false
	if err != nil {
		c.setStatusLocked(SurfaceSearch, describeError("loading gallery failed", err), true)
		return err
	}

	if len(result.Images) > 0 {
		c.items = append(c.items, result.Images...)
		c.galleryDisplayed += len(result.Images)
		c.page++
	}
	c.totalCount = result.TotalCount
	if len(result.Images) == 0 || c.galleryDisplayed >= c.totalCount {
		c.galleryExhausted = true
	}
	return nil
}
