package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/lumen-tui/lumen/internal/album"
)

// jobPoller owns the polling goroutine for one job kind.
type jobPoller struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *jobPoller) stop() {
	p.cancel()
	<-p.done
}

// StartJob asks the server to start a batch job and begins polling its
// progress. Starting is refused while the job is already known to be
// running.
func (c *Controller) StartJob(ctx context.Context, kind album.JobKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown job kind %q", kind)
	}
	snap := c.jobs.Job(kind)
	if snap.Polling || (snap.HasStatus && snap.Status.IsRunning) {
		return fmt.Errorf("%s is already running", kind.Label())
	}

	result, err := c.svc.StartJob(ctx, kind)
	if err != nil {
		c.jobs.UpdateJob(kind, nil, err)
		return err
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "start refused"
		}
		err := fmt.Errorf("%s", msg)
		c.jobs.UpdateJob(kind, nil, err)
		return err
	}

	c.startPolling(kind)
	return nil
}

// StopJob asks the server to stop a batch job. Polling continues until a
// status poll confirms the job is no longer running.
func (c *Controller) StopJob(ctx context.Context, kind album.JobKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown job kind %q", kind)
	}
	if _, err := c.svc.StopJob(ctx, kind); err != nil {
		return err
	}
	return nil
}

// RefreshJobs polls every job kind once and starts polling for those the
// server reports as running. Used when entering the jobs view so its
// pollers exist only while that view needs them.
func (c *Controller) RefreshJobs(ctx context.Context) error {
	var firstErr error
	for _, kind := range album.JobKinds() {
		status, err := c.svc.JobStatus(ctx, kind)
		if err != nil {
			c.jobs.UpdateJob(kind, nil, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.jobs.UpdateJob(kind, status, nil)
		if status.IsRunning {
			c.startPolling(kind)
		}
	}
	return firstErr
}

// StopAllPolling tears down every active poller. Job state on the server
// is untouched; only the local polling stops. Called on view teardown so
// pollers never outlive the view that needed them.
func (c *Controller) StopAllPolling() {
	c.mu.Lock()
	pollers := c.pollers
	c.pollers = make(map[album.JobKind]*jobPoller)
	c.mu.Unlock()

	for kind, p := range pollers {
		p.stop()
		c.jobs.SetPolling(kind, false)
	}
}

// startPolling launches the polling goroutine for a kind. Idempotent: at
// most one poller per kind exists at a time.
func (c *Controller) startPolling(kind album.JobKind) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, exists := c.pollers[kind]; exists {
		c.mu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(c.baseCtx)
	poller := &jobPoller{cancel: cancel, done: make(chan struct{})}
	c.pollers[kind] = poller
	interval := c.pollInterval
	c.mu.Unlock()

	c.jobs.SetPolling(kind, true)

	go func() {
		defer close(poller.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if done := c.pollJobOnce(pollCtx, kind); done {
				c.detachPoller(kind, poller)
				return
			}
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// pollJobOnce performs one status poll. It reports true when polling
// should stop: the job finished, or the poll failed (a dead backend is
// terminal, not something to spin on).
func (c *Controller) pollJobOnce(ctx context.Context, kind album.JobKind) bool {
	status, err := c.svc.JobStatus(ctx, kind)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		c.jobs.UpdateJob(kind, nil, err)
		return true
	}
	c.jobs.UpdateJob(kind, status, nil)
	return !status.IsRunning
}

// detachPoller removes a poller that stopped on its own, guarding against
// a racing StopAllPolling having already replaced it.
func (c *Controller) detachPoller(kind album.JobKind, poller *jobPoller) {
	c.mu.Lock()
	if current, ok := c.pollers[kind]; ok && current == poller {
		delete(c.pollers, kind)
	}
	c.mu.Unlock()
	c.jobs.SetPolling(kind, false)
	poller.cancel()
}
