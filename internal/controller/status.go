package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Surface identifies an inline status line in the UI. Each surface shows at
// most one message at a time.
type Surface int

const (
	// SurfaceSearch is the gallery search status line.
	SurfaceSearch Surface = iota
	// SurfaceFaces is the face view status line.
	SurfaceFaces
	// SurfaceUpload is the navigation-bar upload status line.
	SurfaceUpload
	// SurfaceSettings is the settings panel status line.
	SurfaceSettings
)

// Message is one inline status message. Seq identifies the write that
// produced it, so a delayed auto-clear for an old message never blanks a
// newer one.
type Message struct {
	Text    string
	IsError bool
	Seq     uint64
	SetAt   time.Time
}

// Empty reports whether the surface currently shows nothing.
func (m Message) Empty() bool {
	return m.Text == ""
}

// Status returns the current message for a surface.
func (c *Controller) Status(surface Surface) Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statuses[surface]
}

// ClearStatus blanks the surface only if seq still identifies the current
// message. Stale clears (an auto-clear timer firing after a newer message
// was set) are dropped.
func (c *Controller) ClearStatus(surface Surface, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current, ok := c.statuses[surface]; ok && current.Seq == seq {
		delete(c.statuses, surface)
	}
}

func (c *Controller) setStatus(surface Surface, text string, isErr bool) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setStatusLocked(surface, text, isErr)
}

func (c *Controller) setStatusLocked(surface Surface, text string, isErr bool) uint64 {
	if text == "" {
		delete(c.statuses, surface)
		return 0
	}
	c.statusSeq++
	c.statuses[surface] = Message{
		Text:    text,
		IsError: isErr,
		Seq:     c.statusSeq,
		SetAt:   time.Now(),
	}
	return c.statusSeq
}

// describeError formats a failure for an inline status line, reporting
// cancellation as cancellation rather than as a failure.
func describeError(prefix string, err error) string {
	if errors.Is(err, context.Canceled) {
		return "Cancelled."
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}

func trimTag(tag string) string {
	return strings.TrimSpace(tag)
}
