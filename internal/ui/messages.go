package ui

import (
	"time"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/controller"
)

// refreshMsg asks the model to re-read the controller snapshot.
type refreshMsg struct{}

// actionErrMsg reports a failed controller operation. Most failures are
// already mirrored on a status surface; the error here feeds the footer.
type actionErrMsg struct {
	err error
}

// statusExpireMsg fires when an inline status message should auto-clear.
// The seq guards against blanking a newer message.
type statusExpireMsg struct {
	surface controller.Surface
	seq     uint64
}

// jobsTickMsg drives the jobs pane re-render while pollers are active.
type jobsTickMsg time.Time

// detailMsg carries a loaded image detail panel.
type detailMsg struct {
	details *album.ImageDetails
}

// settingsMsg carries the loaded server settings document.
type settingsMsg struct {
	settings *album.Settings
}
