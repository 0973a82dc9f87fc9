package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/controller"
	"github.com/lumen-tui/lumen/internal/prefs"
	"github.com/lumen-tui/lumen/internal/state"
)

// pane identifies the visible pane. The gallery and faces panes map to
// controller views; jobs and settings are purely local.
type pane int

const (
	paneGallery pane = iota
	paneFaces
	paneJobs
	paneSettings
)

// inputKind says what the text input is currently collecting.
type inputKind int

const (
	inputNone inputKind = iota
	inputSearch
	inputFaceSearch
	inputUpload
	inputTag
)

const statusErrorTTL = 7 * time.Second
const statusInfoTTL = 4 * time.Second
const jobsTickEvery = 500 * time.Millisecond

// Model is the bubbletea model for the whole application.
type Model struct {
	ctrl  *controller.Controller
	prefs prefs.Prefs

	keys     keyMap
	styles   Styles
	help     help.Model
	spinner  spinner.Model
	input    textinput.Model
	progress progress.Model

	pane      pane
	inputKind inputKind
	cursor    int

	width  int
	height int

	snap controller.Snapshot
	jobs map[album.JobKind]state.JobSnapshot

	settings       *album.Settings
	settingsCursor int

	detail *album.ImageDetails

	confirmingDelete bool
	confirmingJob    *jobConfirm
	showHelp         bool
	err              error

	// scheduledClears remembers which status seq already has an expiry
	// tick in flight, so each message is cleared exactly once.
	scheduledClears map[controller.Surface]uint64
}

// jobConfirm is a pending batch-job action waiting for the user to confirm.
type jobConfirm struct {
	kind album.JobKind
	stop bool
}

// NewModel builds the root model around a controller.
func NewModel(ctrl *controller.Controller, p prefs.Prefs) *Model {
	styles := ThemeByName(p.Theme).Styles()

	input := textinput.New()
	input.CharLimit = 512
	input.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentText

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	return &Model{
		ctrl:            ctrl,
		prefs:           p,
		keys:            defaultKeyMap(),
		styles:          styles,
		help:            help.New(),
		spinner:         sp,
		input:           input,
		progress:        bar,
		jobs:            make(map[album.JobKind]state.JobSnapshot),
		scheduledClears: make(map[controller.Surface]uint64),
	}
}

// Init implements tea.Model. The gallery loads immediately.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.cmd(func() error { return m.ctrl.SwitchToGallery(m.ctx(), true) }),
	)
}

// itemAtCursor returns the image under the cursor, if any.
func (m *Model) itemAtCursor() (album.Image, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Items) {
		return album.Image{}, false
	}
	return m.snap.Items[m.cursor], true
}

// clusterAtCursor returns the face cluster under the cursor, if any.
func (m *Model) clusterAtCursor() (album.Cluster, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Clusters) {
		return album.Cluster{}, false
	}
	return m.snap.Clusters[m.cursor], true
}

func (m *Model) clampCursor() {
	limit := len(m.snap.Items)
	if m.pane == paneFaces && !m.snap.SearchActive {
		limit = len(m.snap.Clusters)
	}
	if limit == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= limit {
		m.cursor = limit - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
