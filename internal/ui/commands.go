package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/controller"
)

// ctx returns the context controller calls run under. Operations carry
// their own supersession tokens, so a plain background context is enough.
func (m *Model) ctx() context.Context {
	return context.Background()
}

// cmd wraps a controller call as a tea command. The controller mirrors
// failures onto status surfaces itself; the returned error only feeds the
// footer.
func (m *Model) cmd(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionErrMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (m *Model) loadDetailCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		details, err := m.ctrl.ImageDetails(m.ctx(), id)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return detailMsg{details: details}
	}
}

func (m *Model) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		settings, err := m.ctrl.Settings(m.ctx())
		if err != nil {
			return actionErrMsg{err: err}
		}
		return settingsMsg{settings: settings}
	}
}

func (m *Model) saveSettingsCmd(patch album.Settings) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.ctrl.SaveSettings(m.ctx(), patch); err != nil {
			return actionErrMsg{err: err}
		}
		return refreshMsg{}
	}
}

func jobsTick() tea.Cmd {
	return tea.Tick(jobsTickEvery, func(t time.Time) tea.Msg {
		return jobsTickMsg(t)
	})
}

// refresh re-reads the controller snapshot and schedules auto-clear ticks
// for any status message that does not have one yet.
func (m *Model) refresh() tea.Cmd {
	m.snap = m.ctrl.Snapshot()
	m.jobs = m.ctrl.Jobs().Jobs()
	m.clampCursor()

	var cmds []tea.Cmd
	for surface, msg := range m.snap.Statuses {
		if msg.Empty() || m.scheduledClears[surface] == msg.Seq {
			continue
		}
		m.scheduledClears[surface] = msg.Seq
		ttl := statusInfoTTL
		if msg.IsError {
			ttl = statusErrorTTL
		}
		surface, seq := surface, msg.Seq
		cmds = append(cmds, tea.Tick(ttl, func(time.Time) tea.Msg {
			return statusExpireMsg{surface: surface, seq: seq}
		}))
	}
	return tea.Batch(cmds...)
}

// submitInput routes a finished text entry to the matching operation.
func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	kind := m.inputKind
	m.inputKind = inputNone
	m.input.Blur()
	m.input.SetValue("")

	switch kind {
	case inputSearch:
		if attached, ok := strings.CutPrefix(value, "@"); ok {
			path := strings.TrimSpace(attached)
			return m.cmd(func() error {
				if err := m.ctrl.AttachSearchImage(path); err != nil {
					return err
				}
				return m.ctrl.Search(m.ctx(), "")
			})
		}
		return m.cmd(func() error { return m.ctrl.Search(m.ctx(), value) })

	case inputFaceSearch:
		if attached, ok := strings.CutPrefix(value, "@"); ok {
			path := strings.TrimSpace(attached)
			return m.cmd(func() error {
				if err := m.ctrl.AttachFaceImage(path); err != nil {
					return err
				}
				return m.ctrl.SearchFaces(m.ctx(), "")
			})
		}
		return m.cmd(func() error { return m.ctrl.SearchFaces(m.ctx(), value) })

	case inputUpload:
		paths := strings.Fields(value)
		if len(paths) == 0 {
			return nil
		}
		return m.cmd(func() error { return m.ctrl.Upload(m.ctx(), paths) })

	case inputTag:
		tags := strings.Split(value, ",")
		if len(tags) == 0 {
			return nil
		}
		return m.cmd(func() error { return m.ctrl.TagSelected(m.ctx(), tags) })
	}
	return nil
}

// beginInput focuses the text input for the given purpose.
func (m *Model) beginInput(kind inputKind) tea.Cmd {
	m.inputKind = kind
	m.input.SetValue("")
	switch kind {
	case inputSearch:
		m.input.Placeholder = "describe a photo, or @path/to/image"
	case inputFaceSearch:
		m.input.Placeholder = "person name, or @path/to/face.jpg"
	case inputUpload:
		m.input.Placeholder = "paths to image files, space separated"
	case inputTag:
		m.input.Placeholder = "tags, comma separated"
	}
	return m.input.Focus()
}

func surfaceForPane(p pane) controller.Surface {
	switch p {
	case paneFaces:
		return controller.SurfaceFaces
	case paneSettings:
		return controller.SurfaceSettings
	default:
		return controller.SurfaceSearch
	}
}
