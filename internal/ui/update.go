package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumen-tui/lumen/internal/album"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshMsg:
		return m, m.refresh()

	case actionErrMsg:
		m.err = msg.err
		return m, m.refresh()

	case statusExpireMsg:
		m.ctrl.ClearStatus(msg.surface, msg.seq)
		return m, m.refresh()

	case jobsTickMsg:
		if m.pane != paneJobs {
			return m, nil
		}
		return m, tea.Batch(m.refresh(), jobsTick())

	case detailMsg:
		m.detail = msg.details
		return m, nil

	case settingsMsg:
		m.settings = msg.settings
		if m.settingsCursor >= len(settingsFields) {
			m.settingsCursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry swallows everything except escape and enter.
	if m.inputKind != inputNone {
		switch msg.Type {
		case tea.KeyEsc:
			m.inputKind = inputNone
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		case tea.KeyEnter:
			return m, m.submitInput()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail):
			m.detail = nil
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		return m, nil
	}

	if m.confirmingDelete {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmingDelete = false
			return m, m.cmd(func() error { return m.ctrl.DeleteSelected(m.ctx()) })
		case key.Matches(msg, m.keys.Back):
			m.confirmingDelete = false
		}
		return m, nil
	}

	if pending := m.confirmingJob; pending != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmingJob = nil
			if pending.stop {
				return m, m.cmd(func() error { return m.ctrl.StopJob(m.ctx(), pending.kind) })
			}
			return m, m.cmd(func() error { return m.ctrl.StartJob(m.ctx(), pending.kind) })
		case key.Matches(msg, m.keys.Back):
			m.confirmingJob = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Gallery):
		return m.switchPane(paneGallery)
	case key.Matches(msg, m.keys.Faces):
		return m.switchPane(paneFaces)
	case key.Matches(msg, m.keys.JobsPane):
		return m.switchPane(paneJobs)
	case key.Matches(msg, m.keys.Settings):
		return m.switchPane(paneSettings)
	}

	switch m.pane {
	case paneGallery:
		return m.handleGalleryKey(msg)
	case paneFaces:
		return m.handleFacesKey(msg)
	case paneJobs:
		return m.handleJobsKey(msg)
	case paneSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.ctrl.Close()
	return tea.Quit
}

// switchPane changes the visible pane and keeps the controller's view in
// step. Leaving the jobs pane tears its pollers down.
func (m *Model) switchPane(target pane) (tea.Model, tea.Cmd) {
	if m.pane == paneJobs && target != paneJobs {
		m.ctrl.StopAllPolling()
	}
	m.pane = target
	m.cursor = 0
	m.err = nil

	switch target {
	case paneGallery:
		// Entering the gallery always reloads it; the tab doubles as a
		// "reset everything" affordance.
		return m, m.cmd(func() error { return m.ctrl.SwitchToGallery(m.ctx(), true) })
	case paneFaces:
		return m, m.cmd(func() error { return m.ctrl.SwitchToFaces(m.ctx()) })
	case paneJobs:
		return m, tea.Batch(
			m.cmd(func() error { return m.ctrl.RefreshJobs(m.ctx()) }),
			jobsTick(),
		)
	case paneSettings:
		return m, m.loadSettingsCmd()
	}
	return m, nil
}

func (m *Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		if m.cursor >= len(m.snap.Items) && !m.snap.NoMoreResults {
			m.clampCursor()
			return m, m.cmd(func() error { return m.ctrl.RevealMore(m.ctx()) })
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.PageDown):
		return m, m.cmd(func() error { return m.ctrl.RevealMore(m.ctx()) })
	case key.Matches(msg, m.keys.Search):
		return m, m.beginInput(inputSearch)
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.itemAtCursor(); ok {
			m.ctrl.ToggleSelect(item.Key())
			return m, m.refresh()
		}
	case key.Matches(msg, m.keys.ClearSel):
		m.ctrl.ClearSelection()
		return m, m.refresh()
	case key.Matches(msg, m.keys.Delete):
		if len(m.snap.Selected) > 0 {
			if m.prefs.ConfirmBeforeDelete() {
				m.confirmingDelete = true
				return m, nil
			}
			return m, m.cmd(func() error { return m.ctrl.DeleteSelected(m.ctx()) })
		}
	case key.Matches(msg, m.keys.Tag):
		if len(m.snap.Selected) > 0 {
			return m, m.beginInput(inputTag)
		}
	case key.Matches(msg, m.keys.Upload):
		return m, m.beginInput(inputUpload)
	case key.Matches(msg, m.keys.CancelUp):
		m.ctrl.CancelUpload()
		return m, m.refresh()
	case key.Matches(msg, m.keys.Enhance):
		if item, ok := m.itemAtCursor(); ok {
			id := item.ID
			return m, m.cmd(func() error {
				_, err := m.ctrl.EnhanceImage(m.ctx(), id)
				return err
			})
		}
	case key.Matches(msg, m.keys.Detail):
		if item, ok := m.itemAtCursor(); ok {
			return m, m.loadDetailCmd(item.ID)
		}
	case key.Matches(msg, m.keys.Back):
		if m.snap.SearchActive {
			m.cursor = 0
			return m, m.cmd(func() error { return m.ctrl.SwitchToGallery(m.ctx(), true) })
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.cmd(func() error { return m.ctrl.SwitchToGallery(m.ctx(), true) })
	}
	return m, nil
}

func (m *Model) handleFacesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	browsingClusters := !m.snap.SearchActive

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.PageDown):
		if !browsingClusters {
			return m, m.cmd(func() error { return m.ctrl.RevealMore(m.ctx()) })
		}
	case key.Matches(msg, m.keys.Search):
		return m, m.beginInput(inputFaceSearch)
	case key.Matches(msg, m.keys.Detail):
		if browsingClusters {
			if cluster, ok := m.clusterAtCursor(); ok {
				m.cursor = 0
				return m, m.cmd(func() error { return m.ctrl.OpenCluster(m.ctx(), cluster) })
			}
		} else if item, ok := m.itemAtCursor(); ok {
			return m, m.loadDetailCmd(item.ID)
		}
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.itemAtCursor(); ok {
			m.ctrl.ToggleSelect(item.Key())
			return m, m.refresh()
		}
	case key.Matches(msg, m.keys.Back):
		if !browsingClusters {
			// Back to the cluster list without leaving the faces pane.
			m.cursor = 0
			return m, m.cmd(func() error {
				if err := m.ctrl.SwitchToGallery(m.ctx(), false); err != nil {
					return err
				}
				return m.ctrl.SwitchToFaces(m.ctx())
			})
		}
	}
	return m, nil
}

func (m *Model) handleJobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := album.JobKinds()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(kinds)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Detail):
		kind := kinds[m.cursor]
		snap := m.jobs[kind]
		m.confirmingJob = &jobConfirm{
			kind: kind,
			stop: snap.Polling || (snap.HasStatus && snap.Status.IsRunning),
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.cmd(func() error { return m.ctrl.RefreshJobs(m.ctx()) })
	}
	return m, nil
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.settingsCursor < len(settingsFields)-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.keys.Detail):
		if m.settings == nil {
			return m, m.loadSettingsCmd()
		}
		field := settingsFields[m.settingsCursor]
		patch := field.toggle(*m.settings)
		field.apply(m.settings, patch)
		return m, m.saveSettingsCmd(patch)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadSettingsCmd()
	}
	return m, nil
}
