package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumen-tui/lumen/internal/controller"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.detail != nil {
		b.WriteString(m.renderDetail())
	} else {
		switch m.pane {
		case paneGallery:
			b.WriteString(m.renderGallery())
		case paneFaces:
			b.WriteString(m.renderFaces())
		case paneJobs:
			b.WriteString(m.renderJobs())
		case paneSettings:
			b.WriteString(m.renderSettings())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	logo := m.styles.Logo.Render("lumen")

	tabs := []struct {
		label string
		pane  pane
	}{
		{"1 Gallery", paneGallery},
		{"2 People", paneFaces},
		{"3 Jobs", paneJobs},
		{"4 Settings", paneSettings},
	}
	var rendered []string
	for _, tab := range tabs {
		style := m.styles.Tab
		if tab.pane == m.pane {
			style = m.styles.TabActive
		}
		rendered = append(rendered, style.Render(tab.label))
	}

	right := ""
	if m.snap.Uploading {
		right = m.spinner.View() + m.styles.InfoText.Render(" uploading")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		logo, "  ", strings.Join(rendered, " "), "  ", right)
	return m.styles.Header.Render(row)
}

func (m *Model) renderFooter() string {
	if m.confirmingDelete {
		prompt := fmt.Sprintf("Delete %d selected images? y confirms, esc cancels.", len(m.snap.Selected))
		return m.styles.DangerText.Render(prompt)
	}

	if pending := m.confirmingJob; pending != nil {
		verb := "Start"
		if pending.stop {
			verb = "Stop"
		}
		prompt := fmt.Sprintf("%s %s? y confirms, esc cancels.", verb, pending.kind.Label())
		return m.styles.DangerText.Render(prompt)
	}

	if m.inputKind != inputNone {
		label := map[inputKind]string{
			inputSearch:     "search",
			inputFaceSearch: "find person",
			inputUpload:     "upload",
			inputTag:        "tag",
		}[m.inputKind]
		return m.styles.AccentText.Render(label+": ") + m.input.View()
	}

	var parts []string
	if n := len(m.snap.Selected); n > 0 {
		parts = append(parts, m.styles.InfoText.Render(fmt.Sprintf("%d selected", n)))
	}
	if status, ok := m.snap.Statuses[controller.SurfaceUpload]; ok && !status.Empty() {
		parts = append(parts, m.renderStatusLine(status))
	}
	if m.err != nil {
		parts = append(parts, m.styles.DangerText.Render(m.err.Error()))
	}

	if m.showHelp {
		m.help.ShowAll = true
	} else {
		m.help.ShowAll = false
	}
	parts = append(parts, m.help.View(m.keys))

	return m.styles.Footer.Render(strings.Join(parts, "  "))
}

func (m *Model) renderStatusLine(status controller.Message) string {
	if status.IsError {
		return m.styles.DangerText.Render(status.Text)
	}
	return m.styles.InfoText.Render(status.Text)
}
