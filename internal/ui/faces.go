package ui

import (
	"fmt"
	"strings"

	"github.com/lumen-tui/lumen/internal/controller"
)

func (m *Model) renderFaces() string {
	var b strings.Builder

	if m.snap.SearchActive {
		b.WriteString(m.styles.AccentText.Render(fmt.Sprintf("Photos of %s", m.snap.SearchLabel)))
		b.WriteString(m.styles.MutedText.Render(
			fmt.Sprintf("  %d of %d shown", len(m.snap.Items), m.snap.ResultTotal)))
	} else {
		b.WriteString(m.styles.AccentText.Render("People"))
	}
	if m.snap.FaceAttachment != "" {
		b.WriteString(m.styles.InfoText.Render("  [face image attached]"))
	}
	b.WriteString("\n")

	if status, ok := m.snap.Statuses[controller.SurfaceFaces]; ok && !status.Empty() {
		b.WriteString(m.renderStatusLine(status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.snap.SearchActive {
		if len(m.snap.Items) == 0 {
			b.WriteString(m.styles.MutedText.Render("No photos found."))
			return b.String()
		}
		start, end := listWindow(len(m.snap.Items), m.cursor, m.listHeight())
		for i := start; i < end; i++ {
			b.WriteString(m.renderImageRow(i))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.FaintText.Render("esc returns to people"))
		return b.String()
	}

	if len(m.snap.Clusters) == 0 {
		if m.snap.LoadingClusters {
			b.WriteString(m.spinner.View())
			b.WriteString(m.styles.MutedText.Render(" loading people..."))
		} else {
			b.WriteString(m.styles.MutedText.Render("No people detected yet. Run face detection from the jobs pane."))
		}
		return b.String()
	}

	start, end := listWindow(len(m.snap.Clusters), m.cursor, m.listHeight())
	for i := start; i < end; i++ {
		cluster := m.snap.Clusters[i]
		line := fmt.Sprintf("%-32s %s", cluster.DisplayName(),
			m.styles.MutedText.Render(fmt.Sprintf("%d photos", cluster.FaceCount)))
		if i == m.cursor {
			b.WriteString("> " + m.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.FaintText.Render("enter opens a person, / finds by name or photo"))

	return b.String()
}
