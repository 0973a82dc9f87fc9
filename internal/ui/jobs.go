package ui

import (
	"fmt"
	"strings"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/state"
)

func (m *Model) renderJobs() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render("Batch Jobs"))
	b.WriteString("\n\n")

	for i, kind := range album.JobKinds() {
		snap := m.jobs[kind]

		marker := "  "
		label := kind.Label()
		if i == m.cursor {
			marker = m.styles.AccentText.Render("> ")
			label = m.styles.Selected.Render(label)
		} else {
			label = m.styles.Text.Render(label)
		}
		b.WriteString(marker)
		b.WriteString(label)
		b.WriteString("\n    ")
		b.WriteString(m.renderJobLine(snap))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.FaintText.Render("enter starts or stops the highlighted job, r refreshes"))
	return b.String()
}

func (m *Model) renderJobLine(snap state.JobSnapshot) string {
	if snap.LastError != nil {
		return m.styles.DangerText.Render("error: " + snap.LastError.Error())
	}
	if !snap.HasStatus {
		return m.styles.MutedText.Render("never run")
	}

	status := snap.Status
	if !status.IsRunning {
		if total := status.Total(); total > 0 {
			return m.styles.SuccessText.Render(
				fmt.Sprintf("finished, %d of %d processed", status.ProcessedCount, total))
		}
		return m.styles.MutedText.Render("idle")
	}

	bar := m.progress.ViewAs(status.Percent() / 100)
	line := fmt.Sprintf("%s %d/%d", bar, status.ProcessedCount, status.Total())
	if current := status.CurrentLabel(); current != "" {
		line += m.styles.MutedText.Render("  " + current)
	}
	if status.LastError != "" {
		line += m.styles.WarningText.Render("  last error: " + status.LastError)
	}
	return line
}
