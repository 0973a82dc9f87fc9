package ui

import (
	"fmt"
	"strings"

	"github.com/lumen-tui/lumen/internal/controller"
)

// listWindow returns the half-open range of rows to draw so the cursor
// stays visible in the available height.
func listWindow(total, cursor, visible int) (int, int) {
	if visible <= 0 || total <= visible {
		return 0, total
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

func (m *Model) listHeight() int {
	// Header, footer, status line, and padding take a fixed slice.
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) renderGallery() string {
	var b strings.Builder

	if m.snap.SearchActive {
		title := fmt.Sprintf("Results for %q", m.snap.SearchLabel)
		b.WriteString(m.styles.AccentText.Render(title))
		b.WriteString(m.styles.MutedText.Render(
			fmt.Sprintf("  %d of %d shown", len(m.snap.Items), m.snap.ResultTotal)))
	} else {
		b.WriteString(m.styles.AccentText.Render("Gallery"))
		if m.snap.TotalCount > 0 {
			b.WriteString(m.styles.MutedText.Render(
				fmt.Sprintf("  %d of %d photos", len(m.snap.Items), m.snap.TotalCount)))
		}
	}
	if m.snap.Attachment != "" {
		b.WriteString(m.styles.InfoText.Render("  [image attached]"))
	}
	b.WriteString("\n")

	if status, ok := m.snap.Statuses[controller.SurfaceSearch]; ok && !status.Empty() {
		b.WriteString(m.renderStatusLine(status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.snap.Items) == 0 {
		if m.snap.Loading {
			b.WriteString(m.spinner.View())
			b.WriteString(m.styles.MutedText.Render(" loading photos..."))
		} else {
			b.WriteString(m.styles.MutedText.Render("No photos to show."))
		}
		return b.String()
	}

	start, end := listWindow(len(m.snap.Items), m.cursor, m.listHeight())
	for i := start; i < end; i++ {
		b.WriteString(m.renderImageRow(i))
		b.WriteString("\n")
	}

	switch {
	case m.snap.Loading:
		b.WriteString(m.styles.MutedText.Render("loading more..."))
	case m.snap.NoMoreResults:
		b.WriteString(m.styles.FaintText.Render("end of list"))
	default:
		b.WriteString(m.styles.FaintText.Render("pgdn loads more"))
	}

	return b.String()
}

func (m *Model) renderImageRow(i int) string {
	img := m.snap.Items[i]

	marker := "  "
	if m.snap.Selected[img.Key()] {
		marker = m.styles.SuccessText.Render("✓ ")
	}

	name := img.DisplayName(48)
	var badges []string
	if img.IsEnhanced {
		badges = append(badges, m.styles.WarningText.Render("enhanced"))
	}
	if score, ok := img.SimilarityScore(); ok {
		badges = append(badges, m.styles.MutedText.Render(fmt.Sprintf("%.2f", score)))
	}

	line := fmt.Sprintf("%-50s %s", name, strings.Join(badges, " "))
	if i == m.cursor {
		return marker + m.styles.Selected.Render(line)
	}
	return marker + m.styles.Text.Render(line)
}
