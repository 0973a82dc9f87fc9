package ui

import (
	"strings"
)

func (m *Model) renderDetail() string {
	var b strings.Builder

	item, _ := m.itemAtCursor()
	b.WriteString(m.styles.AccentText.Render(item.Filename))
	if item.IsEnhanced {
		b.WriteString(m.styles.WarningText.Render("  enhanced"))
	}
	b.WriteString("\n\n")

	d := m.detail
	if d.Description != "" {
		b.WriteString(m.styles.Text.Render(wrapText(d.Description, contentWidth(m.width))))
		b.WriteString("\n\n")
	}
	if len(d.Keywords) > 0 {
		b.WriteString(m.styles.MutedText.Render("keywords  "))
		b.WriteString(m.styles.Text.Render(strings.Join(d.Keywords, ", ")))
		b.WriteString("\n")
	}
	if len(d.UserTags) > 0 {
		b.WriteString(m.styles.MutedText.Render("tags      "))
		b.WriteString(m.styles.InfoText.Render(strings.Join(d.UserTags, ", ")))
		b.WriteString("\n")
	}
	if d.Description == "" && len(d.Keywords) == 0 && len(d.UserTags) == 0 {
		b.WriteString(m.styles.MutedText.Render("No analysis available for this photo yet."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render("esc closes"))
	return m.styles.Panel.Render(b.String())
}

func contentWidth(width int) int {
	w := width - 8
	if w < 20 {
		w = 20
	}
	if w > 100 {
		w = 100
	}
	return w
}
