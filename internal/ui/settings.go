package ui

import (
	"fmt"
	"strings"

	"github.com/lumen-tui/lumen/internal/album"
)

// settingsField describes one toggleable row of the settings pane. toggle
// builds the single-field patch to post; apply folds the patch back into
// the local copy so the pane updates before the server round trip lands.
type settingsField struct {
	label  string
	value  func(s album.Settings) string
	toggle func(s album.Settings) album.Settings
	apply  func(dst *album.Settings, patch album.Settings)
}

func flipped(b *bool) *bool {
	v := b == nil || !*b
	return &v
}

var settingsFields = []settingsField{
	{
		label: "AI photo analysis",
		value: func(s album.Settings) string { return onOff(s.QwenAnalysisEnabled) },
		toggle: func(s album.Settings) album.Settings {
			return album.Settings{QwenAnalysisEnabled: flipped(s.QwenAnalysisEnabled)}
		},
		apply: func(dst *album.Settings, p album.Settings) { dst.QwenAnalysisEnabled = p.QwenAnalysisEnabled },
	},
	{
		label: "Enhanced search",
		value: func(s album.Settings) string { return onOff(s.UseEnhancedSearch) },
		toggle: func(s album.Settings) album.Settings {
			return album.Settings{UseEnhancedSearch: flipped(s.UseEnhancedSearch)}
		},
		apply: func(dst *album.Settings, p album.Settings) { dst.UseEnhancedSearch = p.UseEnhancedSearch },
	},
	{
		label: "CLIP embeddings",
		value: func(s album.Settings) string { return onOff(s.ClipEmbeddingEnabled) },
		toggle: func(s album.Settings) album.Settings {
			return album.Settings{ClipEmbeddingEnabled: flipped(s.ClipEmbeddingEnabled)}
		},
		apply: func(dst *album.Settings, p album.Settings) { dst.ClipEmbeddingEnabled = p.ClipEmbeddingEnabled },
	},
	{
		label: "Face recognition",
		value: func(s album.Settings) string { return onOff(s.FaceRecognition) },
		toggle: func(s album.Settings) album.Settings {
			return album.Settings{FaceRecognition: flipped(s.FaceRecognition)}
		},
		apply: func(dst *album.Settings, p album.Settings) { dst.FaceRecognition = p.FaceRecognition },
	},
	{
		label: "Detect faces on upload",
		value: func(s album.Settings) string { return onOff(s.FaceUploadEnabled) },
		toggle: func(s album.Settings) album.Settings {
			return album.Settings{FaceUploadEnabled: flipped(s.FaceUploadEnabled)}
		},
		apply: func(dst *album.Settings, p album.Settings) { dst.FaceUploadEnabled = p.FaceUploadEnabled },
	},
	{
		label: "Face clustering",
		value: func(s album.Settings) string { return onOff(s.FaceClusteringEnabled) },
		toggle: func(s album.Settings) album.Settings {
			return album.Settings{FaceClusteringEnabled: flipped(s.FaceClusteringEnabled)}
		},
		apply: func(dst *album.Settings, p album.Settings) { dst.FaceClusteringEnabled = p.FaceClusteringEnabled },
	},
}

func onOff(b *bool) string {
	if b != nil && *b {
		return "on"
	}
	return "off"
}

func (m *Model) renderSettings() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render("Server Settings"))
	b.WriteString("\n\n")

	if m.settings == nil {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.MutedText.Render(" loading settings..."))
		return b.String()
	}

	for i, field := range settingsFields {
		marker := "  "
		line := fmt.Sprintf("%-24s %s", field.label, field.value(*m.settings))
		if i == m.settingsCursor {
			marker = m.styles.AccentText.Render("> ")
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Text.Render(line)
		}
		b.WriteString(marker)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(readonlySettings(*m.settings)))

	if status := m.snap.Statuses[surfaceForPane(paneSettings)]; !status.Empty() {
		b.WriteString("\n\n")
		b.WriteString(m.renderStatusLine(status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.FaintText.Render("enter toggles a setting, r reloads"))
	return b.String()
}

// readonlySettings summarizes the non-boolean fields; the TUI shows them
// but model endpoints and keys are edited server-side.
func readonlySettings(s album.Settings) string {
	var parts []string
	if s.QwenModelName != nil && *s.QwenModelName != "" {
		parts = append(parts, "model "+*s.QwenModelName)
	}
	if s.FaceAPIURL != nil && *s.FaceAPIURL != "" {
		parts = append(parts, "face api "+*s.FaceAPIURL)
	}
	if s.FaceClusterThreshold != nil {
		parts = append(parts, fmt.Sprintf("cluster threshold %.2f", *s.FaceClusterThreshold))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " · ")
}
