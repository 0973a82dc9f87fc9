package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares every binding the UI understands. It satisfies
// help.KeyMap so the footer help is generated from the same source of
// truth the update loop switches on.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageDown key.Binding
	Gallery  key.Binding
	Faces    key.Binding
	JobsPane key.Binding
	Settings key.Binding
	Search   key.Binding
	Select   key.Binding
	ClearSel key.Binding
	Delete   key.Binding
	Tag      key.Binding
	Upload   key.Binding
	CancelUp key.Binding
	Enhance  key.Binding
	Detail   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Back     key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "load more")),
		Gallery:  key.NewBinding(key.WithKeys("1", "g"), key.WithHelp("1", "gallery")),
		Faces:    key.NewBinding(key.WithKeys("2", "p"), key.WithHelp("2", "people")),
		JobsPane: key.NewBinding(key.WithKeys("3", "b"), key.WithHelp("3", "jobs")),
		Settings: key.NewBinding(key.WithKeys("4", "o"), key.WithHelp("4", "settings")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Select:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		ClearSel: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear selection")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		Tag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag selected")),
		Upload:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		CancelUp: key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "cancel upload")),
		Enhance:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enhance")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Select, k.PageDown, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageDown, k.Detail, k.Back},
		{k.Gallery, k.Faces, k.JobsPane, k.Settings, k.Refresh},
		{k.Search, k.Select, k.ClearSel, k.Delete, k.Tag},
		{k.Upload, k.CancelUp, k.Enhance, k.Help, k.Quit},
	}
}
