package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	BigLeft   key.Binding
	BigRight  key.Binding
	Enter     key.Binding
	Jump      key.Binding
	Focus     key.Binding
	Back      key.Binding
	Export    key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "adjust")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "adjust")),
		BigLeft:   key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←/→", "adjust more")),
		BigRight:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+←/→", "adjust more")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/calculate")),
		Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump to view")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sidebar/controls")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "sidebar")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export trials")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Focus, k.Enter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Jump},
		{k.Left, k.BigLeft},
		{k.Focus, k.Back, k.Export, k.Reset},
		{k.Help, k.Quit},
	}
}
