package screen

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down        key.Binding
	AddOnInc        key.Binding
	AddOnDec        key.Binding
	BaseInc         key.Binding
	BaseDec         key.Binding
	Favorite        key.Binding
	Confirm, Reload key.Binding
	Help, Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		AddOnInc: key.NewBinding(key.WithKeys("+", "=", "right", "l"), key.WithHelp("+", "add extra")),
		AddOnDec: key.NewBinding(key.WithKeys("-", "left", "h"), key.WithHelp("-", "remove extra")),
		BaseInc:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more")),
		BaseDec:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "less")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm order")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddOnInc, k.AddOnDec, k.BaseInc, k.BaseDec, k.Favorite, k.Confirm, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.AddOnInc, k.AddOnDec},
		{k.BaseInc, k.BaseDec, k.Favorite},
		{k.Confirm, k.Reload, k.Help, k.Quit},
	}
}
