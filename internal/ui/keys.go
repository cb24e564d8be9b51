package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"taskflow/internal/config"
)

type keyMap struct {
	Quit      key.Binding
	Add       key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Undo      key.Binding
	Search    key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	NextTag   key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:      binding("quit", k.Quit, "ctrl+c"),
		Add:       binding("add", k.Add),
		Up:        binding("up", k.Up, "up"),
		Down:      binding("down", k.Down, "down"),
		Toggle:    binding("toggle", k.Toggle),
		Delete:    binding("delete", k.Delete),
		Undo:      binding("undo", k.Undo),
		Search:    binding("search", k.Search),
		PrevDay:   binding("prev day", k.PrevDay, "left"),
		NextDay:   binding("next day", k.NextDay, "right"),
		PrevMonth: binding("prev month", k.PrevMonth),
		NextMonth: binding("next month", k.NextMonth),
		Today:     binding("today", k.Today),
		Confirm:   binding("confirm", k.Confirm),
		Cancel:    binding("cancel", k.Cancel),
		NextTag:   binding("tag", k.NextTag),
	}
}

// binding uses the configured key for help text and accepts the extras too.
func binding(desc, primary string, extra ...string) key.Binding {
	keys := append([]string{primary}, extra...)
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpLabel(primary), desc))
}

func helpLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Undo, k.Search, k.PrevDay, k.NextDay, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete, k.Undo},
		{k.PrevDay, k.NextDay, k.PrevMonth, k.NextMonth, k.Today},
		{k.Add, k.NextTag, k.Search, k.Confirm, k.Cancel, k.Quit},
	}
}
