package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	prevDay  key.Binding
	nextDay  key.Binding
	prevWeek key.Binding
	nextWeek key.Binding
	today    key.Binding
	add      key.Binding
	toggle   key.Binding
	del      key.Binding
	detail   key.Binding
	auto     key.Binding
	cancel   key.Binding
	reload   key.Binding
	help     key.Binding
	quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		moveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		moveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		prevDay:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev day")),
		nextDay:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next day")),
		prevWeek: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev week")),
		nextWeek: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
		today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		add:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		toggle:   key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
		del:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		detail:   key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "details")),
		auto:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "auto-scroll")),
		cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.moveUp, k.moveDown, k.add, k.toggle, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.moveUp, k.moveDown},
		{k.prevDay, k.nextDay, k.prevWeek, k.nextWeek, k.today},
		{k.add, k.toggle, k.del, k.detail},
		{k.auto, k.cancel, k.reload, k.help, k.quit},
	}
}
