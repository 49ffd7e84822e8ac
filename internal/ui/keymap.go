package ui

import "charm.land/bubbles/v2/key"

// KeyMap holds the table view bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Sort        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	Click       key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	MorePerPage key.Binding
	LessPerPage key.Binding
	Widen       key.Binding
	Narrow      key.Binding
	Search      key.Binding
	Filter      key.Binding
	Columns     key.Binding
	Copy        key.Binding
	Close       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Toggle:      key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select row")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Click:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open row")),
		NextPage:    key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
		PrevPage:    key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
		FirstPage:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		MorePerPage: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		LessPerPage: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
		Widen:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen column")),
		Narrow:      key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow column")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "CEL filter")),
		Columns:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy row")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the one-line footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Toggle, k.NextPage, k.PrevPage, k.Search, k.Filter, k.Help, k.Quit}
}

// FullHelp is the help overlay, one column per group.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Click, k.Copy},
		{k.Sort, k.Toggle, k.SelectAll, k.Widen, k.Narrow},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.MorePerPage, k.LessPerPage},
		{k.Search, k.Filter, k.Columns, k.Close, k.Help, k.Quit},
	}
}
