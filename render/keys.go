package render

import "github.com/charmbracelet/bubbles/key"

type fieldKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Close  key.Binding
	Yes    key.Binding
	No     key.Binding
}

var keys = fieldKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "less")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "more")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
}

// Help lists the bindings a question type responds to, for the footer.
func Help(f Field) []key.Binding {
	switch f.(type) {
	case *choiceField:
		return []key.Binding{keys.Up, keys.Down, keys.Toggle}
	case *ratingField:
		return []key.Binding{keys.Left, keys.Right, keys.Toggle}
	case *yesNoField:
		return []key.Binding{keys.Left, keys.Right, keys.Yes, keys.No}
	case *dropdownField:
		return []key.Binding{keys.Toggle, keys.Up, keys.Down, keys.Close}
	default:
		return nil
	}
}
