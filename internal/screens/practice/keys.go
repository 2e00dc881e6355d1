package practice

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/lingodeck/internal/ui/layout"
)

type keyMap struct {
	Wrong key.Binding
	Right key.Binding
	Flip  key.Binding
	Focus key.Binding
	Press key.Binding
	Back  key.Binding

	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Wrong: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Didn't know")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Knew it")),
		Flip:  key.NewBinding(key.WithKeys("space", "f"), key.WithHelp("Space", "Flip")),
		Focus: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("Tab", "Buttons")),
		Press: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Start")),
		Back:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "Exit")),
		Up:    key.NewBinding(key.WithKeys("up", "k")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}
