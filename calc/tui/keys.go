package tui

import (
	"strings"

	"calc/calc/keypad"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Digits   key.Binding
	Ops      key.Binding
	Square   key.Binding
	Root     key.Binding
	Evaluate key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// buttonBinding describes the keys keypad dispatches to buttons with action a.
func buttonBinding(a keypad.Action, desc string) key.Binding {
	keys := keypad.Bindings(a)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, " "), desc),
	)
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits:   buttonBinding(keypad.ActionDigit, "digits"),
		Ops:      buttonBinding(keypad.ActionOperator, "operators"),
		Square:   buttonBinding(keypad.ActionSquare, "square"),
		Root:     buttonBinding(keypad.ActionSquareRoot, "square root"),
		Evaluate: buttonBinding(keypad.ActionEvaluate, "evaluate"),
		Clear:    buttonBinding(keypad.ActionClear, "clear"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Ops},
		{k.Square, k.Root},
		{k.Evaluate, k.Clear},
		{k.Help, k.Quit},
	}
}
