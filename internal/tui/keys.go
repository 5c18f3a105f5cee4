package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/1broseidon/stellarhub/internal/config"
	"github.com/1broseidon/stellarhub/internal/panels"
)

// keyMap holds the host-level bindings taken from the config.
type keyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

func newKeyMap(cfg *config.Config) keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(cfg.ToggleKey), key.WithHelp(cfg.ToggleKey, "toggle hub")),
		Quit:   key.NewBinding(key.WithKeys(cfg.QuitKey), key.WithHelp(cfg.QuitKey, "quit")),
	}
}

// helpBindings lists host and world bindings for the Keys panel.
func helpBindings(km keyMap, world []key.Binding, globalHotkey string) []panels.Binding {
	var out []panels.Binding
	add := func(b key.Binding) {
		h := b.Help()
		out = append(out, panels.Binding{Keys: h.Key, Help: h.Desc})
	}
	add(km.Toggle)
	if globalHotkey != "" {
		out = append(out, panels.Binding{Keys: globalHotkey, Help: "toggle hub (global)"})
	}
	add(km.Quit)
	for _, b := range world {
		add(b)
	}
	return out
}
