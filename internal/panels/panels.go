// Package panels holds the hub windows shipped with the terminal host.
package panels

import (
	"fmt"
	"strings"

	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/hub"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// Names of the built-in panels.
const (
	KeysName   = "Keys"
	LogName    = "Log"
	StatusName = "Status"
)

// Binding is one row of the Keys panel.
type Binding struct {
	Keys string
	Help string
}

// Keys lists the active key bindings.
type Keys struct {
	*hub.Panel
	bindings []Binding
	text     *scene.Node
}

// NewKeys returns the key reference panel.
func NewKeys(bindings []Binding) *Keys {
	k := &Keys{bindings: bindings}
	k.Panel = hub.NewPanel(KeysName,
		geometry.Size{Width: 24, Height: 4},
		geometry.Size{Width: 60, Height: 20},
		k.build)
	return k
}

func (k *Keys) build() *scene.Node {
	k.text = scene.NewLabel("keys-text", formatBindings(k.bindings))
	box := scene.NewBox("keys")
	box.Add(k.text)
	return box
}

// SetBindings replaces the listed bindings.
func (k *Keys) SetBindings(bindings []Binding) {
	k.bindings = bindings
	if k.text != nil {
		k.text.Text = formatBindings(bindings)
	}
}

func formatBindings(bindings []Binding) string {
	width := 0
	for _, b := range bindings {
		width = max(width, len(b.Keys))
	}
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, b.Keys, b.Help))
	}
	return strings.Join(lines, "\n")
}

// LineSource supplies the newest log lines.
type LineSource interface {
	Tail(n int) []string
}

// Log shows the tail of the process log.
type Log struct {
	*hub.Panel
	source LineSource
	text   *scene.Node
}

// NewLog returns a panel rendering source.
func NewLog(source LineSource) *Log {
	l := &Log{source: source}
	l.Panel = hub.NewPanel(LogName,
		geometry.Size{Width: 30, Height: 5},
		geometry.Size{Width: 160, Height: 40},
		l.build)
	return l
}

func (l *Log) build() *scene.Node {
	l.text = scene.NewLabel("log-text", "")
	box := scene.NewBox("log")
	box.Add(l.text)
	l.Refresh()
	return box
}

// Refresh reloads as many lines as the panel can show. It is a no-op until
// the panel content exists.
func (l *Log) Refresh() {
	if l.text == nil || l.source == nil {
		return
	}
	rows := l.text.Parent().ContentRect().Height
	if rows <= 0 {
		rows = l.MinSize().Height
	}
	l.text.Text = strings.Join(l.source.Tail(rows), "\n")
}

// Status shows a few host facts produced by report.
type Status struct {
	*hub.Panel
	report func() []string
	text   *scene.Node
}

// NewStatus returns a panel that renders report on Refresh.
func NewStatus(report func() []string) *Status {
	s := &Status{report: report}
	s.Panel = hub.NewPanel(StatusName,
		geometry.Size{Width: 26, Height: 3},
		geometry.Size{Width: 80, Height: 12},
		s.build)
	return s
}

func (s *Status) build() *scene.Node {
	s.text = scene.NewLabel("status-text", "")
	box := scene.NewBox("status")
	box.Add(s.text)
	s.Refresh()
	return box
}

// Refresh re-runs the report.
func (s *Status) Refresh() {
	if s.text == nil || s.report == nil {
		return
	}
	s.text.Text = strings.Join(s.report(), "\n")
}
