package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/stellarhub/internal/ipc"
)

type controlResult struct {
	data any
	err  error
}

// controlMsg runs fn on the event loop and sends the outcome to reply.
type controlMsg struct {
	fn    func(*Model) (any, error)
	reply chan controlResult
}

// Bridge implements ipc.Controller by posting requests into the bubbletea
// loop and waiting for the answer.
type Bridge struct {
	send func(tea.Msg)
}

// NewBridge returns a controller that delivers requests with send, usually
// (*tea.Program).Send.
func NewBridge(send func(tea.Msg)) *Bridge {
	return &Bridge{send: send}
}

func call[T any](ctx context.Context, b *Bridge, fn func(*Model) (T, error)) (T, error) {
	var zero T
	reply := make(chan controlResult, 1)
	msg := controlMsg{
		fn:    func(m *Model) (any, error) { return fn(m) },
		reply: reply,
	}
	go b.send(msg)

	select {
	case r := <-reply:
		if r.err != nil {
			return zero, r.err
		}
		return r.data.(T), nil
	case <-ctx.Done():
		return zero, fmt.Errorf("stellarhub did not answer: %w", ctx.Err())
	}
}

func (b *Bridge) Status(ctx context.Context) (*ipc.StatusData, error) {
	return call(ctx, b, func(m *Model) (*ipc.StatusData, error) { return m.statusData(), nil })
}

func (b *Bridge) Windows(ctx context.Context) (*ipc.WindowsData, error) {
	return call(ctx, b, func(m *Model) (*ipc.WindowsData, error) { return m.windowsData(), nil })
}

func (b *Bridge) ToggleHub(ctx context.Context) (*ipc.HubData, error) {
	return call(ctx, b, func(m *Model) (*ipc.HubData, error) {
		before := m.hub.IsVisible()
		m.toggle()
		m.refresh()
		return &ipc.HubData{Visible: m.hub.IsVisible(), Changed: before != m.hub.IsVisible()}, nil
	})
}

func (b *Bridge) SetHubVisible(ctx context.Context, visible bool) (*ipc.HubData, error) {
	return call(ctx, b, func(m *Model) (*ipc.HubData, error) {
		before := m.hub.IsVisible()
		m.hub.SetVisible(visible)
		m.refresh()
		return &ipc.HubData{Visible: m.hub.IsVisible(), Changed: before != m.hub.IsVisible()}, nil
	})
}

func (b *Bridge) SetWindowVisible(ctx context.Context, name string, visible bool) (*ipc.WindowInfo, error) {
	return call(ctx, b, func(m *Model) (*ipc.WindowInfo, error) {
		w, err := m.hub.WindowByName(name)
		if err != nil {
			return nil, err
		}
		w.SetVisible(visible)
		m.refresh()
		return m.windowInfo(w.Name())
	})
}

func (m *Model) statusData() *ipc.StatusData {
	visible := 0
	windows := m.hub.Windows()
	for _, w := range windows {
		if w.IsVisible() {
			visible++
		}
	}
	return &ipc.StatusData{
		HubVisible:       m.hub.IsVisible(),
		WindowCount:      len(windows),
		VisibleWindows:   visible,
		EnabledBehaviors: m.world.Enabled().Names(),
		UptimeSeconds:    int64(m.now().Sub(m.started).Seconds()),
		PID:              os.Getpid(),
	}
}

func (m *Model) windowsData() *ipc.WindowsData {
	out := &ipc.WindowsData{Windows: []ipc.WindowInfo{}}
	for _, w := range m.hub.Windows() {
		info, err := m.windowInfo(w.Name())
		if err != nil {
			continue
		}
		out.Windows = append(out.Windows, *info)
	}
	return out
}

func (m *Model) windowInfo(name string) (*ipc.WindowInfo, error) {
	w, err := m.hub.WindowByName(name)
	if err != nil {
		return nil, err
	}
	c, err := m.hub.Chrome(w)
	if err != nil {
		return nil, err
	}
	r := c.Rect()
	return &ipc.WindowInfo{
		Name:    w.Name(),
		Visible: w.IsVisible(),
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Height:  r.Height,
	}, nil
}
