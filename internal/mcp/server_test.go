package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/stellarhub/internal/ipc"
	"github.com/1broseidon/stellarhub/internal/logging"
)

type fakeHub struct {
	visible bool
	windows []ipc.WindowInfo
	err     error
}

func (f *fakeHub) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.StatusData{HubVisible: f.visible, WindowCount: len(f.windows), PID: 42}, nil
}

func (f *fakeHub) ListWindows() (*ipc.WindowsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.WindowsData{Windows: f.windows}, nil
}

func (f *fakeHub) ToggleHub() (*ipc.HubData, error) {
	return f.SetHubVisible(!f.visible)
}

func (f *fakeHub) SetHubVisible(v bool) (*ipc.HubData, error) {
	if f.err != nil {
		return nil, f.err
	}
	changed := f.visible != v
	f.visible = v
	return &ipc.HubData{Visible: v, Changed: changed}, nil
}

func (f *fakeHub) SetWindowVisible(name string, v bool) (*ipc.WindowInfo, error) {
	for i := range f.windows {
		if f.windows[i].Name == name {
			f.windows[i].Visible = v
			info := f.windows[i]
			return &info, nil
		}
	}
	return nil, errors.New("stellarhub error: window \"" + name + "\": window not registered")
}

func newFakeHub() *fakeHub {
	return &fakeHub{windows: []ipc.WindowInfo{
		{Name: "Keys", Visible: true, X: 8, Y: 3, Width: 62, Height: 23},
		{Name: "Status", Visible: true, X: 8, Y: 3, Width: 82, Height: 15},
	}}
}

func TestHandleHubStatus(t *testing.T) {
	s := NewServer(newFakeHub(), logging.Discard())
	_, out, err := s.handleHubStatus(context.Background(), nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.WindowCount)
	assert.Equal(t, 42, out.PID)
	assert.NotNil(t, out.EnabledBehaviors)
}

func TestHandleToggleAndSetHub(t *testing.T) {
	s := NewServer(newFakeHub(), logging.Discard())
	ctx := context.Background()

	res, out, err := s.handleToggleHub(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, HubOutput{Visible: true, Changed: true}, out)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "Hub is open", res.Content[0].(*mcpsdk.TextContent).Text)

	res, out, err = s.handleSetHubVisible(ctx, nil, SetHubVisibleInput{Visible: true})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, "Hub is open (unchanged)", res.Content[0].(*mcpsdk.TextContent).Text)
}

func TestHandleSetWindowVisible(t *testing.T) {
	hub := newFakeHub()
	s := NewServer(hub, logging.Discard())
	ctx := context.Background()

	_, out, err := s.handleSetWindowVisible(ctx, nil, SetWindowVisibleInput{Name: " Keys ", Visible: false})
	require.NoError(t, err)
	assert.Equal(t, "Keys", out.Name)
	assert.False(t, hub.windows[0].Visible)

	_, _, err = s.handleSetWindowVisible(ctx, nil, SetWindowVisibleInput{Name: "  "})
	assert.EqualError(t, err, "name is required")

	_, _, err = s.handleSetWindowVisible(ctx, nil, SetWindowVisibleInput{Name: "Nope"})
	assert.Error(t, err)
}

func TestHandlersSurfaceClientErrors(t *testing.T) {
	hub := newFakeHub()
	hub.err = errors.New("failed to connect to stellarhub (is it running?)")
	s := NewServer(hub, logging.Discard())

	_, _, err := s.handleHubStatus(context.Background(), nil, EmptyInput{})
	assert.ErrorIs(t, err, hub.err)
	_, _, err = s.handleListWindows(context.Background(), nil, EmptyInput{})
	assert.ErrorIs(t, err, hub.err)
}

func connect(t *testing.T, s *Server) *mcpsdk.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ss, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestToolsOverTransport(t *testing.T) {
	cs := connect(t, NewServer(newFakeHub(), logging.Discard()))
	ctx := context.Background()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"hub_status", "list_windows", "toggle_hub", "set_hub_visible", "set_window_visible"}, names)

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: "list_windows", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out ListWindowsOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Windows, 2)
	assert.Equal(t, "Status", out.Windows[1].Name)

	res, err = cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "set_window_visible",
		Arguments: map[string]any{"name": "Nope", "visible": true},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
