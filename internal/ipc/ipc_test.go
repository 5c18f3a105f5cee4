package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	visible bool
	windows map[string]bool
	order   []string
}

func newFakeController() *fakeController {
	return &fakeController{
		windows: map[string]bool{"Keys": true, "Log": false},
		order:   []string{"Keys", "Log"},
	}
}

func (f *fakeController) Status(context.Context) (*StatusData, error) {
	return &StatusData{HubVisible: f.visible, WindowCount: len(f.order), PID: 42}, nil
}

func (f *fakeController) Windows(context.Context) (*WindowsData, error) {
	out := &WindowsData{}
	for _, n := range f.order {
		out.Windows = append(out.Windows, WindowInfo{Name: n, Visible: f.windows[n]})
	}
	return out, nil
}

func (f *fakeController) ToggleHub(context.Context) (*HubData, error) {
	f.visible = !f.visible
	return &HubData{Visible: f.visible, Changed: true}, nil
}

func (f *fakeController) SetHubVisible(_ context.Context, v bool) (*HubData, error) {
	changed := f.visible != v
	f.visible = v
	return &HubData{Visible: v, Changed: changed}, nil
}

func (f *fakeController) SetWindowVisible(_ context.Context, name string, v bool) (*WindowInfo, error) {
	if _, ok := f.windows[name]; !ok {
		return nil, errors.New("window not registered")
	}
	f.windows[name] = v
	return &WindowInfo{Name: name, Visible: v}, nil
}

func startServer(t *testing.T, c Controller) *Client {
	t.Helper()
	// Unix socket paths are length limited; keep the directory short.
	dir, err := os.MkdirTemp("", "shipc")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "s.sock")
	srv := NewServer(path, c, nil)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return NewClientWithPath(path)
}

func TestClientServer_StatusAndWindows(t *testing.T) {
	client := startServer(t, newFakeController())

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.WindowCount)
	assert.Equal(t, 42, status.PID)
	assert.False(t, status.HubVisible)

	windows, err := client.ListWindows()
	require.NoError(t, err)
	require.Len(t, windows.Windows, 2)
	assert.Equal(t, "Keys", windows.Windows[0].Name)
	assert.False(t, windows.Windows[1].Visible)
}

func TestClientServer_Visibility(t *testing.T) {
	fc := newFakeController()
	client := startServer(t, fc)

	hub, err := client.ToggleHub()
	require.NoError(t, err)
	assert.True(t, hub.Visible)

	hub, err = client.SetHubVisible(true)
	require.NoError(t, err)
	assert.False(t, hub.Changed)

	w, err := client.SetWindowVisible("Log", true)
	require.NoError(t, err)
	assert.True(t, w.Visible)
	assert.True(t, fc.windows["Log"])
}

func TestClientServer_ErrorsSurface(t *testing.T) {
	client := startServer(t, newFakeController())

	_, err := client.SetWindowVisible("Nope", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window not registered")

	_, err = client.SetWindowVisible("", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestServer_RejectsUnknownAndMalformed(t *testing.T) {
	dir, err := os.MkdirTemp("", "shipc")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "s.sock")
	srv := NewServer(path, newFakeController(), nil)
	require.NoError(t, srv.Start())
	defer srv.Stop()

	for _, line := range []string{`{"command":"LAUNCH"}`, `not json`, `{"command":"SET_HUB_VISIBLE"}`} {
		conn, err := net.Dial("unix", path)
		require.NoError(t, err)
		_, err = fmt.Fprintln(conn, line)
		require.NoError(t, err)

		buf := make([]byte, 512)
		n, err := conn.Read(buf)
		require.NoError(t, err)
		conn.Close()

		resp, err := parseResponse(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, StatusError, resp.Status, line)
		assert.NotEmpty(t, resp.Error, line)
	}
}

func TestClient_NotRunning(t *testing.T) {
	client := NewClientWithPath(filepath.Join(t.TempDir(), "missing.sock"))
	err := client.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is it running?")
}
