package mcp

import "github.com/1broseidon/stellarhub/internal/ipc"

// EmptyInput is the input for tools without arguments.
type EmptyInput struct{}

// StatusOutput is the output for the hub_status tool.
type StatusOutput struct {
	HubVisible       bool     `json:"hub_visible"`
	WindowCount      int      `json:"window_count"`
	VisibleWindows   int      `json:"visible_windows"`
	EnabledBehaviors []string `json:"enabled_behaviors"`
	UptimeSeconds    int64    `json:"uptime_seconds"`
	PID              int      `json:"pid"`
}

// WindowInfo describes one hub window.
type WindowInfo struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// HubOutput is the output for toggle_hub and set_hub_visible.
type HubOutput struct {
	Visible bool `json:"visible"`
	Changed bool `json:"changed"`
}

// SetHubVisibleInput is the input for the set_hub_visible tool.
type SetHubVisibleInput struct {
	Visible bool `json:"visible" jsonschema:"required,true opens the hub, false closes it"`
}

// SetWindowVisibleInput is the input for the set_window_visible tool.
type SetWindowVisibleInput struct {
	Name    string `json:"name" jsonschema:"required,Window name as shown by list_windows (e.g. Keys, Status, Log)"`
	Visible bool   `json:"visible" jsonschema:"required,true shows the window, false hides it"`
}

func windowFromIPC(w ipc.WindowInfo) WindowInfo {
	return WindowInfo{
		Name:    w.Name,
		Visible: w.Visible,
		X:       w.X,
		Y:       w.Y,
		Width:   w.Width,
		Height:  w.Height,
	}
}
