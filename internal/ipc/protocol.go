package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus        CommandType = "GET_STATUS"
	CommandListWindows      CommandType = "LIST_WINDOWS"
	CommandToggleHub        CommandType = "TOGGLE_HUB"
	CommandSetHubVisible    CommandType = "SET_HUB_VISIBLE"
	CommandSetWindowVisible CommandType = "SET_WINDOW_VISIBLE"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is returned by GET_STATUS.
type StatusData struct {
	HubVisible       bool     `json:"hub_visible"`
	WindowCount      int      `json:"window_count"`
	VisibleWindows   int      `json:"visible_windows"`
	EnabledBehaviors []string `json:"enabled_behaviors"`
	UptimeSeconds    int64    `json:"uptime_seconds"`
	PID              int      `json:"pid"`
}

// WindowInfo describes one registered hub window.
type WindowInfo struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// WindowsData is returned by LIST_WINDOWS, in registration order.
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// HubData is returned by TOGGLE_HUB and SET_HUB_VISIBLE.
type HubData struct {
	Visible bool `json:"visible"`
	// Changed is false when the request was refused or was already in effect.
	Changed bool `json:"changed"`
}

type SetHubVisiblePayload struct {
	Visible bool `json:"visible"`
}

type SetWindowVisiblePayload struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func parseResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}
