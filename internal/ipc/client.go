package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client talks to a running stellarhub over its control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient returns a client for the default socket.
func NewClient() *Client {
	socketPath, err := SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath returns a client for socketPath.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    10 * time.Second,
	}
}

func (c *Client) sendRequest(command CommandType, payload any) (*Response, error) {
	req := Request{Command: command}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", command, err)
		}
		req.Payload = raw
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stellarhub: %w (is it running?)", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if _, err := conn.Write(append(reqData, '\n')); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	resp, err := parseResponse(respData)
	if err != nil {
		return nil, err
	}
	if resp.Status == StatusError {
		return nil, fmt.Errorf("stellarhub error: %s", resp.Error)
	}
	return resp, nil
}

func (c *Client) call(command CommandType, payload any, out any) error {
	resp, err := c.sendRequest(command, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return nil
}

// GetStatus retrieves hub status.
func (c *Client) GetStatus() (*StatusData, error) {
	var out StatusData
	if err := c.call(CommandGetStatus, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWindows retrieves the registered windows.
func (c *Client) ListWindows() (*WindowsData, error) {
	var out WindowsData
	if err := c.call(CommandListWindows, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleHub flips the overlay.
func (c *Client) ToggleHub() (*HubData, error) {
	var out HubData
	if err := c.call(CommandToggleHub, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetHubVisible opens or closes the overlay.
func (c *Client) SetHubVisible(visible bool) (*HubData, error) {
	var out HubData
	if err := c.call(CommandSetHubVisible, SetHubVisiblePayload{Visible: visible}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetWindowVisible shows or hides one window by name.
func (c *Client) SetWindowVisible(name string, visible bool) (*WindowInfo, error) {
	var out WindowInfo
	payload := SetWindowVisiblePayload{Name: name, Visible: visible}
	if err := c.call(CommandSetWindowVisible, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that stellarhub is responding.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
