package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleHubStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.client.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	behaviors := st.EnabledBehaviors
	if behaviors == nil {
		behaviors = []string{}
	}
	return nil, StatusOutput{
		HubVisible:       st.HubVisible,
		WindowCount:      st.WindowCount,
		VisibleWindows:   st.VisibleWindows,
		EnabledBehaviors: behaviors,
		UptimeSeconds:    st.UptimeSeconds,
		PID:              st.PID,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, windowFromIPC(w))
	}
	return nil, out, nil
}

func (s *Server) handleToggleHub(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, HubOutput, error) {
	data, err := s.client.ToggleHub()
	if err != nil {
		return nil, HubOutput{}, err
	}
	s.logger.Info("mcp toggled hub", "visible", data.Visible, "changed", data.Changed)
	return hubResult(data.Visible, data.Changed), HubOutput{Visible: data.Visible, Changed: data.Changed}, nil
}

func (s *Server) handleSetHubVisible(_ context.Context, _ *mcpsdk.CallToolRequest, args SetHubVisibleInput) (*mcpsdk.CallToolResult, HubOutput, error) {
	data, err := s.client.SetHubVisible(args.Visible)
	if err != nil {
		return nil, HubOutput{}, err
	}
	s.logger.Info("mcp set hub visibility", "visible", data.Visible, "changed", data.Changed)
	return hubResult(data.Visible, data.Changed), HubOutput{Visible: data.Visible, Changed: data.Changed}, nil
}

func (s *Server) handleSetWindowVisible(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowVisibleInput) (*mcpsdk.CallToolResult, WindowInfo, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, WindowInfo{}, fmt.Errorf("name is required")
	}
	info, err := s.client.SetWindowVisible(name, args.Visible)
	if err != nil {
		return nil, WindowInfo{}, err
	}
	s.logger.Info("mcp set window visibility", "name", info.Name, "visible", info.Visible)
	return nil, windowFromIPC(*info), nil
}

func hubResult(visible, changed bool) *mcpsdk.CallToolResult {
	state := "closed"
	if visible {
		state = "open"
	}
	text := "Hub is " + state
	if !changed {
		text += " (unchanged)"
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}
