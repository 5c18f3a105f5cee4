// Package mcp exposes the running hub to MCP clients over stdio. Every tool
// forwards to the hub's IPC socket.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/stellarhub/internal/ipc"
)

const (
	ServerName    = "stellarhub"
	ServerVersion = "0.1.0"
)

// HubClient is the part of the IPC client the tools use.
type HubClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() (*ipc.WindowsData, error)
	ToggleHub() (*ipc.HubData, error)
	SetHubVisible(visible bool) (*ipc.HubData, error)
	SetWindowVisible(name string, visible bool) (*ipc.WindowInfo, error)
}

// Server is the MCP server for a stellarhub instance.
type Server struct {
	mcpServer *mcpsdk.Server
	client    HubClient
	logger    *slog.Logger
}

// NewServer creates a server that talks to client. A nil client dials the
// default socket.
func NewServer(client HubClient, logger *slog.Logger) *Server {
	if client == nil {
		client = ipc.NewClient()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{client: client, logger: logger}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hub_status",
		Description: "Report whether the hub overlay is open, how many windows it frames and which host behaviors are currently enabled.",
	}, s.handleHubStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the hub's windows in registration order with their visibility and frame rectangle in terminal cells.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_hub",
		Description: "Open the hub if it is closed, close it if it is open. The toggle is refused while the host is in text entry; changed is false in that case.",
	}, s.handleToggleHub)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_hub_visible",
		Description: "Open or close the hub overlay explicitly. Opening suspends host input except the retained behaviors; closing restores it.",
	}, s.handleSetHubVisible)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_visible",
		Description: "Show or hide one hub window by name. A shown window is brought to the front. If several windows share the name, the first registered one is used.",
	}, s.handleSetWindowVisible)
}
