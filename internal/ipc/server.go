package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// requestTimeout bounds how long one connection waits for the controller.
const requestTimeout = 5 * time.Second

// Controller carries out control requests. Implementations are called from
// connection goroutines and must hand work to their own event loop.
type Controller interface {
	Status(ctx context.Context) (*StatusData, error)
	Windows(ctx context.Context) (*WindowsData, error)
	ToggleHub(ctx context.Context) (*HubData, error)
	SetHubVisible(ctx context.Context, visible bool) (*HubData, error)
	SetWindowVisible(ctx context.Context, name string, visible bool) (*WindowInfo, error)
}

// Server accepts control connections on a unix socket.
type Server struct {
	socketPath string
	listener   net.Listener
	controller Controller
	logger     *slog.Logger

	mu           sync.Mutex
	shuttingDown bool
	conns        sync.WaitGroup
}

// NewServer prepares a server on socketPath, removing a stale socket.
func NewServer(socketPath string, controller Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	os.Remove(socketPath)
	return &Server{
		socketPath: socketPath,
		controller: controller,
		logger:     logger,
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("ipc server listening", "socket", s.socketPath)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			done := s.shuttingDown
			s.mu.Unlock()
			if done {
				return
			}
			s.logger.Warn("ipc accept failed", "err", err)
			continue
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * requestTimeout))

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("ipc read failed", "err", err)
		return
	}

	var resp *Response
	req, err := ParseRequest(data)
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("invalid request: %v", err))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		resp = s.handleCommand(ctx, req)
		cancel()
	}

	out, err := resp.Marshal()
	if err != nil {
		s.logger.Error("ipc marshal failed", "err", err)
		return
	}
	if _, err := conn.Write(append(out, '\n')); err != nil {
		s.logger.Warn("ipc write failed", "err", err)
	}
}

func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	s.logger.Debug("ipc request", "command", req.Command)

	var (
		data any
		err  error
	)
	switch req.Command {
	case CommandGetStatus:
		data, err = s.controller.Status(ctx)
	case CommandListWindows:
		data, err = s.controller.Windows(ctx)
	case CommandToggleHub:
		data, err = s.controller.ToggleHub(ctx)
	case CommandSetHubVisible:
		var p SetHubVisiblePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		data, err = s.controller.SetHubVisible(ctx, p.Visible)
	case CommandSetWindowVisible:
		var p SetWindowVisiblePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		if p.Name == "" {
			return NewErrorResponse("name is required")
		}
		data, err = s.controller.SetWindowVisible(ctx, p.Name, p.Visible)
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decodePayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// Stop closes the listener, waits for open connections and removes the
// socket.
func (s *Server) Stop() {
	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		return
	}
	s.shuttingDown = true
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
	os.Remove(s.socketPath)
}
