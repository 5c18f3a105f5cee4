package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/chrome"
	"github.com/1broseidon/stellarhub/internal/config"
	"github.com/1broseidon/stellarhub/internal/hotkeys"
	"github.com/1broseidon/stellarhub/internal/ipc"
	"github.com/1broseidon/stellarhub/internal/logging"
	"github.com/1broseidon/stellarhub/internal/tui"
	"github.com/1broseidon/stellarhub/internal/x11"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the terminal host with the hub (foreground)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHub(cmd.Context())
		},
	}
}

func requireTTY(what string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("%s requires an interactive terminal (stdin/stdout must be TTYs)", what)
	}
	return nil
}

func termSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func runHub(parent context.Context) error {
	if err := requireTTY("run"); err != nil {
		return err
	}
	res, path, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	logger, ring, closer, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)
	logger.Info("stellarhub starting", "version", version, "config", path, "pid", os.Getpid())

	themeDir, err := config.ExpandHome(cfg.ThemeDir)
	if err != nil {
		return err
	}
	theme, err := assets.Load(themeDir)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	conn, native := connectX11(cfg, logger)
	if conn != nil {
		defer conn.Close()
	}
	if setter, ok := native.(*x11.CursorSetter); ok {
		defer setter.Reset()
	}

	m, err := tui.NewModel(tui.Options{
		Config: cfg,
		Assets: theme,
		Logger: logger,
		Log:    ring,
		Cursor: native,
	})
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	// Log records are written from inside Update, where a blocking Send
	// would deadlock; coalesce them into one pending refresh.
	logged := make(chan struct{}, 1)
	ring.SetNotify(func() {
		select {
		case logged <- struct{}{}:
		default:
		}
	})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-logged:
				p.Send(tui.LogUpdatedMsg{})
			}
		}
	}()

	if conn != nil && cfg.GlobalHotkey != "" {
		h := hotkeys.NewHandler(conn, logger)
		if err := h.RegisterToggle(cfg.GlobalHotkey, func() { p.Send(tui.ToggleHubMsg{}) }); err != nil {
			logger.Warn("failed to register global hotkey", "key", cfg.GlobalHotkey, "err", err)
		}
		go conn.EventLoop()
		defer conn.Quit()
	}

	if cfg.IPCEnabled {
		if srv := startIPC(p, logger); srv != nil {
			defer srv.Stop()
		}
	}

	if cfg.WatchConfig {
		go func() {
			err := config.Watch(ctx, path,
				func(r *config.LoadResult) { p.Send(tui.ConfigReloadedMsg{Result: r}) },
				func(err error) { p.Send(tui.ConfigErrorMsg{Err: err}) },
			)
			if err != nil {
				logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					logger.Info("received SIGHUP, reloading config")
					r, err := config.LoadFromPath(path)
					if err != nil {
						p.Send(tui.ConfigErrorMsg{Err: err})
						continue
					}
					p.Send(tui.ConfigReloadedMsg{Result: r})
					continue
				}
				logger.Info("shutting down", "signal", sig.String())
				p.Quit()
				return
			}
		}
	}()

	_, err = p.Run()
	logger.Info("stellarhub stopped")
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// connectX11 opens the display when a feature needs it. Failure only
// disables those features.
func connectX11(cfg *config.Config, logger *slog.Logger) (*x11.Connection, chrome.CursorSink) {
	if !cfg.X11Cursors && cfg.GlobalHotkey == "" {
		return nil, nil
	}
	conn, err := x11.NewConnection()
	if err != nil {
		logger.Warn("x11 unavailable, native cursors and global hotkey disabled", "err", err)
		return nil, nil
	}
	if !cfg.X11Cursors {
		return conn, nil
	}
	win, err := conn.TerminalWindow()
	if err != nil {
		logger.Warn("terminal window not found, native cursors disabled", "err", err)
		return conn, nil
	}
	logger.Info("native cursors enabled", "window", uint32(win))
	return conn, x11.NewCursorSetter(conn, win, logger)
}

func startIPC(p *tea.Program, logger *slog.Logger) *ipc.Server {
	sock, err := ipc.SocketPath()
	if err != nil {
		logger.Warn("ipc disabled", "err", err)
		return nil
	}
	srv := ipc.NewServer(sock, tui.NewBridge(p.Send), logger)
	if err := srv.Start(); err != nil {
		logger.Warn("ipc disabled", "err", err)
		return nil
	}
	return srv
}
