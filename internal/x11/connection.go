package x11

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to $DISPLAY and prepares keyboard grabs.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop runs the X event loop until Quit is called.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// TerminalWindow returns the X window hosting this process's terminal. It
// uses $WINDOWID when the terminal exports it and the active window
// otherwise.
func (c *Connection) TerminalWindow() (xproto.Window, error) {
	if id, ok := windowIDFromEnv(os.Getenv("WINDOWID")); ok {
		return id, nil
	}
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	if win == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return win, nil
}

func windowIDFromEnv(v string) (xproto.Window, bool) {
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 0, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return xproto.Window(id), true
}
