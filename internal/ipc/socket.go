package ipc

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketEnv names the variable that overrides the socket location.
const SocketEnv = "STELLARHUB_SOCKET"

const socketName = "stellarhub.sock"

// SocketPath returns where the control socket lives. The first match wins:
//
//  1. $STELLARHUB_SOCKET, used as the full socket path
//  2. $XDG_RUNTIME_DIR/stellarhub.sock
//  3. /run/user/<uid>/stellarhub.sock, when that directory exists
//  4. /tmp/stellarhub-<uid>/stellarhub.sock, creating the directory 0700
func SocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return p, nil
	}
	dir, err := socketDir(os.Getuid())
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, socketName), nil
}

func socketDir(uid int) (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("stellarhub-%d", uid))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create socket dir %s: %w", dir, err)
	}
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
