package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/stellarhub/internal/config"
)

var version = "0.1.0"

// configPath is the --config flag shared by every command.
var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stellarhub",
		Short: "A floating window hub for terminal applications",
		Long: "stellarhub runs a full-screen terminal host with a toggleable overlay of\n" +
			"movable, resizable panels. A running instance can be driven over a unix\n" +
			"socket or through MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/stellarhub/config.yaml)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newToggleCmd())
	root.AddCommand(newVisibilityCmd("show", true))
	root.AddCommand(newVisibilityCmd("hide", false))
	root.AddCommand(newWindowsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newMCPCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfigPath returns the --config value or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultConfigPath()
}

func loadConfig() (*config.LoadResult, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, "", err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, err
	}
	return res, path, nil
}
