package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1broseidon/stellarhub/internal/ipc"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running instance's status via IPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ipc.NewClient().GetStatus()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printStatus(w io.Writer, s *ipc.StatusData) {
	fmt.Fprintf(w, "hub_visible:       %v\n", s.HubVisible)
	fmt.Fprintf(w, "windows:           %d (%d visible)\n", s.WindowCount, s.VisibleWindows)
	fmt.Fprintf(w, "enabled_behaviors: %s\n", strings.Join(s.EnabledBehaviors, ","))
	fmt.Fprintf(w, "uptime_seconds:    %d\n", s.UptimeSeconds)
	fmt.Fprintf(w, "pid:               %d\n", s.PID)
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Open or close the hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ipc.NewClient().ToggleHub()
			if err != nil {
				return err
			}
			if !data.Changed {
				return fmt.Errorf("toggle refused (text entry in progress)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), hubState(data.Visible))
			return nil
		},
	}
}

// newVisibilityCmd builds show and hide. Without an argument they act on the
// hub, with one on the named window.
func newVisibilityCmd(name string, visible bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [WINDOW]",
		Short: strings.ToUpper(name[:1]) + name[1:] + " the hub, or one of its windows",
		Long: strings.ToUpper(name[:1]) + name[1:] + " the hub, or the window called WINDOW.\n" +
			"When several windows share a name, the one registered first is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ipc.NewClient()
			if len(args) == 0 {
				data, err := client.SetHubVisible(visible)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hubState(data.Visible))
				return nil
			}
			info, err := client.SetWindowVisible(args[0], visible)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", info.Name, visibility(info.Visible))
			return nil
		},
	}
}

func newWindowsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the hub's windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ipc.NewClient().ListWindows()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), data)
			}
			printWindows(cmd.OutOrStdout(), data.Windows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printWindows(w io.Writer, windows []ipc.WindowInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVISIBLE\tRECT")
	for _, win := range windows {
		fmt.Fprintf(tw, "%s\t%v\t%d,%d %dx%d\n", win.Name, win.Visible, win.X, win.Y, win.Width, win.Height)
	}
	tw.Flush()
}

func hubState(visible bool) string {
	if visible {
		return "hub: open"
	}
	return "hub: closed"
}

func visibility(v bool) string {
	if v {
		return "shown"
	}
	return "hidden"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
