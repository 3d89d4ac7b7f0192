package main

import (
	"fmt"
	"os"

	"github.com/pscheid92/epdtext-web/internal/platform/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "epdtext-web",
	Short: "Web remote control for the epdtext e-paper renderer",
	Long: `epdtext-web serves a small authenticated web UI and turns each request into
a command on the renderer's POSIX message queue.

Without a subcommand it runs the HTTP server.`,
	Version:       version.Get().String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
