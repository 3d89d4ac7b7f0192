package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/epdtext-web/internal/app"
	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/pscheid92/epdtext-web/internal/platform/logging"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <action> [screen]",
	Short: "Send a single command to the renderer and exit",
	Long: `Send one command over the configured message queue, exactly as the web UI would.

Actions: next, previous, reload, button0..button3, screen, add_screen, remove_screen.
The screen actions take a screen name as second argument.`,
	Example: `  epdtext-web send next
  epdtext-web send add_screen weather`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) == 2 {
		arg = args[1]
	}
	command, err := domain.ParseCommand(args[0], arg)
	if err != nil {
		return err
	}

	cfg, err := setupConfig()
	if err != nil {
		return err
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	clock := clockwork.NewRealClock()

	channel, err := openChannel(ctx, channelOptions(cfg), clock)
	if err != nil {
		return err
	}
	defer func() { _ = channel.Close() }()

	commands := app.NewCommandService(channel, cfg.IPCSendTimeout, nil, clock)
	if err := commands.Send(ctx, command); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sent '%s' message to epdtext\n", command.Label())
	return nil
}
