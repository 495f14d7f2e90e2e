package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"poshchat/services"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message through the relay and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, os.Stderr, nil)
		if err != nil {
			return err
		}
		return ask(cmd.Context(), a.chat, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func ask(ctx context.Context, chat *services.ChatService, message string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	exchange, err := chat.Reply(ctx, message)
	if err != nil {
		return fmt.Errorf("%s: %w", services.KindOf(err), err)
	}
	_, err = fmt.Fprintln(out, exchange.BotResponse)
	return err
}
