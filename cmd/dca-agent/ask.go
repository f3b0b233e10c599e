package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/dca-agent/internal/app/dto"
	"github.com/PabloGalante/dca-agent/internal/config"
	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

var askJSON bool

// askCmd answers one message offline, without starting the server.
var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Print the agent reply for a single message",
	Example: `  dca-agent ask "Buy $20 of ETH every 5 minutes for 1 hour"
  dca-agent ask --json show my transactions`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Keep the info-level chat logs out of the printed reply.
		if _, err := observability.Init(config.Logging{Level: "error", Format: "text"}); err != nil {
			return err
		}

		svc := newServices(time.Now())
		chat := svc.conversation()

		out, err := chat.Record(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if askJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(dto.FromChatUpdate(domain.ChatUpdate{
				UserMessage:  out.UserMessage,
				AgentMessage: out.AgentMessage,
			}))
		}

		fmt.Fprintf(w, "[%s]\n%s\n", out.Intent, out.AgentMessage.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the chat_update envelope as JSON")
}
