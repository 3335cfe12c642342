package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liferpg/internal/coach"
	"liferpg/internal/ui"
)

func newCoachCmd() *cobra.Command {
	var topic string
	var history int

	cmd := &cobra.Command{
		Use:   "coach [message]",
		Short: "Talk to your AI life coach",
		Long:  "Send a message or pick a canned --topic (" + strings.Join(coach.TopicNames(), ", ") + ").",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if history > 0 {
				s, err := viewState(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, ui.Heading(ui.IconCoach, "Conversation"))
				for _, m := range s.RecentChat(history) {
					who := ui.Key.Render("you:")
					if m.Role == "assistant" {
						who = ui.H2.Render("coach:")
					}
					fmt.Fprintf(w, "%s %s\n\n", who, m.Content)
				}
				return nil
			}

			message := strings.Join(args, " ")
			if topic != "" {
				canned, ok := coach.Topics[topic]
				if !ok {
					return fmt.Errorf("unknown topic %q (want %s)", topic, strings.Join(coach.TopicNames(), ", "))
				}
				message = canned
			}
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("message or --topic is required")
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			reply, out, err := svc.Chat(ctx, message)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, ui.H2.Render(ui.IconCoach+" coach:"))
			fmt.Fprintln(w, reply)
			printOutcome(w, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Canned topic")
	cmd.Flags().IntVar(&history, "history", 0, "Show the last N messages instead of chatting")
	return cmd
}
