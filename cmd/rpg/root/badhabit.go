package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newBadHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bad",
		Aliases: []string{"badhabit", "vice"},
		Short:   "Track bad habits that cost HP and gold",
	}
	cmd.AddCommand(newBadHabitAddCmd(), newBadHabitListCmd(), newBadHabitTriggerCmd(), newBadHabitRmCmd())
	return cmd
}

func newBadHabitAddCmd() *cobra.Command {
	var hp, gold int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a bad habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.AddBadHabit(args[0], hp, gold)
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Tracking %q", ui.IconBadHabit, args[0])))
			return nil
		},
	}

	cmd.Flags().IntVar(&hp, "hp", engine.DefaultBadHabitHP, "HP lost per trigger")
	cmd.Flags().IntVar(&gold, "gold", 0, "Gold lost per trigger")
	return cmd
}

func newBadHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bad habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconBadHabit, "Bad habits"))
			if len(s.BadHabits) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("None tracked."))
			}
			for i, b := range s.BadHabits {
				fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, b.Name,
					ui.Bad.Render(fmt.Sprintf("-%d HP -%d gold", b.HPCost, b.GoldPenalty)),
					ui.Muted.Render(fmt.Sprintf("triggered %dx", b.TriggerCount)))
			}
			return nil
		},
	}
}

func newBadHabitTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "trigger <n|id>",
		Aliases: []string{"oops"},
		Short:   "Record giving in to a bad habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], badHabitIDs(e.State()), "bad habit")
				if err != nil {
					return nil, err
				}
				return e.TriggerBadHabit(id)
			})
			return err
		},
	}
}

func newBadHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n|id>",
		Short: "Stop tracking a bad habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], badHabitIDs(e.State()), "bad habit")
				if err != nil {
					return nil, err
				}
				return nil, e.RemoveBadHabit(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Bad habit removed."))
			return nil
		},
	}
}
