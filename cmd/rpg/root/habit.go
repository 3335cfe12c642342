package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Manage daily habits",
	}
	cmd.AddCommand(newHabitAddCmd(), newHabitListCmd(), newHabitDoneCmd(), newHabitRmCmd(), newHabitDifficultyCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var domain string
	var diff string
	var xp, gold int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a daily habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDomainFlag(domain)
			if err != nil {
				return err
			}
			out, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.AddHabit(engine.HabitInput{
					Name:       args[0],
					Domain:     d,
					Difficulty: engine.ParseDifficulty(diff),
					BaseXP:     xp,
					BaseGold:   gold,
				})
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Added habit %q", ui.IconPlus, args[0]))+" "+ui.Muted.Render(shortID(out.Ref)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "D", "", "Life domain (e.g. health, education)")
	cmd.Flags().StringVarP(&diff, "diff", "d", string(engine.DefaultDifficulty), "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().IntVar(&xp, "xp", 0, "Base XP (default 10)")
	cmd.Flags().IntVar(&gold, "gold", 0, "Base gold (default 5)")

	return cmd
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with today's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconHabit, "Habits"))
			if len(s.Habits) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("No habits yet. Add one with `rpg habit add`."))
				return nil
			}
			for i, h := range s.Habits {
				mark := "[ ]"
				if h.Completed {
					mark = ui.Good.Render("[x]")
				}
				streak := ""
				if h.Streak > 0 {
					streak = fmt.Sprintf(" 🔥%d", h.Streak)
				}
				fmt.Fprintf(w, "%2d. %s %s %s %s%s %s\n", i+1, mark, h.Name, ui.DifficultyText(h.Difficulty),
					ui.Muted.Render(ui.DomainLabel(h.Domain)), streak, ui.Muted.Render(shortID(h.ID)))
			}
			return nil
		},
	}
}

func newHabitDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <n|id>",
		Aliases: []string{"do"},
		Short:   "Complete a habit for today",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], habitIDs(e.State()), "habit")
				if err != nil {
					return nil, err
				}
				res, err := e.CompleteHabit(id)
				if err != nil {
					return nil, err
				}
				return res.Outcome, nil
			})
			return err
		},
	}
}

func newHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n|id>",
		Short: "Remove a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], habitIDs(e.State()), "habit")
				if err != nil {
					return nil, err
				}
				return nil, e.RemoveHabit(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Habit removed."))
			return nil
		},
	}
}

func newHabitDifficultyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "difficulty <n|id> <easy|medium|hard|epic>",
		Short: "Change a habit's difficulty",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := engine.Difficulty(args[1])
			if !d.IsValid() {
				return fmt.Errorf("unknown difficulty %q", args[1])
			}
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], habitIDs(e.State()), "habit")
				if err != nil {
					return nil, err
				}
				return nil, e.SetHabitDifficulty(id, d)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Difficulty set to ")+ui.DifficultyText(d))
			return nil
		},
	}
}

// shortID is the first block of a uuid.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
