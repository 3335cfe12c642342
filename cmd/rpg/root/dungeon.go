package root

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newDungeonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dungeon",
		Short: "Focus sessions with task monsters",
	}
	cmd.AddCommand(newDungeonStartCmd(), newDungeonTaskCmd(), newDungeonSlayCmd(), newDungeonStatusCmd(),
		newDungeonCompleteCmd(), newDungeonAbandonCmd())
	return cmd
}

func tierList() string {
	parts := make([]string, len(engine.DungeonTierOrder))
	for i, t := range engine.DungeonTierOrder {
		r := t.Reward()
		parts[i] = fmt.Sprintf("%s (%dm, +%d gold)", t, r.Minutes, r.GoldBonus)
	}
	return strings.Join(parts, ", ")
}

func newDungeonStartCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "start [tier]",
		Short: "Enter a dungeon",
		Long:  "Tiers: " + tierList() + ". Leaving before the target time halves the gold bonus.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			tier, err := engine.ParseDungeonTier(input)
			if err != nil {
				return err
			}
			_, err = runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.StartDungeon(tier, minutes)
			})
			return err
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Target minutes (default per tier)")
	return cmd
}

func newDungeonTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task <name>",
		Short: "Add a task monster to the active dungeon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if _, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return nil, e.AddDungeonTask(name)
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("👾 A monster appears: "+name))
			return nil
		},
	}
}

func newDungeonSlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slay <n>",
		Short: "Slay a task monster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task must be a number: %w", err)
			}
			_, err = runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.SlayDungeonTask(n - 1)
			})
			return err
		},
	}
}

func newDungeonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active dungeon",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			d := s.ActiveDungeon
			if d == nil {
				fmt.Fprintln(w, ui.Muted.Render("No active dungeon. Start one with `rpg dungeon start`."))
				return nil
			}
			elapsed := max(0, int(time.Since(d.StartTime).Minutes()))
			xp, gold := engine.DungeonPayout(*d, elapsed, s.GameDifficulty)
			fmt.Fprintln(w, ui.Heading(ui.IconDungeon, capitalize(string(d.Tier))+" dungeon"))
			fmt.Fprintln(w, ui.LabelValue("Time", fmt.Sprintf("%s %d/%d min", ui.Bar(elapsed, d.TargetMinutes, 20), elapsed, d.TargetMinutes)))
			fmt.Fprintln(w, ui.LabelValue("Payout now", fmt.Sprintf("%s XP, %s", ui.XP.Render(strconv.Itoa(xp)), ui.GoldText(gold))))
			for i, t := range d.Tasks {
				mark := "👾"
				if t.Slain {
					mark = "⚔️"
				}
				fmt.Fprintf(w, "%2d. %s %s\n", i+1, mark, t.Name)
			}
			return nil
		},
	}
}

func newDungeonCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete",
		Aliases: []string{"done", "leave"},
		Short:   "Leave the dungeon and collect the payout",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.CompleteDungeon()
			})
			if err != nil {
				return err
			}
			if !out.Has(engine.EventDungeonCleared) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No active dungeon."))
			}
			return nil
		},
	}
}

func newDungeonAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Flee the dungeon without reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.AbandonDungeon(), nil
			})
			return err
		},
	}
}
