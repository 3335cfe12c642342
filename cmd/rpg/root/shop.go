package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reward",
		Aliases: []string{"shop", "rewards"},
		Short:   "Spend gold on real-life rewards",
	}
	cmd.AddCommand(newRewardAddCmd(), newRewardListCmd(), newRewardBuyCmd(), newRewardRmCmd())
	return cmd
}

func newRewardAddCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a reward to the shop",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.AddReward(args[0], cost)
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s %q costs %d gold", ui.IconReward, args[0], cost)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&cost, "cost", "c", 50, "Cost in gold")
	return cmd
}

func newRewardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconReward, "Shop")+"  "+ui.GoldText(s.Gold))
			if len(s.Rewards) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("The shop is empty. Add a reward with `rpg reward add`."))
			}
			for i, r := range s.Rewards {
				price := ui.Gold.Render(fmt.Sprintf("%d gold", r.Cost))
				if r.Cost > s.Gold {
					price = ui.Muted.Render(fmt.Sprintf("%d gold", r.Cost))
				}
				fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, r.Name, price, ui.Muted.Render(fmt.Sprintf("bought %dx", r.TimesBought)))
			}
			return nil
		},
	}
}

func newRewardBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <n|id>",
		Short: "Buy a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], rewardIDs(e.State()), "reward")
				if err != nil {
					return nil, err
				}
				return e.BuyReward(id)
			})
			return err
		},
	}
}

func newRewardRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n|id>",
		Short: "Remove a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], rewardIDs(e.State()), "reward")
				if err != nil {
					return nil, err
				}
				return nil, e.RemoveReward(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Reward removed."))
			return nil
		},
	}
}

func innList() string {
	parts := make([]string, len(engine.InnTierOrder))
	for i, t := range engine.InnTierOrder {
		r := t.Rate()
		heal := fmt.Sprintf("+%d HP", r.Heal)
		if r.FullHeal {
			heal = "full HP"
		}
		parts[i] = fmt.Sprintf("%s (%d gold, %s)", t, r.Cost, heal)
	}
	return strings.Join(parts, ", ")
}

func newRestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rest <tier>",
		Short: "Rest at the inn to recover HP",
		Long:  "Tiers: " + innList() + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := engine.ParseInnTier(args[0])
			if err != nil {
				return err
			}
			_, err = runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.RestAtInn(tier)
			})
			return err
		},
	}
}

func newSleepCmd() *cobra.Command {
	qualities := make([]string, len(engine.SleepQualityOrder))
	for i, q := range engine.SleepQualityOrder {
		qualities[i] = fmt.Sprintf("%s (%+d HP)", q, q.HPEffect())
	}

	return &cobra.Command{
		Use:   "sleep <quality>",
		Short: "Log last night's sleep",
		Long:  "Qualities: " + strings.Join(qualities, ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := engine.ParseSleepQuality(args[0])
			if err != nil {
				return err
			}
			_, err = runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.LogSleep(q)
			})
			return err
		},
	}
}
