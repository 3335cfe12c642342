package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newBossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boss",
		Aliases: []string{"bosses"},
		Short:   "Fight long-term goals as bosses",
	}
	cmd.AddCommand(newBossAddCmd(), newBossListCmd(), newBossAttackCmd(), newBossAbandonCmd())
	return cmd
}

func newBossAddCmd() *cobra.Command {
	var domain, desc string
	var hp int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Summon a boss linked to a domain",
		Long:  "Domain level-ups and completed habits or quests in the boss's domain deal damage to it.",
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
			if _, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.AddBoss(engine.BossInput{Name: args[0], Description: desc, MaxHP: hp, Domain: d})
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s %s appears with %d HP", ui.IconBoss, args[0], hp)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "D", "", "Life domain the boss is linked to")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().IntVar(&hp, "hp", 100, "Boss HP")
	return cmd
}

func newBossListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bosses",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconBoss, "Bosses"))
			if len(s.BossFights) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("No bosses. Summon one with `rpg boss add`."))
			}
			for i, b := range s.BossFights {
				status := ui.Bad.Render(ui.Bar(b.CurrentHP, b.MaxHP, 15)) + fmt.Sprintf(" %d/%d", b.CurrentHP, b.MaxHP)
				if b.Defeated {
					status = ui.Good.Render(ui.IconTrophy + " defeated")
				}
				fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, b.Name, status, ui.Muted.Render(ui.DomainLabel(b.Domain)))
				if b.Description != "" {
					fmt.Fprintln(w, "    "+ui.Muted.Render(b.Description))
				}
			}
			return nil
		},
	}
}

func newBossAttackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attack <n|id>",
		Short: fmt.Sprintf("Spend %d gold to deal %d damage", engine.ManualAttackCost, engine.ManualAttackDamage),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], bossIDs(e.State()), "boss")
				if err != nil {
					return nil, err
				}
				return e.AttackBoss(id)
			})
			return err
		},
	}
}

func newBossAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <n|id>",
		Short: "Give up on a boss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], bossIDs(e.State()), "boss")
				if err != nil {
					return nil, err
				}
				return nil, e.AbandonBoss(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Boss abandoned."))
			return nil
		},
	}
}
