package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show character stats, domains and tier standing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s, out, err := svc.View(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printOutcome(w, out)

			name := engine.DefaultHeroName
			if s.Profile != nil && s.Profile.Name != "" {
				name = s.Profile.Name
			}
			fmt.Fprintln(w, ui.Heading(ui.IconSparkle, fmt.Sprintf("%s the %s", name, engine.Title(s.Level))))
			if !s.HasCharacter() {
				fmt.Fprintln(w, ui.Muted.Render("No assessment yet. Run `rpg assess` to create your character."))
			}
			next := engine.XPToNextLevel(s.Level)
			fmt.Fprintln(w, ui.LabelValue(ui.IconLevel+" Level", s.Level))
			fmt.Fprintln(w, ui.LabelValue(ui.IconXP+" XP", fmt.Sprintf("%s %d/%d", ui.Bar(s.XP, next, 20), s.XP, next)))
			fmt.Fprintln(w, ui.LabelValue(ui.IconHP+" HP", fmt.Sprintf("%s %s", ui.HPStyle(s.HP, s.MaxHP).Render(ui.Bar(s.HP, s.MaxHP, 20)), ui.HPText(s.HP, s.MaxHP))))
			fmt.Fprintln(w, ui.LabelValue(ui.IconGold+" Gold", ui.GoldText(s.Gold)))
			fmt.Fprintln(w, ui.LabelValue(ui.IconEntropy+" Entropy", fmt.Sprintf("%d/100", s.PsychicEntropy)))
			fmt.Fprintln(w, ui.LabelValue("Phase", ui.PhaseText(s.CurrentPhase)))
			fmt.Fprintln(w, "")

			report := engine.Classify(s.Level, s.Domains)
			fmt.Fprintln(w, ui.H2.Render("🧭 Tier "+string(report.Tier)))
			if report.NextTier != "" {
				fmt.Fprintf(w, "- %s %d %s\n", ui.Key.Render("Progress:"), report.TierProgress,
					ui.Muted.Render(fmt.Sprintf("(%d levels to tier %s)", report.LevelsToNextTier, report.NextTier)))
			} else {
				fmt.Fprintf(w, "- %s %d %s\n", ui.Key.Render("Progress:"), report.TierProgress, ui.Muted.Render("(highest tier)"))
			}
			for _, q := range engine.QuadrantOrder {
				v := report.Quadrants[q]
				fmt.Fprintf(w, "- %-9s %s %3.0f\n", ui.Key.Render(capitalize(string(q))+":"), ui.Bar(int(v), 100, 15), v)
			}
			fmt.Fprintf(w, "- %s %d  %s %d\n", ui.Key.Render("Overall:"), report.Overall, ui.Key.Render("Balance:"), report.Balance)
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, ui.H2.Render("📊 Domains"))
			for _, d := range s.Domains {
				need := engine.DomainXPToNextLevel(d.Level)
				fmt.Fprintf(w, "- %-28s %s %3d %s\n", ui.DomainLabel(d.ID), ui.Bar(d.Score, 100, 15), d.Score,
					ui.Muted.Render(fmt.Sprintf("lvl %d, %d/%d xp", d.Level, d.XP, need)))
			}
			fmt.Fprintln(w, "")

			open := 0
			for _, q := range s.Quests {
				if !q.Completed {
					open++
				}
			}
			done := 0
			for _, h := range s.Habits {
				if h.Completed {
					done++
				}
			}
			fmt.Fprintln(w, ui.H2.Render("📋 Today"))
			fmt.Fprintf(w, "- %s %d/%d done\n", ui.Key.Render("Habits:"), done, len(s.Habits))
			fmt.Fprintf(w, "- %s %d open\n", ui.Key.Render("Quests:"), open)
			if d := s.ActiveDungeon; d != nil {
				elapsed := int(time.Since(d.StartTime).Minutes())
				fmt.Fprintf(w, "- %s %s, %d/%d min, %d slain\n", ui.Key.Render("Dungeon:"), d.Tier, elapsed, d.TargetMinutes, d.MonstersSlain)
			}
			earned := engine.NewAchievementChecker(s)
			fmt.Fprintf(w, "- %s %d/%d\n", ui.Key.Render("Achievements:"), earned.CountEarned(), earned.CountTotal())
			return nil
		},
	}

	return cmd
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
