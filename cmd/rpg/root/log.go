package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

var categoryIcons = map[engine.ActivityCategory]string{
	engine.ActivityHabit:       ui.IconHabit,
	engine.ActivityQuest:       ui.IconQuest,
	engine.ActivityBadHabit:    ui.IconBadHabit,
	engine.ActivityLevelUp:     ui.IconLevel,
	engine.ActivityTierUp:      ui.IconSparkle,
	engine.ActivityBoss:        ui.IconBoss,
	engine.ActivityDungeon:     ui.IconDungeon,
	engine.ActivityJournal:     ui.IconJournal,
	engine.ActivityReward:      ui.IconReward,
	engine.ActivityInn:         ui.IconInn,
	engine.ActivitySleep:       ui.IconSleep,
	engine.ActivityAchievement: ui.IconTrophy,
	engine.ActivityAssessment:  ui.IconScroll,
	engine.ActivityDaily:       "☀️",
	engine.ActivityDamage:      ui.IconHP,
}

func newLogCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, "Activity"))
			entries := s.RecentActivity(n)
			if len(entries) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("Nothing yet."))
			}
			for _, a := range entries {
				icon := categoryIcons[a.Category]
				if icon == "" {
					icon = "•"
				}
				fmt.Fprintf(w, "%s %s %s%s\n", ui.Muted.Render(a.Timestamp.Local().Format("Jan 02 15:04")), icon, a.Description, deltas(a))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", 20, "How many entries")
	return cmd
}

func deltas(a engine.Activity) string {
	var parts []string
	if a.XP != 0 {
		parts = append(parts, ui.XP.Render(fmt.Sprintf("%+d XP", a.XP)))
	}
	if a.Gold != 0 {
		parts = append(parts, ui.Gold.Render(fmt.Sprintf("%+d gold", a.Gold)))
	}
	switch {
	case a.HP > 0:
		parts = append(parts, ui.Good.Render(fmt.Sprintf("%+d HP", a.HP)))
	case a.HP < 0:
		parts = append(parts, ui.Bad.Render(fmt.Sprintf("%+d HP", a.HP)))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
