package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			c := engine.NewAchievementChecker(s)
			fmt.Fprintln(w, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", c.CountEarned(), c.CountTotal())))
			for _, a := range c.GetAchievements() {
				if a.Earned {
					fmt.Fprintf(w, "%s %s %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
					continue
				}
				fmt.Fprintf(w, "🔒 %s %s %s\n", ui.Muted.Render(a.Name), ui.Muted.Render(a.Description),
					ui.Gold.Render(fmt.Sprintf("+%d gold", a.Reward)))
			}
			return nil
		},
	}
}
