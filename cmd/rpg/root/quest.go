package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liferpg/internal/coach"
	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quest",
		Aliases: []string{"quests"},
		Short:   "Manage one-off quests",
	}
	cmd.AddCommand(newQuestAddCmd(), newQuestListCmd(), newQuestDoneCmd(), newQuestRmCmd(), newQuestGenerateCmd())
	return cmd
}

func newQuestAddCmd() *cobra.Command {
	var domain, diff, desc, deadline string
	var xp, gold int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a quest",
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
			var due *time.Time
			if deadline != "" {
				t, err := time.ParseInLocation(engine.DateLayout, deadline, time.Local)
				if err != nil {
					return fmt.Errorf("deadline must be YYYY-MM-DD: %w", err)
				}
				due = &t
			}
			out, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				return e.AddQuest(engine.QuestInput{
					Name:        args[0],
					Description: desc,
					Domain:      d,
					Difficulty:  engine.ParseDifficulty(diff),
					XP:          xp,
					Gold:        gold,
					Deadline:    due,
				})
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Added quest %q", ui.IconPlus, args[0]))+" "+ui.Muted.Render(shortID(out.Ref)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "D", "", "Life domain (e.g. health, education)")
	cmd.Flags().StringVarP(&diff, "diff", "d", string(engine.DefaultDifficulty), "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().IntVar(&xp, "xp", 0, "Base XP (default 50)")
	cmd.Flags().IntVar(&gold, "gold", 0, "Base gold (default 25)")

	return cmd
}

func newQuestListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viewState(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconQuest, "Quests"))
			n := 0
			for _, q := range s.Quests {
				if q.Completed {
					continue
				}
				n++
				fmt.Fprintf(w, "%2d. %s %s %s%s%s\n", n, q.Name, ui.DifficultyText(q.Difficulty),
					ui.Muted.Render(ui.DomainLabel(q.Domain)), questTags(q), " "+ui.Muted.Render(shortID(q.ID)))
			}
			if n == 0 {
				fmt.Fprintln(w, ui.Muted.Render("No open quests. Add one with `rpg quest add` or `rpg quest generate`."))
			}
			if !all {
				return nil
			}
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, ui.H2.Render(ui.IconDone+" Completed"))
			for _, q := range s.Quests {
				if q.Completed {
					fmt.Fprintf(w, "- %s %s\n", q.Name, ui.Muted.Render(ui.DomainLabel(q.Domain)))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed quests")
	return cmd
}

func questTags(q engine.Quest) string {
	s := ""
	if q.Source != "" && q.Source != engine.QuestManual {
		s += " " + ui.Muted.Render("["+string(q.Source)+"]")
	}
	if q.Deadline != nil {
		label := "due " + q.Deadline.Format(engine.DateLayout)
		if time.Now().After(*q.Deadline) {
			s += " " + ui.Bad.Render(label)
		} else {
			s += " " + ui.Warn.Render(label)
		}
	}
	return s
}

func newQuestDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <n|id>",
		Aliases: []string{"do"},
		Short:   "Complete a quest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], openQuestIDs(e.State()), "quest")
				if err != nil {
					return nil, err
				}
				res, err := e.CompleteQuest(id)
				if err != nil {
					return nil, err
				}
				return res.Outcome, nil
			})
			return err
		},
	}
}

func newQuestRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n|id>",
		Short: "Remove an open quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOp(cmd, func(e *engine.Engine) (*engine.Outcome, error) {
				id, err := resolveRef(args[0], openQuestIDs(e.State()), "quest")
				if err != nil {
					return nil, err
				}
				return nil, e.RemoveQuest(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Quest removed."))
			return nil
		},
	}
}

func newQuestGenerateCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Suggest quests for your weakest domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			gen, out, err := svc.GenerateQuests(ctx, count)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printOutcome(w, out)
			if gen.Fallback != nil {
				fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" AI unavailable, using offline quests: ")+ui.Muted.Render(gen.Fallback.Error()))
			}
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, fmt.Sprintf("New quests (%s)", gen.Source)))
			for _, q := range gen.Quests {
				fmt.Fprintf(w, "- %s %s %s\n", q.Name, ui.DifficultyText(q.Difficulty), ui.Muted.Render(ui.DomainLabel(q.Domain)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", coach.DefaultQuestCount, "How many quests to suggest")
	return cmd
}
