package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/ui"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Analyze journal notes changed since the last sync",
		Long: "Reads markdown notes from the configured journal directory, scores them per domain\n" +
			"(with the AI when enabled, offline keywords otherwise) and applies the result as one batch.\n" +
			"Checked \"- [x] ... #quest\" items pay out a quest reward once.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.SyncJournals(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printOutcome(w, res.Outcome)

			b := res.Batch
			fmt.Fprintln(w, ui.Heading(ui.IconJournal, "Journal sync"))
			fmt.Fprintln(w, ui.LabelValue("Notes analyzed", fmt.Sprintf("%d %s", b.Analyzed, ui.Muted.Render(fmt.Sprintf("(%d with AI)", b.AIUsed)))))
			for _, name := range b.Skipped {
				fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" skipped "+name))
			}
			for _, r := range b.Delta.Records {
				fmt.Fprintf(w, "- %s %s\n", r.FileName, ui.Muted.Render(fmt.Sprintf("%d words, sentiment %+d, %s", r.WordCount, r.SentimentScore, r.Source)))
			}
			return nil
		},
	}
}
