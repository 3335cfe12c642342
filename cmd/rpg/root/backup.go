package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"liferpg/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over (the current character is backed up first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset replaces your character; pass --yes to confirm")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.Reset(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Warn.Render("Character reset."))
			if id != 0 {
				fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("Previous character saved as backup #%d (rpg restore %d).", id, id)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Aliases: []string{"backups"},
		Short:   "List or save character backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBackups(cmd)
		},
	}

	var note string
	save := &cobra.Command{
		Use:   "save",
		Short: "Snapshot the current character",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.Backup(ctx, note)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Saved backup #%d", ui.IconDone, id)))
			return nil
		},
	}
	save.Flags().StringVar(&note, "note", "", "Note to keep with the backup")

	list := &cobra.Command{
		Use:   "list",
		Short: "List backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBackups(cmd)
		},
	}

	cmd.AddCommand(list, save)
	return cmd
}

func listBackups(cmd *cobra.Command) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := svc.ListBackups(ctx)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, ui.Heading("💾", "Backups"))
	if len(list) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No backups yet."))
	}
	for _, b := range list {
		note := ""
		if b.Note != nil {
			note = " " + ui.Muted.Render(*b.Note)
		}
		fmt.Fprintf(w, "#%-4d %s %-8s level %d%s\n", b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04"), b.Reason, b.Level, note)
	}
	return nil
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Restore a backup (the current character is backed up first)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("backup id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("backup id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Restore(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Restored backup #%d (level %d)", ui.IconDone, id, st.Level)))
			return nil
		},
	}
}
