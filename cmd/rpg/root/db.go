package root

import (
	"context"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/game"
	"liferpg/internal/storage"
)

func openService(ctx context.Context) (*game.Service, func(), error) {
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return game.NewService(db, cfg, logger), cleanup, nil
}

// runOp applies one engine operation and prints what happened.
func runOp(cmd *cobra.Command, fn func(e *engine.Engine) (*engine.Outcome, error)) (*engine.Outcome, error) {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := svc.Do(ctx, fn)
	if err != nil {
		return nil, err
	}
	printOutcome(cmd.OutOrStdout(), out)
	return out, nil
}

// viewState loads the current state for read-only commands.
func viewState(cmd *cobra.Command) (*engine.CharacterState, error) {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	s, out, err := svc.View(ctx)
	if err != nil {
		return nil, err
	}
	printOutcome(cmd.OutOrStdout(), out)
	return s, nil
}
