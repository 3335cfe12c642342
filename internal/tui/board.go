package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"liferpg/internal/engine"
)

// Service is what the board needs from the game service.
type Service interface {
	View(ctx context.Context) (*engine.CharacterState, *engine.Outcome, error)
	Do(ctx context.Context, fn func(e *engine.Engine) (*engine.Outcome, error)) (*engine.Outcome, error)
}

func RunBoard(ctx context.Context, svc Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
