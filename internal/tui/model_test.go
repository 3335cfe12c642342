package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"liferpg/internal/engine"
)

type memService struct {
	eng *engine.Engine
}

func (m *memService) View(ctx context.Context) (*engine.CharacterState, *engine.Outcome, error) {
	return m.eng.State(), &engine.Outcome{}, nil
}

func (m *memService) Do(ctx context.Context, fn func(e *engine.Engine) (*engine.Outcome, error)) (*engine.Outcome, error) {
	return fn(m.eng)
}

func newMemService(t *testing.T) *memService {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	eng := engine.New(nil, engine.WithClock(func() time.Time { return now }))
	if _, err := eng.AddHabit(engine.HabitInput{Name: "Stretch", Domain: engine.DomainHealth}); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if _, err := eng.AddQuest(engine.QuestInput{Name: "Read a book", Domain: engine.DomainEducation}); err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	return &memService{eng: eng}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardCompletesSelectedRow(t *testing.T) {
	svc := newMemService(t)
	var m tea.Model = newBoardModel(context.Background(), svc)
	m, _ = m.Update(m.(boardModel).loadCmd()())

	if rows := m.(boardModel).rows(); len(rows) != 2 || rows[0].kind != rowHabit || rows[1].kind != rowQuest {
		t.Fatalf("rows=%+v", rows)
	}

	m, _ = m.Update(key("j"))
	m, cmd := m.Update(key("c"))
	if cmd == nil {
		t.Fatalf("expected a complete command")
	}
	m, cmd = m.Update(cmd())
	if !strings.Contains(m.(boardModel).lastLog, "Read a book") {
		t.Errorf("lastLog=%q", m.(boardModel).lastLog)
	}
	m, _ = m.Update(cmd())

	if !svc.eng.State().Quests[0].Completed {
		t.Fatalf("quest not completed")
	}
	if rows := m.(boardModel).rows(); len(rows) != 1 {
		t.Fatalf("completed quest still listed: %+v", rows)
	}
	if sel := m.(boardModel).selected; sel != 0 {
		t.Errorf("selected=%d, want 0 after the list shrank", sel)
	}
}

func TestBoardSkipsDoneHabit(t *testing.T) {
	svc := newMemService(t)
	id := svc.eng.State().Habits[0].ID
	if _, err := svc.eng.CompleteHabit(id); err != nil {
		t.Fatalf("CompleteHabit: %v", err)
	}
	var m tea.Model = newBoardModel(context.Background(), svc)
	m, _ = m.Update(m.(boardModel).loadCmd()())
	m, cmd := m.Update(key("c"))
	if cmd != nil {
		t.Fatalf("expected no command for a done habit")
	}
	if m.(boardModel).lastLog != "Already done." {
		t.Errorf("lastLog=%q", m.(boardModel).lastLog)
	}
	if !strings.Contains(m.View(), "Stretch") {
		t.Errorf("view does not list the habit")
	}
}
