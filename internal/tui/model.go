package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

type rowKind int

const (
	rowHabit rowKind = iota
	rowQuest
)

type row struct {
	kind   rowKind
	id     string
	name   string
	domain engine.DomainID
	done   bool
	detail string
}

type boardModel struct {
	ctx context.Context
	svc Service

	width  int
	height int

	state    *engine.CharacterState
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state *engine.CharacterState
	err   error
}

type completedMsg struct {
	name string
	res  *engine.CompleteResult
	err  error
}

func newBoardModel(ctx context.Context, svc Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, _, err := m.svc.View(m.ctx)
		return loadedMsg{state: st, err: err}
	}
}

func (m boardModel) completeCmd(r row) tea.Cmd {
	return func() tea.Msg {
		var res *engine.CompleteResult
		_, err := m.svc.Do(m.ctx, func(e *engine.Engine) (*engine.Outcome, error) {
			var err error
			if r.kind == rowHabit {
				res, err = e.CompleteHabit(r.id)
			} else {
				res, err = e.CompleteQuest(r.id)
			}
			if err != nil {
				return nil, err
			}
			return res.Outcome, nil
		})
		return completedMsg{name: r.name, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		if n := len(m.rows()); m.selected >= n {
			m.selected = max(0, n-1)
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		line := fmt.Sprintf("%s %s: +%d XP, +%d gold", ui.IconDone, msg.name, msg.res.XPAwarded, msg.res.GoldAwarded)
		if msg.res.LevelUp {
			line += fmt.Sprintf(" | %s %d → %d", ui.BadgeLevelUp, msg.res.LevelBefore, msg.res.LevelAfter)
		}
		m.lastLog = line
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			r := rows[m.selected]
			if r.done {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", r.name)
			return m, m.completeCmd(r)
		}
	}
	return m, nil
}

// rows lists habits first, then open quests.
func (m boardModel) rows() []row {
	if m.state == nil {
		return nil
	}
	var out []row
	for _, h := range m.state.Habits {
		out = append(out, row{
			kind:   rowHabit,
			id:     h.ID,
			name:   h.Name,
			domain: h.Domain,
			done:   h.Completed,
			detail: fmt.Sprintf("streak %d", h.Streak),
		})
	}
	for _, q := range m.state.Quests {
		if q.Completed {
			continue
		}
		out = append(out, row{
			kind:   rowQuest,
			id:     q.ID,
			name:   q.Name,
			domain: q.Domain,
			detail: fmt.Sprintf("%d xp", q.XP),
		})
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	leftW := 34
	if m.width > 0 {
		leftW = max(22, min(leftW, m.width/2))
	}
	sidebar := ui.Panel.Width(leftW).Render(m.renderSidebar())
	main := ui.Panel.Render(m.renderMain())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m boardModel) renderHeader() string {
	s := m.state
	if s == nil {
		return "Life RPG: loading…"
	}
	name := engine.DefaultHeroName
	if s.Profile != nil && s.Profile.Name != "" {
		name = s.Profile.Name
	}
	tier := engine.TierForLevel(s.Level)
	next := engine.XPToNextLevel(s.Level)
	return fmt.Sprintf("%s | %s | Level %d (HUMAN %s) | %s %s | %s %s | %s %d\n%s %s %d/%d | phase %s",
		ui.Title.Render(name), engine.Title(s.Level), s.Level, tier,
		ui.IconHP, ui.HPText(s.HP, s.MaxHP),
		ui.IconGold, ui.GoldText(s.Gold),
		ui.IconEntropy, s.PsychicEntropy,
		ui.IconXP, ui.Bar(s.XP, next, 30), s.XP, next,
		ui.PhaseText(s.CurrentPhase),
	)
}

func (m boardModel) renderSidebar() string {
	if m.state == nil {
		return "Domains\n\nLoading…"
	}
	lines := []string{ui.PanelTitle.Render("Domains")}
	for _, d := range m.state.Domains {
		info := d.ID.Info()
		lines = append(lines, fmt.Sprintf("%s %-9s %s %3d", info.Icon, info.Short, ui.Bar(d.Score, engine.MaxDomainScore, 12), d.Score))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	if d := m.state.ActiveDungeon; d != nil {
		elapsed := int(time.Since(d.StartTime).Minutes())
		out = append(out, fmt.Sprintf("%s %s dungeon: %d/%d min, %d slain", ui.IconDungeon, d.Tier, elapsed, d.TargetMinutes, d.MonstersSlain), "")
	}

	rows := m.rows()
	out = append(out, ui.PanelTitle.Render("Today"))
	if len(rows) == 0 {
		out = append(out, "(no habits or quests yet)")
		return strings.Join(out, "\n")
	}
	for i, r := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		icon := ui.IconHabit
		if r.kind == rowQuest {
			icon = ui.IconQuest
		}
		mark := "[ ]"
		if r.done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s %s %s (%s)", cursor, mark, icon, r.name, r.domain.Info().Icon, r.detail)
		switch {
		case i == m.selected:
			line = ui.SelectedRow.Render(line)
		case r.done:
			line = ui.Muted.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}
