package root

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

// printOutcome renders the notable events of one command.
func printOutcome(w io.Writer, out *engine.Outcome) {
	if out == nil {
		return
	}
	for _, ev := range out.Events {
		if line := eventLine(ev); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}

func eventLine(ev engine.Event) string {
	switch ev.Kind {
	case engine.EventXPGained:
		s := ui.XP.Render(fmt.Sprintf("%s +%d XP", ui.IconXP, ev.Amount))
		if ev.Gold != 0 {
			s += " " + ui.Gold.Render(fmt.Sprintf("%s +%d gold", ui.IconGold, ev.Gold))
		}
		if ev.Domain != "" {
			s += " " + ui.Muted.Render("("+ui.DomainLabel(ev.Domain)+")")
		}
		return s
	case engine.EventLevelUp:
		return fmt.Sprintf("%s %s %s", ui.IconSparkle, ui.BadgeLevelUp, ev.Message)
	case engine.EventTierUp:
		return fmt.Sprintf("%s %s %s", ui.IconSparkle, ui.BadgeTierUp, ev.Message)
	case engine.EventDomainLevelUp:
		return ui.Good.Render(fmt.Sprintf("%s %s", ev.Domain.Info().Icon, ev.Message))
	case engine.EventDamage, engine.EventWeeklyPenalty, engine.EventBadHabit:
		return ui.Bad.Render(fmt.Sprintf("%s %s", ui.IconHP, ev.Message))
	case engine.EventFainted, engine.EventStreakBroken:
		return ui.Bad.Render(ui.IconWarn + " " + ev.Message)
	case engine.EventHealed, engine.EventRested, engine.EventSleepLogged:
		return ui.Good.Render(fmt.Sprintf("%s %s", ui.IconHP, ev.Message))
	case engine.EventBossDamaged:
		return fmt.Sprintf("%s %s", ui.IconBoss, ev.Message)
	case engine.EventBossDefeated, engine.EventDungeonCleared:
		return ui.Gold.Render(ui.IconTrophy + " " + ev.Message)
	case engine.EventAchievementUnlocked:
		return ui.Gold.Render(fmt.Sprintf("%s Achievement unlocked: %s (+%d gold)", ui.IconTrophy, ev.Message, ev.Gold))
	case engine.EventEntropyRose:
		return ui.Warn.Render(ui.IconEntropy + " " + ev.Message)
	case engine.EventNewDay:
		return ui.Muted.Render("☀️ " + ev.Message)
	default:
		if ev.Message == "" {
			return ""
		}
		return ui.Muted.Render("• " + ev.Message)
	}
}

// resolveRef maps a 1-based list position or an id prefix to an id.
func resolveRef(arg string, ids []string, kind string) (string, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("no %s at position %d (have %d)", kind, n, len(ids))
		}
		return ids[n-1], nil
	}
	match := ""
	for _, id := range ids {
		if strings.HasPrefix(id, arg) {
			if match != "" {
				return "", fmt.Errorf("%s id prefix %q is ambiguous", kind, arg)
			}
			match = id
		}
	}
	if match == "" {
		return "", engine.NotFoundError{Kind: kind, ID: arg}
	}
	return match, nil
}

func habitIDs(s *engine.CharacterState) []string {
	ids := make([]string, len(s.Habits))
	for i, h := range s.Habits {
		ids[i] = h.ID
	}
	return ids
}

// openQuestIDs lists open quests in display order.
func openQuestIDs(s *engine.CharacterState) []string {
	var ids []string
	for _, q := range s.Quests {
		if !q.Completed {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

func badHabitIDs(s *engine.CharacterState) []string {
	ids := make([]string, len(s.BadHabits))
	for i, b := range s.BadHabits {
		ids[i] = b.ID
	}
	return ids
}

func rewardIDs(s *engine.CharacterState) []string {
	ids := make([]string, len(s.Rewards))
	for i, r := range s.Rewards {
		ids[i] = r.ID
	}
	return ids
}

func bossIDs(s *engine.CharacterState) []string {
	ids := make([]string, len(s.BossFights))
	for i, b := range s.BossFights {
		ids[i] = b.ID
	}
	return ids
}

func parseDomainFlag(v string) (engine.DomainID, error) {
	if v == "" {
		return "", fmt.Errorf("--domain is required (one of %s)", domainShortList())
	}
	return engine.ParseDomain(v)
}

func domainShortList() string {
	parts := make([]string, len(engine.DomainOrder))
	for i, id := range engine.DomainOrder {
		parts[i] = id.Info().Short
	}
	return strings.Join(parts, ", ")
}
