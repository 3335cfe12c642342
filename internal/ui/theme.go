package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"liferpg/internal/engine"
)

// Life RPG theme shared by the CLI and the board.

const (
	IconHP       = "❤️"
	IconXP       = "⭐"
	IconGold     = "🪙"
	IconLevel    = "🎖️"
	IconHabit    = "🔁"
	IconQuest    = "🗺️"
	IconBadHabit = "💀"
	IconBoss     = "🐉"
	IconDungeon  = "🏰"
	IconReward   = "🎁"
	IconInn      = "🛏️"
	IconSleep    = "😴"
	IconJournal  = "📓"
	IconCoach    = "🔮"
	IconTrophy   = "🏆"
	IconEntropy  = "🌀"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconScroll   = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cXP      = lipgloss.Color("39")  // cyan
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	XP    = lipgloss.NewStyle().Bold(true).Foreground(cXP)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeTierUp  = lipgloss.NewStyle().Bold(true).Foreground(cAccent).Render("TIER UP")
)

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Bar renders a fixed-width progress bar for cur out of total.
func Bar(cur, total, width int) string {
	if width <= 0 {
		width = 20
	}
	if total <= 0 {
		total = 1
	}
	cur = max(0, min(total, cur))
	filled := cur * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// HPStyle colors health by how much is left.
func HPStyle(hp, maxHP int) lipgloss.Style {
	switch {
	case maxHP <= 0 || hp*4 <= maxHP:
		return Bad
	case hp*2 <= maxHP:
		return Warn
	default:
		return Good
	}
}

func HPText(hp, maxHP int) string {
	return HPStyle(hp, maxHP).Render(fmt.Sprintf("%d/%d", hp, maxHP))
}

func GoldText(gold int) string {
	if gold < 0 {
		return Bad.Render(Number(gold) + " gold")
	}
	return Gold.Render(Number(gold) + " gold")
}

func DifficultyText(d engine.Difficulty) string {
	switch d {
	case engine.DifficultyEasy:
		return Good.Render(string(d))
	case engine.DifficultyHard:
		return Warn.Render(string(d))
	case engine.DifficultyEpic:
		return Bad.Render(string(d))
	default:
		return H2.Render(string(d))
	}
}

func PhaseText(p engine.Phase) string {
	switch p {
	case engine.PhaseDiscovery:
		return Good.Render(string(p))
	case engine.PhaseUncertainty:
		return Warn.Render(string(p))
	default:
		return Muted.Render(string(p))
	}
}

// DomainLabel is "icon Name".
func DomainLabel(id engine.DomainID) string {
	info := id.Info()
	return info.Icon + " " + info.Name
}
