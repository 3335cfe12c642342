package engine

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyMedium

// Multiplier scales the base XP and gold of habits and quests.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 2.0
	case DifficultyEpic:
		return 3.0
	case DifficultyMedium:
		fallthrough
	default:
		return 1.0
	}
}

// ParseDifficulty parses user input to a Difficulty.
// If input is empty or unrecognized, returns DefaultDifficulty.
func ParseDifficulty(input string) Difficulty {
	d := Difficulty(strings.TrimSpace(strings.ToLower(input)))
	if d.IsValid() {
		return d
	}
	return DefaultDifficulty
}

// Phase is the transient psychological state that scales XP gains.
type Phase string

const (
	PhaseDissonance  Phase = "dissonance"
	PhaseUncertainty Phase = "uncertainty"
	PhaseDiscovery   Phase = "discovery"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseDissonance, PhaseUncertainty, PhaseDiscovery:
		return true
	default:
		return false
	}
}

func (p Phase) XPMultiplier() float64 {
	switch p {
	case PhaseUncertainty:
		return 1.5
	case PhaseDiscovery:
		return 2.0
	default:
		return 1.0
	}
}

// GameDifficulty is the global preset applied to dungeon payouts.
type GameDifficulty string

const (
	GameEasy   GameDifficulty = "easy"
	GameNormal GameDifficulty = "normal"
	GameHard   GameDifficulty = "hard"
)

func (g GameDifficulty) IsValid() bool {
	switch g {
	case GameEasy, GameNormal, GameHard:
		return true
	default:
		return false
	}
}

func (g GameDifficulty) XPMultiplier() float64 {
	switch g {
	case GameEasy:
		return 0.75
	case GameHard:
		return 1.5
	default:
		return 1.0
	}
}

func (g GameDifficulty) GoldMultiplier() float64 {
	switch g {
	case GameEasy:
		return 0.75
	case GameHard:
		return 1.5
	default:
		return 1.0
	}
}

func ParseGameDifficulty(input string) GameDifficulty {
	g := GameDifficulty(strings.TrimSpace(strings.ToLower(input)))
	if g.IsValid() {
		return g
	}
	return GameNormal
}
