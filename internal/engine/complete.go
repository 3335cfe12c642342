package engine

import (
	"fmt"
	"math"
)

const (
	StreakBonusPerDay = 0.1
	MaxStreakBonus    = 1.0
)

type CompleteResult struct {
	ID          string
	XPAwarded   int
	GoldAwarded int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Outcome     *Outcome
}

// CalculateHabitReward scales a base reward by difficulty and streak bonus
// (10% per streak day, up to double).
func CalculateHabitReward(base int, d Difficulty, streak int) int {
	bonus := math.Min(float64(max(0, streak))*StreakBonusPerDay, MaxStreakBonus)
	return int(math.Round(float64(base) * d.Multiplier() * (1 + bonus)))
}

func CalculateQuestReward(base int, d Difficulty) int {
	return int(math.Round(float64(base) * d.Multiplier()))
}

func (e *Engine) findHabit(id string) *Habit {
	for i := range e.state.Habits {
		if e.state.Habits[i].ID == id {
			return &e.state.Habits[i]
		}
	}
	return nil
}

func (e *Engine) findQuest(id string) *Quest {
	for i := range e.state.Quests {
		if e.state.Quests[i].ID == id {
			return &e.state.Quests[i]
		}
	}
	return nil
}

// CompleteHabit marks a habit done for today and pays its reward.
func (e *Engine) CompleteHabit(id string) (*CompleteResult, error) {
	h := e.findHabit(id)
	if h == nil {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}
	if h.Completed {
		return nil, fmt.Errorf("habit %q: %w today", h.Name, ErrAlreadyCompleted)
	}

	e.begin()
	s := e.state
	levelBefore := s.Level
	h.Completed = true
	h.LastCompletedDate = e.today()
	s.TotalHabitsCompleted++

	xp := CalculateHabitReward(h.BaseXP, h.Difficulty, h.Streak)
	gold := CalculateHabitReward(h.BaseGold, h.Difficulty, h.Streak)
	e.emit(Event{Kind: EventHabitCompleted, Message: h.Name, Domain: h.Domain, Ref: h.ID})
	awarded := e.gainXP(xp, gold, h.Domain)
	e.logActivity(Activity{Category: ActivityHabit, Description: h.Name, XP: awarded, Gold: gold})
	out := e.finish()

	return &CompleteResult{
		ID:          h.ID,
		XPAwarded:   awarded,
		GoldAwarded: gold,
		LevelBefore: levelBefore,
		LevelAfter:  s.Level,
		LevelUp:     s.Level > levelBefore,
		Outcome:     out,
	}, nil
}

// CompleteQuest finishes a quest. Completion is terminal.
func (e *Engine) CompleteQuest(id string) (*CompleteResult, error) {
	q := e.findQuest(id)
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if q.Completed {
		return nil, fmt.Errorf("quest %q: %w", q.Name, ErrAlreadyCompleted)
	}

	e.begin()
	s := e.state
	levelBefore := s.Level
	now := e.now()
	q.Completed = true
	q.CompletedDate = &now
	s.TotalQuestsCompleted++

	xp := CalculateQuestReward(q.XP, q.Difficulty)
	gold := CalculateQuestReward(q.Gold, q.Difficulty)
	e.emit(Event{Kind: EventQuestCompleted, Message: q.Name, Domain: q.Domain, Ref: q.ID})
	awarded := e.gainXP(xp, gold, q.Domain)
	e.logActivity(Activity{Category: ActivityQuest, Description: q.Name, XP: awarded, Gold: gold})
	out := e.finish()

	return &CompleteResult{
		ID:          q.ID,
		XPAwarded:   awarded,
		GoldAwarded: gold,
		LevelBefore: levelBefore,
		LevelAfter:  s.Level,
		LevelUp:     s.Level > levelBefore,
		Outcome:     out,
	}, nil
}

// TriggerBadHabit records a relapse: gold penalty (gold may go negative)
// and HP damage.
func (e *Engine) TriggerBadHabit(id string) (*Outcome, error) {
	var b *BadHabit
	for i := range e.state.BadHabits {
		if e.state.BadHabits[i].ID == id {
			b = &e.state.BadHabits[i]
		}
	}
	if b == nil {
		return nil, NotFoundError{Kind: "bad habit", ID: id}
	}

	e.begin()
	b.TriggerCount++
	e.state.Gold -= b.GoldPenalty
	e.emit(Event{Kind: EventBadHabit, Message: b.Name, Amount: b.HPCost, Gold: -b.GoldPenalty, Ref: b.ID})
	e.takeDamage(b.HPCost)
	e.logActivity(Activity{Category: ActivityBadHabit, Description: b.Name, HP: -b.HPCost, Gold: -b.GoldPenalty})
	return e.finish(), nil
}
