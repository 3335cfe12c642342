package engine

import "fmt"

const (
	EntropyPerIncompleteQuest = 2
	WeeklyCheckDays           = 7
	WeeklyDebtPenaltyCap      = 20
)

// RunDailyCycle rolls the state over to the current calendar day. Running it
// again on a day already processed does nothing.
func (e *Engine) RunDailyCycle() *Outcome {
	s := e.state
	today := e.today()
	if s.LastPlayedDate == today {
		return &Outcome{}
	}
	e.begin()
	yesterday := dayOf(e.now().AddDate(0, 0, -1))

	broken := 0
	for i := range s.Habits {
		h := &s.Habits[i]
		switch {
		case h.Completed && h.LastCompletedDate == yesterday:
			h.Streak++
			h.BestStreak = max(h.BestStreak, h.Streak)
		case !h.Completed:
			if h.Streak > 0 {
				broken++
			}
			h.Streak = 0
		}
		h.Completed = false
	}
	if broken > 0 {
		e.emit(Event{Kind: EventStreakBroken, Amount: broken,
			Message: fmt.Sprintf("%d habit streak(s) broken", broken)})
	}

	incomplete := 0
	for _, q := range s.Quests {
		if !q.Completed {
			incomplete++
		}
	}
	if incomplete > 0 {
		before := s.PsychicEntropy
		s.PsychicEntropy = clamp(s.PsychicEntropy+EntropyPerIncompleteQuest*incomplete, 0, MaxEntropy)
		if rose := s.PsychicEntropy - before; rose > 0 {
			e.emit(Event{Kind: EventEntropyRose, Amount: rose,
				Message: fmt.Sprintf("Entropy rose by %d from %d unfinished quest(s)", rose, incomplete)})
		}
	}

	e.weeklyCheck(today)
	s.LastPlayedDate = today
	e.emit(Event{Kind: EventNewDay, Message: "A new day begins"})
	e.logActivity(Activity{Category: ActivityDaily, Description: "New day " + today})
	return e.finish()
}

func (e *Engine) weeklyCheck(today string) {
	s := e.state
	days, ok := daysBetween(s.LastWeeklyCheck, today)
	if !ok {
		s.LastWeeklyCheck = today
		return
	}
	if days < WeeklyCheckDays {
		return
	}
	s.LastWeeklyCheck = today
	if s.Gold >= 0 {
		return
	}
	penalty := min(-s.Gold, WeeklyDebtPenaltyCap)
	e.emit(Event{Kind: EventWeeklyPenalty, Amount: penalty,
		Message: fmt.Sprintf("Debt of %d gold cost %d HP", -s.Gold, penalty)})
	e.takeDamage(penalty)
}
