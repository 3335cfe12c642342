package engine

import (
	"testing"
	"time"
)

func TestDailyCycleSameDayIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mustAddHabit(t, e, HabitInput{Name: "Stretch", Domain: DomainHealth})
	if _, err := e.CompleteHabit(id); err != nil {
		t.Fatalf("CompleteHabit: %v", err)
	}
	out := e.RunDailyCycle()
	if len(out.Events) != 0 {
		t.Fatalf("events=%v, want none on the same day", out.Events)
	}
	if !e.findHabit(id).Completed {
		t.Fatalf("same-day cycle reset the habit")
	}
}

func TestDailyCycleStreaks(t *testing.T) {
	e, clock := newTestEngine(t)
	s := e.State()
	yesterday := dayOf(clock.now())
	older := dayOf(clock.now().AddDate(0, 0, -3))
	s.Habits = []Habit{
		{ID: "kept", Completed: true, LastCompletedDate: yesterday, Streak: 2, BestStreak: 2},
		{ID: "missed", Completed: false, LastCompletedDate: older, Streak: 4, BestStreak: 6},
		{ID: "stale", Completed: true, LastCompletedDate: older, Streak: 3, BestStreak: 3},
	}
	clock.advance(24 * time.Hour)

	out := e.RunDailyCycle()
	if !out.Has(EventNewDay) || !out.Has(EventStreakBroken) {
		t.Fatalf("events=%v", out.Events)
	}
	want := map[string][2]int{"kept": {3, 3}, "missed": {0, 6}, "stale": {3, 3}}
	for _, h := range s.Habits {
		w := want[h.ID]
		if h.Streak != w[0] || h.BestStreak != w[1] {
			t.Fatalf("habit %s streak=%d best=%d, want %d/%d", h.ID, h.Streak, h.BestStreak, w[0], w[1])
		}
		if h.Completed {
			t.Fatalf("habit %s still completed after rollover", h.ID)
		}
	}
	if s.LastPlayedDate != dayOf(clock.now()) {
		t.Fatalf("lastPlayedDate=%s", s.LastPlayedDate)
	}

	if again := e.RunDailyCycle(); len(again.Events) != 0 {
		t.Fatalf("second run events=%v, want none", again.Events)
	}
}

func TestDailyCycleEntropyFromIncompleteQuests(t *testing.T) {
	e, clock := newTestEngine(t)
	s := e.State()
	s.Quests = []Quest{{ID: "a"}, {ID: "b"}, {ID: "c", Completed: true}, {ID: "d"}}
	s.PsychicEntropy = 10
	clock.advance(24 * time.Hour)

	e.RunDailyCycle()
	if s.PsychicEntropy != 16 {
		t.Fatalf("entropy=%d, want 16", s.PsychicEntropy)
	}
}

func TestWeeklyDebtPenalty(t *testing.T) {
	tests := []struct {
		name   string
		gold   int
		days   int
		wantHP int
	}{
		{"capped at 20", -25, 7, 80},
		{"small debt", -8, 9, 92},
		{"not a week yet", -25, 6, 100},
		{"no debt", 40, 7, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine(t)
			s := e.State()
			s.Gold = tt.gold
			s.LastWeeklyCheck = dayOf(clock.now().AddDate(0, 0, -tt.days+1))
			clock.advance(24 * time.Hour)

			e.RunDailyCycle()
			if s.HP != tt.wantHP {
				t.Fatalf("hp=%d, want %d", s.HP, tt.wantHP)
			}
			if tt.days >= WeeklyCheckDays && s.LastWeeklyCheck != dayOf(clock.now()) {
				t.Fatalf("weekly check date not advanced: %s", s.LastWeeklyCheck)
			}
		})
	}
}
