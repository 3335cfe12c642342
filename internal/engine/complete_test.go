package engine

import (
	"errors"
	"testing"
)

func TestCalculateHabitReward(t *testing.T) {
	tests := []struct {
		base   int
		diff   Difficulty
		streak int
		want   int
	}{
		{10, DifficultyMedium, 0, 10},
		{10, DifficultyMedium, 5, 15},
		{10, DifficultyHard, 20, 40},
		{10, DifficultyEpic, 10, 60},
		{10, DifficultyEasy, 1, 6},
		{0, DifficultyEpic, 3, 0},
	}
	for _, tt := range tests {
		if got := CalculateHabitReward(tt.base, tt.diff, tt.streak); got != tt.want {
			t.Fatalf("CalculateHabitReward(%d, %s, %d)=%d, want %d", tt.base, tt.diff, tt.streak, got, tt.want)
		}
	}
	if got := CalculateQuestReward(50, DifficultyHard); got != 100 {
		t.Fatalf("CalculateQuestReward=%d, want 100", got)
	}
}

func TestParseDifficultyDefaults(t *testing.T) {
	if ParseDifficulty(" HARD ") != DifficultyHard {
		t.Fatalf("expected hard")
	}
	if ParseDifficulty("legendary") != DefaultDifficulty {
		t.Fatalf("expected default for unknown input")
	}
}

func TestCompleteHabitCreditsDomainAndBoss(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mustAddHabit(t, e, HabitInput{Name: "Run", Domain: DomainHealth, BaseXP: 10, BaseGold: 4})
	boss := mustAddBoss(t, e, BossInput{Name: "Sloth", MaxHP: 100, Domain: DomainHealth})
	e.State().Domain(DomainHealth).XP = 40

	res, err := e.CompleteHabit(id)
	if err != nil {
		t.Fatalf("CompleteHabit: %v", err)
	}
	if res.XPAwarded != 10 || res.GoldAwarded != 4 {
		t.Fatalf("awarded %d xp %d gold, want 10/4", res.XPAwarded, res.GoldAwarded)
	}
	if got := e.findBoss(boss).CurrentHP; got != 90 {
		t.Fatalf("boss hp=%d, want 90", got)
	}
	if d := e.State().Domain(DomainHealth); d.Level != 2 {
		t.Fatalf("health level=%d, want 2", d.Level)
	}
	h := e.findHabit(id)
	if !h.Completed || h.LastCompletedDate != dayOf(testDay) {
		t.Fatalf("habit=%+v", *h)
	}
	if e.State().TotalHabitsCompleted != 1 {
		t.Fatalf("total habits=%d", e.State().TotalHabitsCompleted)
	}

	if _, err := e.CompleteHabit(id); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second completion err=%v, want ErrAlreadyCompleted", err)
	}
	if _, err := e.CompleteHabit("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestCompleteQuestIsTerminal(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := e.AddQuest(QuestInput{Name: "Learn Go", Domain: DomainEducation, Difficulty: DifficultyEasy, XP: 30, Gold: 10})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	res, err := e.CompleteQuest(out.Ref)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if res.XPAwarded != 15 || res.GoldAwarded != 5 {
		t.Fatalf("awarded %d/%d, want 15/5", res.XPAwarded, res.GoldAwarded)
	}
	q := e.findQuest(out.Ref)
	if !q.Completed || q.CompletedDate == nil {
		t.Fatalf("quest=%+v", *q)
	}
	if _, err := e.CompleteQuest(out.Ref); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("err=%v, want ErrAlreadyCompleted", err)
	}
	if e.State().TotalQuestsCompleted != 1 {
		t.Fatalf("total quests=%d", e.State().TotalQuestsCompleted)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.AddHabit(HabitInput{Name: "  ", Domain: DomainHealth}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err=%v, want ErrNameRequired", err)
	}
	if _, err := e.AddHabit(HabitInput{Name: "x", Domain: "money"}); !errors.Is(err, ErrUnknownDomain) {
		t.Fatalf("err=%v, want ErrUnknownDomain", err)
	}
	if _, err := e.AddQuest(QuestInput{Name: "x", Domain: DomainHealth, XP: -1}); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err=%v, want ErrNegativeAmount", err)
	}
	if len(e.State().Habits) != 0 || len(e.State().Quests) != 0 {
		t.Fatalf("rejected input was stored")
	}

	out, err := e.AddHabit(HabitInput{Name: "Read", Domain: DomainEducation, Difficulty: "bogus"})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	h := e.findHabit(out.Ref)
	if h.Difficulty != DefaultDifficulty || h.BaseXP != DefaultHabitXP || h.BaseGold != DefaultHabitGold {
		t.Fatalf("defaults not applied: %+v", *h)
	}
}

func TestGeneratedQuestsCountOnlyAI(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.AddGeneratedQuests([]QuestInput{
		{Name: "a", Domain: DomainHealth, Source: QuestAI},
		{Name: "b", Domain: DomainHealth, Source: QuestAI},
		{Name: "c", Domain: DomainHealth, Source: QuestOffline},
	})
	if err != nil {
		t.Fatalf("AddGeneratedQuests: %v", err)
	}
	s := e.State()
	if len(s.Quests) != 3 || s.Stats.AIQuestsGenerated != 2 {
		t.Fatalf("quests=%d ai=%d", len(s.Quests), s.Stats.AIQuestsGenerated)
	}
	if _, err := e.AddGeneratedQuests([]QuestInput{{Name: "ok", Domain: DomainHealth}, {Name: "", Domain: DomainHealth}}); err == nil {
		t.Fatalf("expected error for nameless quest")
	}
	if len(s.Quests) != 3 {
		t.Fatalf("partial batch stored: %d quests", len(s.Quests))
	}
}

func TestTriggerBadHabit(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := e.AddBadHabit("Junk food", 15, 8)
	if err != nil {
		t.Fatalf("AddBadHabit: %v", err)
	}
	s := e.State()
	s.Gold = 5

	if _, err := e.TriggerBadHabit(out.Ref); err != nil {
		t.Fatalf("TriggerBadHabit: %v", err)
	}
	if s.Gold != -3 {
		t.Fatalf("gold=%d, want -3", s.Gold)
	}
	if s.HP != 85 {
		t.Fatalf("hp=%d, want 85", s.HP)
	}
	if s.BadHabits[0].TriggerCount != 1 {
		t.Fatalf("trigger count=%d", s.BadHabits[0].TriggerCount)
	}
}

func TestRemoveEntities(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mustAddHabit(t, e, HabitInput{Name: "Floss", Domain: DomainHealth})
	if err := e.RemoveHabit(id); err != nil {
		t.Fatalf("RemoveHabit: %v", err)
	}
	if err := e.RemoveHabit(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if err := e.RemoveQuest("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
