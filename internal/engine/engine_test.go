package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T) (*Engine, *testClock) {
	t.Helper()
	clock := &testClock{t: testDay}
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return New(nil, WithClock(clock.now), WithIDs(ids)), clock
}

func mustAddHabit(t *testing.T, e *Engine, in HabitInput) string {
	t.Helper()
	out, err := e.AddHabit(in)
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	return out.Ref
}

func mustAddBoss(t *testing.T, e *Engine, in BossInput) string {
	t.Helper()
	out, err := e.AddBoss(in)
	if err != nil {
		t.Fatalf("AddBoss: %v", err)
	}
	return out.Ref
}

func TestNewStateDefaults(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	if s.Level != 1 || s.HP != 100 || s.MaxHP != 100 || s.Gold != 0 {
		t.Fatalf("fresh state level=%d hp=%d/%d gold=%d", s.Level, s.HP, s.MaxHP, s.Gold)
	}
	if len(s.Domains) != len(DomainOrder) {
		t.Fatalf("domains=%d, want %d", len(s.Domains), len(DomainOrder))
	}
	for _, d := range s.Domains {
		if d.Score != 50 || d.Level != 1 || d.XP != 0 {
			t.Fatalf("domain %s = %+v, want neutral", d.ID, d)
		}
	}
	if s.CurrentPhase != PhaseDissonance {
		t.Fatalf("phase=%q, want dissonance", s.CurrentPhase)
	}
}

func TestGainXPRejectsInvalidInput(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.GainXP(-1, 0, ""); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("GainXP(-1) err=%v, want ErrNegativeAmount", err)
	}
	if _, err := e.GainXP(0, -5, ""); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("GainXP gold -5 err=%v, want ErrNegativeAmount", err)
	}
	if _, err := e.GainXP(10, 0, "wealth"); !errors.Is(err, ErrUnknownDomain) {
		t.Fatalf("GainXP unknown domain err=%v, want ErrUnknownDomain", err)
	}
	if s := e.State(); s.XP != 0 || s.Gold != 0 {
		t.Fatalf("rejected gain changed state: xp=%d gold=%d", s.XP, s.Gold)
	}
}

func TestGainXPCreditsDomainAndGold(t *testing.T) {
	e, _ := newTestEngine(t)
	e.State().PsychicEntropy = 12

	out, err := e.GainXP(10, 5, DomainHealth)
	if err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	s := e.State()
	if s.XP != 10 {
		t.Fatalf("xp=%d, want 10", s.XP)
	}
	if s.Gold != 5 || s.TotalGoldEarned != 5 {
		t.Fatalf("gold=%d total=%d, want 5/5", s.Gold, s.TotalGoldEarned)
	}
	if s.PsychicEntropy != 7 {
		t.Fatalf("entropy=%d, want 7", s.PsychicEntropy)
	}
	if got := s.Domain(DomainHealth).XP; got != 10 {
		t.Fatalf("health xp=%d, want 10", got)
	}
	if !out.Has(EventXPGained) {
		t.Fatalf("expected xp_gained event")
	}
}

func TestPhaseMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		activities int
		entropy    int
		want       int
	}{
		{"dissonance", 0, 0, 10},
		{"uncertainty", 4, 0, 15},
		{"discovery", 10, 0, 20},
		{"entropy drags phase down", 10, 80, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine(t)
			s := e.State()
			s.PsychicEntropy = tt.entropy
			for i := 0; i < tt.activities; i++ {
				s.ActivityLog = append(s.ActivityLog, Activity{
					Timestamp: clock.now().Add(-time.Duration(i+1) * time.Hour),
					Category:  ActivityHabit,
				})
			}
			if _, err := e.GainXP(10, 0, ""); err != nil {
				t.Fatalf("GainXP: %v", err)
			}
			if s.XP != tt.want {
				t.Fatalf("xp=%d, want %d", s.XP, tt.want)
			}
		})
	}
}

func TestDerivePhaseIsMonotonic(t *testing.T) {
	rank := map[Phase]int{PhaseDissonance: 0, PhaseUncertainty: 1, PhaseDiscovery: 2}
	for entropy := 0; entropy <= MaxEntropy; entropy += 10 {
		prev := -1
		for acts := 0; acts <= 30; acts++ {
			r := rank[DerivePhase(entropy, acts)]
			if r < prev {
				t.Fatalf("phase regressed at entropy=%d activities=%d", entropy, acts)
			}
			prev = r
		}
	}
}

func TestOldActivityDoesNotCountTowardPhase(t *testing.T) {
	e, clock := newTestEngine(t)
	s := e.State()
	for i := 0; i < 10; i++ {
		s.ActivityLog = append(s.ActivityLog, Activity{
			Timestamp: clock.now().Add(-8 * 24 * time.Hour),
			Category:  ActivityQuest,
		})
	}
	if _, err := e.GainXP(10, 0, ""); err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	if s.XP != 10 {
		t.Fatalf("xp=%d, want 10 (stale activity ignored)", s.XP)
	}
}

func TestLevelUp(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	s.XP = 95
	s.HP = 40

	out, err := e.GainXP(10, 0, "")
	if err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	if s.Level != 2 || s.XP != 0 {
		t.Fatalf("level=%d xp=%d, want 2/0", s.Level, s.XP)
	}
	if s.MaxHP != 110 || s.HP != 110 {
		t.Fatalf("hp=%d/%d, want 110/110", s.HP, s.MaxHP)
	}
	if !out.Has(EventLevelUp) || out.Has(EventTierUp) {
		t.Fatalf("events=%v, want level_up only", out.Events)
	}
}

func TestTierCrossingIsDistinctEvent(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	s.Level = 100
	s.MaxHP = 1090
	s.XP = XPToNextLevel(100) - 1

	out, err := e.GainXP(1, 0, "")
	if err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	if s.Level != 101 {
		t.Fatalf("level=%d, want 101", s.Level)
	}
	if !out.Has(EventTierUp) {
		t.Fatalf("expected tier_up event, got %v", out.Events)
	}
	if out.Has(EventLevelUp) {
		t.Fatalf("tier crossing should not also emit level_up")
	}
	if s.MaxHP != 1100 || s.HP != s.MaxHP {
		t.Fatalf("hp=%d/%d, want full 1100", s.HP, s.MaxHP)
	}
}

func TestDomainLevelUpDamagesLinkedBosses(t *testing.T) {
	e, _ := newTestEngine(t)
	linked := mustAddBoss(t, e, BossInput{Name: "Couch", MaxHP: 50, Domain: DomainHealth})
	other := mustAddBoss(t, e, BossInput{Name: "Debt", MaxHP: 50, Domain: DomainLiving})
	e.State().Domain(DomainHealth).XP = 40

	out, err := e.GainXP(10, 0, DomainHealth)
	if err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	d := e.State().Domain(DomainHealth)
	if d.Level != 2 || d.XP != 0 || d.Score != 52 {
		t.Fatalf("health=%+v, want level 2, xp 0, score 52", *d)
	}
	if got := e.findBoss(linked).CurrentHP; got != 40 {
		t.Fatalf("linked boss hp=%d, want 40", got)
	}
	if got := e.findBoss(other).CurrentHP; got != 50 {
		t.Fatalf("unlinked boss hp=%d, want 50", got)
	}
	if !out.Has(EventDomainLevelUp) || !out.Has(EventBossDamaged) {
		t.Fatalf("events=%v", out.Events)
	}
}

func TestDomainScoreBonusCapped(t *testing.T) {
	e, _ := newTestEngine(t)
	d := e.State().Domain(DomainEducation)
	d.Score = 99
	d.XP = 49
	if _, err := e.GainXP(1, 0, DomainEducation); err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	if d.Score != 100 {
		t.Fatalf("score=%d, want 100", d.Score)
	}
}

func TestTakeDamageFaints(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	s.HP = 10
	s.XP = 30

	out, err := e.TakeDamage(15)
	if err != nil {
		t.Fatalf("TakeDamage: %v", err)
	}
	if s.HP != 50 {
		t.Fatalf("hp=%d, want 50", s.HP)
	}
	if s.XP != 0 {
		t.Fatalf("xp=%d, want 0", s.XP)
	}
	if !out.Has(EventFainted) {
		t.Fatalf("expected fainted event")
	}
}

func TestTakeDamageRejectsNegative(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.TakeDamage(-5); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err=%v, want ErrNegativeAmount", err)
	}
	if _, err := e.Heal(-5); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err=%v, want ErrNegativeAmount", err)
	}
	if e.State().HP != 100 {
		t.Fatalf("hp=%d, want untouched 100", e.State().HP)
	}
}

func TestHealClampsToMax(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	s.HP = 90
	if _, err := e.Heal(50); err != nil {
		t.Fatalf("Heal: %v", err)
	}
	if s.HP != s.MaxHP {
		t.Fatalf("hp=%d, want %d", s.HP, s.MaxHP)
	}
}

func TestInvariantsHoldUnderMixedSequence(t *testing.T) {
	e, clock := newTestEngine(t)
	s := e.State()
	for i := 0; i < 10; i++ {
		if _, err := e.AddQuest(QuestInput{Name: fmt.Sprintf("q%d", i), Domain: DomainTimeUse}); err != nil {
			t.Fatalf("AddQuest: %v", err)
		}
	}
	for i := 0; i < 300; i++ {
		switch i % 5 {
		case 0:
			_, _ = e.GainXP(i%37, i%11, DomainOrder[i%len(DomainOrder)])
		case 1:
			_, _ = e.TakeDamage(i % 73)
		case 2:
			_, _ = e.Heal(i % 29)
		case 3:
			clock.advance(24 * time.Hour)
			e.RunDailyCycle()
		case 4:
			_, _ = e.TakeDamage(1000)
		}
		if s.HP < 0 || s.HP > s.MaxHP {
			t.Fatalf("step %d: hp=%d out of [0,%d]", i, s.HP, s.MaxHP)
		}
		if s.PsychicEntropy < 0 || s.PsychicEntropy > MaxEntropy {
			t.Fatalf("step %d: entropy=%d", i, s.PsychicEntropy)
		}
		if s.XP < 0 {
			t.Fatalf("step %d: xp=%d", i, s.XP)
		}
		for _, d := range s.Domains {
			if d.Score < 0 || d.Score > MaxDomainScore {
				t.Fatalf("step %d: domain %s score=%d", i, d.ID, d.Score)
			}
		}
	}
}

func TestEntropyStaysInRange(t *testing.T) {
	e, clock := newTestEngine(t)
	s := e.State()
	for i := 0; i < 60; i++ {
		if _, err := e.AddQuest(QuestInput{Name: fmt.Sprintf("q%d", i), Domain: DomainHealth}); err != nil {
			t.Fatalf("AddQuest: %v", err)
		}
	}
	for day := 0; day < 5; day++ {
		clock.advance(24 * time.Hour)
		e.RunDailyCycle()
		if s.PsychicEntropy < 0 || s.PsychicEntropy > MaxEntropy {
			t.Fatalf("entropy=%d out of range", s.PsychicEntropy)
		}
	}
	if s.PsychicEntropy != MaxEntropy {
		t.Fatalf("entropy=%d, want capped %d", s.PsychicEntropy, MaxEntropy)
	}
	for i := 0; i < 30; i++ {
		_, _ = e.GainXP(1, 0, "")
	}
	if s.PsychicEntropy != 0 {
		t.Fatalf("entropy=%d, want floored 0", s.PsychicEntropy)
	}
}

func TestNormalizeRepairsLoadedState(t *testing.T) {
	s := &CharacterState{
		Level:          0,
		HP:             500,
		MaxHP:          120,
		PsychicEntropy: 130,
		Domains:        []Domain{{ID: DomainHealth, Score: 140, Level: 3}, {ID: "bogus", Score: 10}},
		Achievements:   []AchievementState{{ID: "first_habit", Unlocked: true}, {ID: "retired"}},
	}
	s.Normalize()
	if s.Level != 1 || s.HP != 120 || s.PsychicEntropy != 100 {
		t.Fatalf("level=%d hp=%d entropy=%d", s.Level, s.HP, s.PsychicEntropy)
	}
	if len(s.Domains) != len(DomainOrder) {
		t.Fatalf("domains=%d, want %d", len(s.Domains), len(DomainOrder))
	}
	if d := s.Domain(DomainHealth); d.Score != 100 || d.Level != 3 {
		t.Fatalf("health=%+v", *d)
	}
	if len(s.Achievements) != len(achievementDefs) {
		t.Fatalf("achievements=%d, want %d", len(s.Achievements), len(achievementDefs))
	}
	if !achievementState(s, "first_habit", 0).Unlocked {
		t.Fatalf("first_habit unlock lost in normalize")
	}
}

var testDay = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
