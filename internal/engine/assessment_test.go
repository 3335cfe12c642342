package engine

import (
	"errors"
	"testing"
	"time"
)

func answerAll(t *testing.T, value int) *AssessmentSession {
	t.Helper()
	a := NewAssessmentSession()
	for _, q := range Questions() {
		if err := a.Answer(q.ID, value); err != nil {
			t.Fatalf("Answer(%s): %v", q.ID, err)
		}
	}
	return a
}

func TestQuestionBankCoversEveryDomain(t *testing.T) {
	seen := make(map[string]bool)
	for _, id := range DomainOrder {
		qs := QuestionsForDomain(id)
		if len(qs) < 4 || len(qs) > 5 {
			t.Fatalf("domain %s has %d questions, want 4-5", id, len(qs))
		}
		for _, q := range qs {
			if seen[q.ID] {
				t.Fatalf("duplicate question id %s", q.ID)
			}
			seen[q.ID] = true
			if q.Weight <= 0 {
				t.Fatalf("question %s weight=%v", q.ID, q.Weight)
			}
		}
	}
	if len(seen) != len(Questions()) {
		t.Fatalf("questions outside known domains: %d vs %d", len(seen), len(Questions()))
	}
}

func TestLikertToScore(t *testing.T) {
	tests := []struct {
		value    int
		positive bool
		want     int
	}{
		{1, true, 0},
		{2, true, 25},
		{3, true, 50},
		{5, true, 100},
		{1, false, 100},
		{5, false, 0},
		{4, false, 25},
	}
	for _, tt := range tests {
		if got := LikertToScore(tt.value, tt.positive); got != tt.want {
			t.Fatalf("LikertToScore(%d, %v)=%d, want %d", tt.value, tt.positive, got, tt.want)
		}
	}
}

func TestScoreAllNeutral(t *testing.T) {
	a := answerAll(t, 3)
	scores := ScoreAssessment(a.Responses())
	for _, id := range DomainOrder {
		if scores[id] != 50 {
			t.Fatalf("score[%s]=%d, want 50", id, scores[id])
		}
	}
	if got := LevelFromScores(scores); got != 6 {
		t.Fatalf("level=%d, want 6", got)
	}
}

func TestScoreUnansweredDomainIsNeutral(t *testing.T) {
	scores := ScoreAssessment([]AssessmentResponse{
		{QuestionID: "health_01", Value: 5},
		{QuestionID: "health_02", Value: 5},
	})
	if scores[DomainHealth] != 100 {
		t.Fatalf("health=%d, want 100", scores[DomainHealth])
	}
	for _, id := range DomainOrder {
		if id == DomainHealth {
			continue
		}
		if scores[id] != 50 {
			t.Fatalf("score[%s]=%d, want 50", id, scores[id])
		}
	}
	if len(ScoreAssessment(nil)) != len(DomainOrder) {
		t.Fatalf("empty assessment should still score every domain")
	}
}

func TestScoreIsWeightedMean(t *testing.T) {
	// psych_01 weighs 1.2, psych_02 weighs 1.0: (100*1.2 + 0*1.0) / 2.2 = 54.5
	scores := ScoreAssessment([]AssessmentResponse{
		{QuestionID: "psych_01", Value: 5},
		{QuestionID: "psych_02", Value: 1},
	})
	if scores[DomainPsychological] != 55 {
		t.Fatalf("psych=%d, want 55", scores[DomainPsychological])
	}
}

func TestScoresStayInRange(t *testing.T) {
	for v := LikertMin; v <= LikertMax; v++ {
		for id, score := range ScoreAssessment(answerAll(t, v).Responses()) {
			if score < 0 || score > 100 {
				t.Fatalf("value %d: %s=%d out of range", v, id, score)
			}
		}
	}
}

func TestLevelFromScoresClamped(t *testing.T) {
	low := make(map[DomainID]int)
	high := make(map[DomainID]int)
	for _, id := range DomainOrder {
		low[id] = 0
		high[id] = 100
	}
	if got := LevelFromScores(low); got != 1 {
		t.Fatalf("low level=%d, want 1", got)
	}
	if got := LevelFromScores(high); got != MaxStartingLevel {
		t.Fatalf("high level=%d, want %d", got, MaxStartingLevel)
	}
}

func TestSessionAnswerReplaces(t *testing.T) {
	a := NewAssessmentSession()
	if err := a.Answer("edu_01", 2); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := a.Answer("edu_01", 4); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	resp := a.Responses()
	if len(resp) != 1 || resp[0].Value != 4 {
		t.Fatalf("responses=%v, want single edu_01=4", resp)
	}
	answered, total := a.Progress()
	if answered != 1 || total != len(Questions()) {
		t.Fatalf("progress=%d/%d", answered, total)
	}
	next, ok := a.Next()
	if !ok || next.ID != "psych_01" {
		t.Fatalf("next=%v ok=%v, want psych_01", next.ID, ok)
	}
}

func TestSessionRejectsBadAnswers(t *testing.T) {
	a := NewAssessmentSession()
	if err := a.Answer("nope_01", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown question err=%v, want ErrNotFound", err)
	}
	if err := a.Answer("edu_01", 0); err == nil {
		t.Fatalf("expected error for likert 0")
	}
	if err := a.Answer("edu_01", 6); err == nil {
		t.Fatalf("expected error for likert 6")
	}
	if answered, _ := a.Progress(); answered != 0 {
		t.Fatalf("answered=%d, want 0", answered)
	}
}

func TestFinalizeAssessment(t *testing.T) {
	e, _ := newTestEngine(t)
	a := answerAll(t, 5)

	out, err := e.FinalizeAssessment("  Ada ", a)
	if err != nil {
		t.Fatalf("FinalizeAssessment: %v", err)
	}
	s := e.State()
	if s.Level != 11 || s.MaxHP != 210 || s.HP != 210 || s.XP != 0 {
		t.Fatalf("level=%d hp=%d/%d xp=%d", s.Level, s.HP, s.MaxHP, s.XP)
	}
	for _, d := range s.Domains {
		if d.Score != 100 || d.Level != 11 {
			t.Fatalf("domain %s=%+v", d.ID, d)
		}
	}
	if s.Profile == nil || s.Profile.Name != "Ada" || !s.Profile.AssessmentComplete {
		t.Fatalf("profile=%+v", s.Profile)
	}
	if len(s.Profile.Responses) != len(Questions()) {
		t.Fatalf("stored responses=%d", len(s.Profile.Responses))
	}
	if !out.Has(EventCharacterCreated) {
		t.Fatalf("expected character_created event")
	}
	checker := NewAchievementChecker(s)
	earned := map[string]bool{}
	for _, ach := range checker.GetAchievements() {
		earned[ach.ID] = ach.Earned
	}
	if !earned["character_created"] || !earned["all_domains_50"] || !earned["level_10"] {
		t.Fatalf("earned=%v", earned)
	}

	if _, err := e.FinalizeAssessment("Ada", a); !errors.Is(err, ErrAssessmentFinalized) {
		t.Fatalf("second finalize err=%v, want ErrAssessmentFinalized", err)
	}
	if err := a.Answer("edu_01", 1); !errors.Is(err, ErrAssessmentFinalized) {
		t.Fatalf("answer after finalize err=%v", err)
	}
}

func TestRetakeKeepsProgressOutsideScores(t *testing.T) {
	e, clock := newTestEngine(t)
	if _, err := e.FinalizeAssessment("", answerAll(t, 3)); err != nil {
		t.Fatalf("FinalizeAssessment: %v", err)
	}
	created := e.State().Profile.CreatedAt
	if e.State().Profile.Name != DefaultHeroName {
		t.Fatalf("name=%q, want default", e.State().Profile.Name)
	}
	mustAddHabit(t, e, HabitInput{Name: "Walk", Domain: DomainHealth})
	gold := e.State().Gold

	clock.advance(48 * time.Hour)
	if _, err := e.FinalizeAssessment("Ada", answerAll(t, 1)); err != nil {
		t.Fatalf("retake: %v", err)
	}
	s := e.State()
	if s.Level != 1 || len(s.Habits) != 1 || s.Gold != gold {
		t.Fatalf("after retake level=%d habits=%d gold=%d (was %d)", s.Level, len(s.Habits), s.Gold, gold)
	}
	if !s.Profile.CreatedAt.Equal(created) {
		t.Fatalf("retake changed createdAt")
	}
}
