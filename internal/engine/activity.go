package engine

import "time"

type ActivityCategory string

const (
	ActivityHabit       ActivityCategory = "habit"
	ActivityQuest       ActivityCategory = "quest"
	ActivityBadHabit    ActivityCategory = "bad_habit"
	ActivityLevelUp     ActivityCategory = "level_up"
	ActivityTierUp      ActivityCategory = "tier_up"
	ActivityBoss        ActivityCategory = "boss"
	ActivityDungeon     ActivityCategory = "dungeon"
	ActivityJournal     ActivityCategory = "journal"
	ActivityReward      ActivityCategory = "reward"
	ActivityInn         ActivityCategory = "inn"
	ActivitySleep       ActivityCategory = "sleep"
	ActivityAchievement ActivityCategory = "achievement"
	ActivityAssessment  ActivityCategory = "assessment"
	ActivityDaily       ActivityCategory = "daily"
	ActivityDamage      ActivityCategory = "damage"
)

// EarnsXP reports whether entries of this category count toward momentum.
func (c ActivityCategory) EarnsXP() bool {
	switch c {
	case ActivityHabit, ActivityQuest, ActivityBoss, ActivityDungeon, ActivityJournal:
		return true
	default:
		return false
	}
}

type Activity struct {
	Timestamp   time.Time        `json:"timestamp"`
	Category    ActivityCategory `json:"category"`
	Description string           `json:"description"`
	XP          int              `json:"xp,omitempty"`
	Gold        int              `json:"gold,omitempty"`
	HP          int              `json:"hp,omitempty"`
}

func (e *Engine) logActivity(a Activity) {
	if a.Timestamp.IsZero() {
		a.Timestamp = e.now()
	}
	entries := append(e.state.ActivityLog, a)
	if len(entries) > ActivityLogLimit {
		entries = entries[len(entries)-ActivityLogLimit:]
	}
	e.state.ActivityLog = entries
}

// RecentActivity returns up to n entries, newest first.
func (s *CharacterState) RecentActivity(n int) []Activity {
	if n <= 0 || n > len(s.ActivityLog) {
		n = len(s.ActivityLog)
	}
	out := make([]Activity, 0, n)
	for i := len(s.ActivityLog) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.ActivityLog[i])
	}
	return out
}
