package engine

type EventKind string

const (
	EventXPGained            EventKind = "xp_gained"
	EventDomainLevelUp       EventKind = "domain_level_up"
	EventLevelUp             EventKind = "level_up"
	EventTierUp              EventKind = "tier_up"
	EventDamage              EventKind = "damage"
	EventFainted             EventKind = "fainted"
	EventHealed              EventKind = "healed"
	EventHabitCompleted      EventKind = "habit_completed"
	EventQuestCompleted      EventKind = "quest_completed"
	EventBadHabit            EventKind = "bad_habit"
	EventBossDamaged         EventKind = "boss_damaged"
	EventBossDefeated        EventKind = "boss_defeated"
	EventDungeonStarted      EventKind = "dungeon_started"
	EventMonsterSlain        EventKind = "monster_slain"
	EventDungeonCleared      EventKind = "dungeon_cleared"
	EventDungeonAbandoned    EventKind = "dungeon_abandoned"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventRewardBought        EventKind = "reward_bought"
	EventRested              EventKind = "rested"
	EventSleepLogged         EventKind = "sleep_logged"
	EventCharacterCreated    EventKind = "character_created"
	EventNewDay              EventKind = "new_day"
	EventStreakBroken        EventKind = "streak_broken"
	EventEntropyRose         EventKind = "entropy_rose"
	EventWeeklyPenalty       EventKind = "weekly_penalty"
	EventJournalSynced       EventKind = "journal_synced"
	EventNoteQuest           EventKind = "note_quest"
)

// Event is a single notification produced by an operation.
type Event struct {
	Kind    EventKind
	Message string
	// Amount is the primary magnitude: XP, damage, HP healed, or penalty.
	Amount int
	Gold   int
	Domain DomainID
	Level  int
	Ref    string
}
