package engine

import "fmt"

// achievementDef is one entry of the fixed predicate table.
type achievementDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Reward      int
	Earned      func(s *CharacterState) bool
}

var achievementDefs = []achievementDef{
	{"character_created", "Hero Awakens", "Complete the life assessment", "🌟", 100, func(s *CharacterState) bool {
		return s.HasCharacter()
	}},
	{"first_habit", "First Steps", "Complete your first habit", "🌱", 25, func(s *CharacterState) bool {
		return s.TotalHabitsCompleted >= 1
	}},
	levelAchievement("level_5", "Rising Hero", "Reach level 5", "⭐", 100, 5),
	levelAchievement("level_10", "Seasoned Adventurer", "Reach level 10", "🌠", 250, 10),
	streakAchievement("streak_7", "Week Warrior", "Keep a 7 day streak", "🔥", 75, 7),
	streakAchievement("streak_30", "Unstoppable", "Keep a 30 day streak", "☄️", 300, 30),
	{"gold_500", "Treasure Hunter", "Earn 500 gold in total", "💰", 50, func(s *CharacterState) bool {
		return s.TotalGoldEarned >= 500
	}},
	{"habits_10", "Habit Architect", "Track 10 habits", "🏗️", 100, func(s *CharacterState) bool {
		return len(s.Habits) >= 10
	}},
	{"quests_5", "Quest Master", "Complete 5 quests", "📜", 150, func(s *CharacterState) bool {
		return s.TotalQuestsCompleted >= 5
	}},
	{"all_domains_50", "Well Rounded", "Every domain at 50 or more", "🌈", 500, func(s *CharacterState) bool {
		if !s.HasCharacter() {
			return false
		}
		for _, d := range s.Domains {
			if d.Score < 50 {
				return false
			}
		}
		return len(s.Domains) > 0
	}},
	{"ai_coach_first", "Seeking Wisdom", "Talk to the coach", "🔮", 50, func(s *CharacterState) bool {
		return len(s.ChatHistory) > 0
	}},
	{"ai_quests_5", "Oracle's Chosen", "Receive 5 generated quests", "✨", 100, func(s *CharacterState) bool {
		return s.Stats.AIQuestsGenerated >= 5
	}},
	{"boss_slayer", "Boss Slayer", "Defeat a boss", "🐉", 100, func(s *CharacterState) bool {
		return s.Stats.TotalBossesDefeated >= 1
	}},
	{"dungeon_delver", "Dungeon Delver", "Clear a dungeon", "🏰", 50, func(s *CharacterState) bool {
		return s.Stats.TotalDungeonsCleared >= 1
	}},
	{"journal_keeper", "Chronicler", "Sync 10 journal notes", "📓", 75, func(s *CharacterState) bool {
		return s.Journal.TotalEntriesSynced >= 10
	}},
	{"human_2", "Human 2.0", "Reach tier 2.0", "🧬", 1000, func(s *CharacterState) bool {
		return TierForLevel(s.Level) != Tier1
	}},
}

func levelAchievement(id, name, desc, icon string, reward, level int) achievementDef {
	return achievementDef{id, name, desc, icon, reward, func(s *CharacterState) bool {
		return s.Level >= level
	}}
}

func streakAchievement(id, name, desc, icon string, reward, days int) achievementDef {
	return achievementDef{id, name, desc, icon, reward, func(s *CharacterState) bool {
		for _, h := range s.Habits {
			if h.Streak >= days || h.BestStreak >= days {
				return true
			}
		}
		return false
	}}
}

// Achievement is the display view of one achievement.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Reward      int
	Earned      bool
}

// AchievementChecker reads achievement standing from a state.
type AchievementChecker struct {
	state *CharacterState
}

func NewAchievementChecker(state *CharacterState) *AchievementChecker {
	return &AchievementChecker{state: state}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	unlocked := make(map[string]bool, len(c.state.Achievements))
	for _, a := range c.state.Achievements {
		unlocked[a.ID] = a.Unlocked
	}
	out := make([]Achievement, 0, len(achievementDefs))
	for _, def := range achievementDefs {
		out = append(out, Achievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Reward:      def.Reward,
			Earned:      unlocked[def.ID],
		})
	}
	return out
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(achievementDefs)
}

// EvaluateAchievements unlocks every achievement whose predicate holds.
func (e *Engine) EvaluateAchievements() *Outcome {
	e.begin()
	return e.finish()
}

// evaluateAchievements repeats until nothing new unlocks, since reward gold
// can satisfy another predicate. Each id unlocks at most once.
func (e *Engine) evaluateAchievements() {
	s := e.state
	for {
		changed := false
		for i, def := range achievementDefs {
			st := achievementState(s, def.ID, i)
			if st.Unlocked || !def.Earned(s) {
				continue
			}
			now := e.now()
			st.Unlocked = true
			st.UnlockedAt = &now
			s.Gold += def.Reward
			s.TotalGoldEarned += def.Reward
			changed = true

			msg := fmt.Sprintf("%s %s unlocked", def.Icon, def.Name)
			e.emit(Event{Kind: EventAchievementUnlocked, Message: msg, Gold: def.Reward, Ref: def.ID})
			e.logActivity(Activity{Category: ActivityAchievement, Description: msg, Gold: def.Reward})
		}
		if !changed {
			return
		}
	}
}

// achievementState finds the stored flag for id, preferring the slot at
// hint, which holds it once the state is normalized.
func achievementState(s *CharacterState, id string, hint int) *AchievementState {
	if hint < len(s.Achievements) && s.Achievements[hint].ID == id {
		return &s.Achievements[hint]
	}
	for i := range s.Achievements {
		if s.Achievements[i].ID == id {
			return &s.Achievements[i]
		}
	}
	s.Achievements = append(s.Achievements, AchievementState{ID: id})
	return &s.Achievements[len(s.Achievements)-1]
}
