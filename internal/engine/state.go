package engine

import "time"

const (
	BaseMaxHP         = 100
	MaxEntropy        = 100
	ActivityLogLimit  = 100
	ChatHistoryLimit  = 50
	SleepLogLimit     = 14
	ClaimedQuestLimit = 500
)

type Domain struct {
	ID    DomainID `json:"id"`
	Score int      `json:"score"`
	Level int      `json:"level"`
	XP    int      `json:"xp"`
}

type Habit struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Domain            DomainID   `json:"domain"`
	Difficulty        Difficulty `json:"difficulty"`
	BaseXP            int        `json:"baseXp"`
	BaseGold          int        `json:"baseGold"`
	Completed         bool       `json:"completed"`
	Streak            int        `json:"streak"`
	BestStreak        int        `json:"bestStreak"`
	LastCompletedDate string     `json:"lastCompletedDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type QuestSource string

const (
	QuestManual  QuestSource = "manual"
	QuestAI      QuestSource = "ai"
	QuestOffline QuestSource = "offline"
)

type Quest struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Domain        DomainID    `json:"domain"`
	Difficulty    Difficulty  `json:"difficulty"`
	XP            int         `json:"xp"`
	Gold          int         `json:"gold"`
	Completed     bool        `json:"completed"`
	CompletedDate *time.Time  `json:"completedDate,omitempty"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
	Source        QuestSource `json:"source,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type BadHabit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HPCost       int    `json:"hpCost"`
	GoldPenalty  int    `json:"goldPenalty"`
	TriggerCount int    `json:"triggerCount"`
}

type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	TimesBought int    `json:"timesBought"`
}

type BossFight struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	MaxHP       int        `json:"maxHp"`
	CurrentHP   int        `json:"currentHp"`
	Domain      DomainID   `json:"domain"`
	Defeated    bool       `json:"defeated"`
	DefeatedAt  *time.Time `json:"defeatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type DungeonTask struct {
	Name  string `json:"name"`
	Slain bool   `json:"slain"`
}

type Dungeon struct {
	StartTime     time.Time     `json:"startTime"`
	TargetMinutes int           `json:"targetMinutes"`
	Tier          DungeonTier   `json:"tier"`
	Tasks         []DungeonTask `json:"tasks"`
	MonstersSlain int           `json:"monstersSlain"`
}

type AchievementState struct {
	ID         string     `json:"id"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

type CharacterProfile struct {
	Name               string               `json:"name"`
	CreatedAt          time.Time            `json:"createdAt"`
	AssessmentComplete bool                 `json:"assessmentComplete"`
	Responses          []AssessmentResponse `json:"responses"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SleepEntry struct {
	Quality   SleepQuality `json:"quality"`
	HPChange  int          `json:"hpChange"`
	Timestamp time.Time    `json:"timestamp"`
}

// JournalMeta is the sync bookkeeping kept across journal batches.
type JournalMeta struct {
	LastSyncAt         time.Time       `json:"lastSyncAt"`
	TotalEntriesSynced int             `json:"totalEntriesSynced"`
	Recent             []JournalRecord `json:"recent"`
	ClaimedQuests      []string        `json:"claimedQuests,omitempty"`
}

type Stats struct {
	TotalBossesDefeated  int `json:"totalBossesDefeated"`
	TotalDungeonsCleared int `json:"totalDungeonsCleared"`
	TotalFocusMinutes    int `json:"totalFocusMinutes"`
	AIQuestsGenerated    int `json:"aiQuestsGenerated"`
	TotalRewardsBought   int `json:"totalRewardsBought"`
}

// CharacterState is the whole persisted game graph for the single player.
type CharacterState struct {
	Level                int            `json:"level"`
	XP                   int            `json:"xp"`
	HP                   int            `json:"hp"`
	MaxHP                int            `json:"maxHp"`
	Gold                 int            `json:"gold"`
	TotalGoldEarned      int            `json:"totalGoldEarned"`
	TotalHabitsCompleted int            `json:"totalHabitsCompleted"`
	TotalQuestsCompleted int            `json:"totalQuestsCompleted"`
	PsychicEntropy       int            `json:"psychicEntropy"`
	CurrentPhase         Phase          `json:"currentPhase"`
	LastPlayedDate       string         `json:"lastPlayedDate"`
	LastWeeklyCheck      string         `json:"lastWeeklyCheck"`
	GameDifficulty       GameDifficulty `json:"gameDifficulty"`

	Profile       *CharacterProfile  `json:"profile,omitempty"`
	Domains       []Domain           `json:"domains"`
	Habits        []Habit            `json:"habits"`
	BadHabits     []BadHabit         `json:"badHabits"`
	Quests        []Quest            `json:"quests"`
	Rewards       []Reward           `json:"rewards"`
	BossFights    []BossFight        `json:"bossFights"`
	ActiveDungeon *Dungeon           `json:"activeDungeon,omitempty"`
	Achievements  []AchievementState `json:"achievements"`
	ActivityLog   []Activity         `json:"activityLog"`
	ChatHistory   []ChatMessage      `json:"chatHistory"`
	SleepLog      []SleepEntry       `json:"sleepLog"`
	Journal       JournalMeta        `json:"journal"`
	Stats         Stats              `json:"stats"`
}

// NewState returns a fresh level 1 character with neutral domains.
func NewState(now time.Time) *CharacterState {
	s := &CharacterState{
		Level:           1,
		HP:              BaseMaxHP,
		MaxHP:           BaseMaxHP,
		CurrentPhase:    PhaseDissonance,
		LastPlayedDate:  dayOf(now),
		LastWeeklyCheck: dayOf(now),
		GameDifficulty:  GameNormal,
	}
	s.Normalize()
	return s
}

// HasCharacter reports whether the assessment has been finalized at least once.
func (s *CharacterState) HasCharacter() bool {
	return s.Profile != nil && s.Profile.AssessmentComplete
}

func (s *CharacterState) Domain(id DomainID) *Domain {
	for i := range s.Domains {
		if s.Domains[i].ID == id {
			return &s.Domains[i]
		}
	}
	return nil
}

// DomainScores returns the current score of every domain keyed by id.
func (s *CharacterState) DomainScores() map[DomainID]int {
	out := make(map[DomainID]int, len(s.Domains))
	for _, d := range s.Domains {
		out[d.ID] = d.Score
	}
	return out
}

// Normalize repairs a loaded state: missing domains and achievements are
// restored in canonical order, unknown entries dropped, and every numeric
// invariant clamped.
func (s *CharacterState) Normalize() {
	byID := make(map[DomainID]Domain, len(s.Domains))
	for _, d := range s.Domains {
		if d.ID.IsValid() {
			byID[d.ID] = d
		}
	}
	domains := make([]Domain, 0, len(DomainOrder))
	for _, id := range DomainOrder {
		d, ok := byID[id]
		if !ok {
			d = Domain{ID: id, Score: DefaultDomainScore, Level: 1}
		}
		d.Score = clamp(d.Score, 0, MaxDomainScore)
		d.Level = max(1, d.Level)
		d.XP = max(0, d.XP)
		domains = append(domains, d)
	}
	s.Domains = domains

	unlocked := make(map[string]AchievementState, len(s.Achievements))
	for _, a := range s.Achievements {
		unlocked[a.ID] = a
	}
	table := make([]AchievementState, 0, len(achievementDefs))
	for _, def := range achievementDefs {
		st, ok := unlocked[def.ID]
		if !ok {
			st = AchievementState{ID: def.ID}
		}
		table = append(table, st)
	}
	s.Achievements = table

	s.Level = max(1, s.Level)
	s.XP = max(0, s.XP)
	if s.MaxHP <= 0 {
		s.MaxHP = BaseMaxHP + (s.Level-1)*LevelUpHPBonus
	}
	s.HP = clamp(s.HP, 0, s.MaxHP)
	s.PsychicEntropy = clamp(s.PsychicEntropy, 0, MaxEntropy)
	if !s.CurrentPhase.IsValid() {
		s.CurrentPhase = PhaseDissonance
	}
	if !s.GameDifficulty.IsValid() {
		s.GameDifficulty = GameNormal
	}
	for i := range s.BossFights {
		b := &s.BossFights[i]
		b.CurrentHP = clamp(b.CurrentHP, 0, b.MaxHP)
	}
	for i := range s.Habits {
		h := &s.Habits[i]
		h.Streak = max(0, h.Streak)
		h.BestStreak = max(h.BestStreak, h.Streak)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
