package engine

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultHabitXP    = 10
	DefaultHabitGold  = 5
	DefaultQuestXP    = 50
	DefaultQuestGold  = 25
	DefaultBadHabitHP = 10
)

type HabitInput struct {
	Name       string
	Domain     DomainID
	Difficulty Difficulty
	BaseXP     int
	BaseGold   int
}

type QuestInput struct {
	Name        string
	Description string
	Domain      DomainID
	Difficulty  Difficulty
	XP          int
	Gold        int
	Deadline    *time.Time
	Source      QuestSource
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrNameRequired
	}
	return n, nil
}

func validDomain(d DomainID) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	return nil
}

// AddHabit registers a daily habit. Zero rewards take the defaults.
func (e *Engine) AddHabit(in HabitInput) (*Outcome, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := validDomain(in.Domain); err != nil {
		return nil, err
	}
	if in.BaseXP < 0 || in.BaseGold < 0 {
		return nil, ErrNegativeAmount
	}
	diff := in.Difficulty
	if !diff.IsValid() {
		diff = DefaultDifficulty
	}
	if in.BaseXP == 0 {
		in.BaseXP = DefaultHabitXP
	}
	if in.BaseGold == 0 {
		in.BaseGold = DefaultHabitGold
	}

	e.begin()
	h := Habit{
		ID:         e.newID(),
		Name:       name,
		Domain:     in.Domain,
		Difficulty: diff,
		BaseXP:     in.BaseXP,
		BaseGold:   in.BaseGold,
		CreatedAt:  e.now(),
	}
	e.state.Habits = append(e.state.Habits, h)
	out := e.finish()
	out.Ref = h.ID
	return out, nil
}

// AddQuest registers a one-off quest.
func (e *Engine) AddQuest(in QuestInput) (*Outcome, error) {
	q, err := e.buildQuest(in)
	if err != nil {
		return nil, err
	}
	e.begin()
	e.state.Quests = append(e.state.Quests, q)
	out := e.finish()
	out.Ref = q.ID
	return out, nil
}

func (e *Engine) buildQuest(in QuestInput) (Quest, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return Quest{}, err
	}
	if err := validDomain(in.Domain); err != nil {
		return Quest{}, err
	}
	if in.XP < 0 || in.Gold < 0 {
		return Quest{}, ErrNegativeAmount
	}
	diff := in.Difficulty
	if !diff.IsValid() {
		diff = DefaultDifficulty
	}
	if in.XP == 0 {
		in.XP = DefaultQuestXP
	}
	if in.Gold == 0 {
		in.Gold = DefaultQuestGold
	}
	src := in.Source
	if src == "" {
		src = QuestManual
	}
	return Quest{
		ID:          e.newID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Domain:      in.Domain,
		Difficulty:  diff,
		XP:          in.XP,
		Gold:        in.Gold,
		Deadline:    in.Deadline,
		Source:      src,
		CreatedAt:   e.now(),
	}, nil
}

// AddGeneratedQuests appends a batch of coach quests. Only quests from the
// AI path count toward the generated-quest total.
func (e *Engine) AddGeneratedQuests(in []QuestInput) (*Outcome, error) {
	quests := make([]Quest, 0, len(in))
	for _, qi := range in {
		q, err := e.buildQuest(qi)
		if err != nil {
			return nil, fmt.Errorf("quest %q: %w", qi.Name, err)
		}
		quests = append(quests, q)
	}
	e.begin()
	for _, q := range quests {
		e.state.Quests = append(e.state.Quests, q)
		if q.Source == QuestAI {
			e.state.Stats.AIQuestsGenerated++
		}
	}
	return e.finish(), nil
}

func (e *Engine) AddBadHabit(name string, hpCost, goldPenalty int) (*Outcome, error) {
	n, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if hpCost < 0 || goldPenalty < 0 {
		return nil, ErrNegativeAmount
	}
	if hpCost == 0 {
		hpCost = DefaultBadHabitHP
	}
	e.begin()
	b := BadHabit{ID: e.newID(), Name: n, HPCost: hpCost, GoldPenalty: goldPenalty}
	e.state.BadHabits = append(e.state.BadHabits, b)
	out := e.finish()
	out.Ref = b.ID
	return out, nil
}

func (e *Engine) AddReward(name string, cost int) (*Outcome, error) {
	n, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if cost < 0 {
		return nil, ErrNegativeAmount
	}
	e.begin()
	r := Reward{ID: e.newID(), Name: n, Cost: cost}
	e.state.Rewards = append(e.state.Rewards, r)
	out := e.finish()
	out.Ref = r.ID
	return out, nil
}

// SetHabitDifficulty changes how a habit's rewards are scaled from now on.
func (e *Engine) SetHabitDifficulty(id string, d Difficulty) error {
	if !d.IsValid() {
		return fmt.Errorf("invalid difficulty: %q", d)
	}
	h := e.findHabit(id)
	if h == nil {
		return NotFoundError{Kind: "habit", ID: id}
	}
	h.Difficulty = d
	return nil
}

func (e *Engine) RemoveHabit(id string) error {
	s := e.state
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			s.Habits = append(s.Habits[:i], s.Habits[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "habit", ID: id}
}

func (e *Engine) RemoveQuest(id string) error {
	s := e.state
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			s.Quests = append(s.Quests[:i], s.Quests[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "quest", ID: id}
}

func (e *Engine) RemoveBadHabit(id string) error {
	s := e.state
	for i := range s.BadHabits {
		if s.BadHabits[i].ID == id {
			s.BadHabits = append(s.BadHabits[:i], s.BadHabits[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "bad habit", ID: id}
}

func (e *Engine) RemoveReward(id string) error {
	s := e.state
	for i := range s.Rewards {
		if s.Rewards[i].ID == id {
			s.Rewards = append(s.Rewards[:i], s.Rewards[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "reward", ID: id}
}
