package engine

import (
	"fmt"
	"strings"
)

type InnTier string

const (
	InnCampfire InnTier = "campfire"
	InnTavern   InnTier = "tavern"
	InnInn      InnTier = "inn"
	InnRoyal    InnTier = "royal"
)

var InnTierOrder = []InnTier{InnCampfire, InnTavern, InnInn, InnRoyal}

type InnRate struct {
	Cost int
	// Heal is the HP restored; FullHeal overrides it.
	Heal     int
	FullHeal bool
}

var innRates = map[InnTier]InnRate{
	InnCampfire: {Cost: 0, Heal: 10},
	InnTavern:   {Cost: 10, Heal: 30},
	InnInn:      {Cost: 25, Heal: 60},
	InnRoyal:    {Cost: 60, FullHeal: true},
}

func (t InnTier) IsValid() bool {
	_, ok := innRates[t]
	return ok
}

func (t InnTier) Rate() InnRate { return innRates[t] }

func ParseInnTier(input string) (InnTier, error) {
	t := InnTier(strings.ToLower(strings.TrimSpace(input)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown inn tier %q (want campfire, tavern, inn or royal)", input)
	}
	return t, nil
}

type SleepQuality string

const (
	SleepTerrible SleepQuality = "terrible"
	SleepPoor     SleepQuality = "poor"
	SleepOkay     SleepQuality = "okay"
	SleepGood     SleepQuality = "good"
	SleepGreat    SleepQuality = "great"
)

var SleepQualityOrder = []SleepQuality{SleepTerrible, SleepPoor, SleepOkay, SleepGood, SleepGreat}

var sleepEffects = map[SleepQuality]int{
	SleepTerrible: -10,
	SleepPoor:     -5,
	SleepOkay:     5,
	SleepGood:     15,
	SleepGreat:    25,
}

func (q SleepQuality) IsValid() bool {
	_, ok := sleepEffects[q]
	return ok
}

// HPEffect is the HP change a night of this quality applies.
func (q SleepQuality) HPEffect() int { return sleepEffects[q] }

func ParseSleepQuality(input string) (SleepQuality, error) {
	q := SleepQuality(strings.ToLower(strings.TrimSpace(input)))
	if !q.IsValid() {
		return "", fmt.Errorf("unknown sleep quality %q", input)
	}
	return q, nil
}

// BuyReward spends gold on a user-defined reward.
func (e *Engine) BuyReward(id string) (*Outcome, error) {
	var r *Reward
	for i := range e.state.Rewards {
		if e.state.Rewards[i].ID == id {
			r = &e.state.Rewards[i]
		}
	}
	if r == nil {
		return nil, NotFoundError{Kind: "reward", ID: id}
	}
	if e.state.Gold < r.Cost {
		return nil, InsufficientGoldError{Need: r.Cost, Have: e.state.Gold}
	}
	e.begin()
	e.state.Gold -= r.Cost
	r.TimesBought++
	e.state.Stats.TotalRewardsBought++
	e.emit(Event{Kind: EventRewardBought, Message: r.Name, Gold: -r.Cost, Ref: r.ID})
	e.logActivity(Activity{Category: ActivityReward, Description: r.Name, Gold: -r.Cost})
	return e.finish(), nil
}

// RestAtInn trades gold for HP.
func (e *Engine) RestAtInn(tier InnTier) (*Outcome, error) {
	if !tier.IsValid() {
		return nil, fmt.Errorf("unknown inn tier %q", tier)
	}
	s := e.state
	if s.HP >= s.MaxHP {
		return nil, ErrFullHealth
	}
	rate := tier.Rate()
	if s.Gold < rate.Cost {
		return nil, InsufficientGoldError{Need: rate.Cost, Have: s.Gold}
	}
	e.begin()
	s.Gold -= rate.Cost
	amount := rate.Heal
	if rate.FullHeal {
		amount = s.MaxHP
	}
	healed := e.heal(amount)
	msg := fmt.Sprintf("Rested at the %s", tier)
	e.emit(Event{Kind: EventRested, Message: msg, Amount: healed, Gold: -rate.Cost})
	e.logActivity(Activity{Category: ActivityInn, Description: msg, HP: healed, Gold: -rate.Cost})
	return e.finish(), nil
}

// LogSleep records last night's sleep. A bad night hurts but never faints:
// HP stays at 1 or more.
func (e *Engine) LogSleep(q SleepQuality) (*Outcome, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("unknown sleep quality %q", q)
	}
	e.begin()
	s := e.state
	effect := q.HPEffect()
	before := s.HP
	if effect >= 0 {
		e.heal(effect)
	} else {
		s.HP = clamp(s.HP+effect, min(1, s.HP), s.MaxHP)
	}
	change := s.HP - before

	entries := append(s.SleepLog, SleepEntry{Quality: q, HPChange: change, Timestamp: e.now()})
	if len(entries) > SleepLogLimit {
		entries = entries[len(entries)-SleepLogLimit:]
	}
	s.SleepLog = entries

	msg := fmt.Sprintf("Slept %s", q)
	e.emit(Event{Kind: EventSleepLogged, Message: msg, Amount: change})
	e.logActivity(Activity{Category: ActivitySleep, Description: msg, HP: change})
	return e.finish(), nil
}
