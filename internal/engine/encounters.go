package engine

import (
	"fmt"
	"math"
	"strings"
)

const (
	ManualAttackDamage = 10
	ManualAttackCost   = 5
	DungeonMonsterXP   = 5
)

type DungeonTier string

const (
	DungeonBronze  DungeonTier = "bronze"
	DungeonSilver  DungeonTier = "silver"
	DungeonGold    DungeonTier = "gold"
	DungeonDiamond DungeonTier = "diamond"
)

var DungeonTierOrder = []DungeonTier{DungeonBronze, DungeonSilver, DungeonGold, DungeonDiamond}

type DungeonReward struct {
	Minutes     int
	XPPerMinute float64
	GoldBonus   int
}

var dungeonRewards = map[DungeonTier]DungeonReward{
	DungeonBronze:  {Minutes: 25, XPPerMinute: 1.0, GoldBonus: 10},
	DungeonSilver:  {Minutes: 50, XPPerMinute: 1.5, GoldBonus: 25},
	DungeonGold:    {Minutes: 90, XPPerMinute: 2.0, GoldBonus: 50},
	DungeonDiamond: {Minutes: 120, XPPerMinute: 2.5, GoldBonus: 100},
}

func (t DungeonTier) IsValid() bool {
	_, ok := dungeonRewards[t]
	return ok
}

func (t DungeonTier) Reward() DungeonReward {
	return dungeonRewards[t]
}

func ParseDungeonTier(input string) (DungeonTier, error) {
	t := DungeonTier(strings.ToLower(strings.TrimSpace(input)))
	if t == "" {
		return DungeonBronze, nil
	}
	if !t.IsValid() {
		return "", fmt.Errorf("unknown dungeon tier %q (want bronze, silver, gold or diamond)", input)
	}
	return t, nil
}

// BossInput describes a new long-term goal boss.
type BossInput struct {
	Name        string
	Description string
	MaxHP       int
	Domain      DomainID
}

func (e *Engine) AddBoss(in BossInput) (*Outcome, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.MaxHP <= 0 {
		return nil, fmt.Errorf("boss hp must be positive, got %d", in.MaxHP)
	}
	if !in.Domain.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, in.Domain)
	}
	e.begin()
	b := BossFight{
		ID:          e.newID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		MaxHP:       in.MaxHP,
		CurrentHP:   in.MaxHP,
		Domain:      in.Domain,
		CreatedAt:   e.now(),
	}
	e.state.BossFights = append(e.state.BossFights, b)
	out := e.finish()
	out.Ref = b.ID
	return out, nil
}

func (e *Engine) findBoss(id string) *BossFight {
	for i := range e.state.BossFights {
		if e.state.BossFights[i].ID == id {
			return &e.state.BossFights[i]
		}
	}
	return nil
}

// DamageBoss deals damage to a boss. Damaging a defeated boss does nothing.
func (e *Engine) DamageBoss(id string, amount int) (*Outcome, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	b := e.findBoss(id)
	if b == nil {
		return nil, NotFoundError{Kind: "boss", ID: id}
	}
	e.begin()
	e.damageBoss(b, amount)
	return e.finish(), nil
}

// AttackBoss is the paid manual attack.
func (e *Engine) AttackBoss(id string) (*Outcome, error) {
	b := e.findBoss(id)
	if b == nil {
		return nil, NotFoundError{Kind: "boss", ID: id}
	}
	if b.Defeated {
		return &Outcome{}, nil
	}
	if e.state.Gold < ManualAttackCost {
		return nil, InsufficientGoldError{Need: ManualAttackCost, Have: e.state.Gold}
	}
	e.begin()
	e.state.Gold -= ManualAttackCost
	e.damageBoss(b, ManualAttackDamage)
	return e.finish(), nil
}

// AbandonBoss removes a boss without reward.
func (e *Engine) AbandonBoss(id string) error {
	for i, b := range e.state.BossFights {
		if b.ID == id {
			e.state.BossFights = append(e.state.BossFights[:i], e.state.BossFights[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "boss", ID: id}
}

func (e *Engine) damageLinkedBosses(domain DomainID) {
	for i := range e.state.BossFights {
		b := &e.state.BossFights[i]
		if b.Domain == domain && !b.Defeated {
			e.damageBoss(b, DomainBossDamage)
		}
	}
}

func (e *Engine) damageBoss(b *BossFight, amount int) {
	if b.Defeated {
		return
	}
	b.CurrentHP = max(0, b.CurrentHP-amount)
	e.emit(Event{Kind: EventBossDamaged, Amount: amount, Domain: b.Domain, Ref: b.ID,
		Message: fmt.Sprintf("%s took %d damage (%d/%d)", b.Name, amount, b.CurrentHP, b.MaxHP)})
	if b.CurrentHP > 0 {
		return
	}

	now := e.now()
	b.Defeated = true
	b.DefeatedAt = &now
	e.state.Stats.TotalBossesDefeated++
	xp, gold := 2*b.MaxHP, b.MaxHP
	msg := fmt.Sprintf("Defeated %s", b.Name)
	e.emit(Event{Kind: EventBossDefeated, Message: msg, Amount: xp, Gold: gold, Domain: b.Domain, Ref: b.ID})
	e.logActivity(Activity{Category: ActivityBoss, Description: msg, XP: xp, Gold: gold})
	e.grant(xp, gold)
}

// StartDungeon opens the single dungeon slot. targetMinutes <= 0 uses the
// tier's default duration.
func (e *Engine) StartDungeon(tier DungeonTier, targetMinutes int) (*Outcome, error) {
	if !tier.IsValid() {
		return nil, fmt.Errorf("unknown dungeon tier %q", tier)
	}
	if e.state.ActiveDungeon != nil {
		return nil, ErrDungeonActive
	}
	if targetMinutes <= 0 {
		targetMinutes = tier.Reward().Minutes
	}
	e.begin()
	e.state.ActiveDungeon = &Dungeon{
		StartTime:     e.now(),
		TargetMinutes: targetMinutes,
		Tier:          tier,
		Tasks:         []DungeonTask{},
	}
	e.emit(Event{Kind: EventDungeonStarted, Amount: targetMinutes,
		Message: fmt.Sprintf("Entered a %s dungeon for %d minutes", tier, targetMinutes)})
	return e.finish(), nil
}

// AddDungeonTask adds a task monster to the active dungeon.
func (e *Engine) AddDungeonTask(name string) error {
	d := e.state.ActiveDungeon
	if d == nil {
		return ErrNoDungeon
	}
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	d.Tasks = append(d.Tasks, DungeonTask{Name: name})
	return nil
}

// SlayDungeonTask marks the task at index slain. Slaying twice is a no-op.
func (e *Engine) SlayDungeonTask(index int) (*Outcome, error) {
	d := e.state.ActiveDungeon
	if d == nil {
		return nil, ErrNoDungeon
	}
	if index < 0 || index >= len(d.Tasks) {
		return nil, NotFoundError{Kind: "dungeon task", ID: fmt.Sprint(index + 1)}
	}
	t := &d.Tasks[index]
	if t.Slain {
		return &Outcome{}, nil
	}
	e.begin()
	t.Slain = true
	d.MonstersSlain++
	e.emit(Event{Kind: EventMonsterSlain, Message: fmt.Sprintf("Slew %s", t.Name)})
	return e.finish(), nil
}

// DungeonPayout computes the reward for leaving d after elapsed minutes.
func DungeonPayout(d Dungeon, elapsedMinutes int, diff GameDifficulty) (xp, gold int) {
	r := d.Tier.Reward()
	elapsedMinutes = max(0, elapsedMinutes)
	base := float64(elapsedMinutes)*r.XPPerMinute + float64(d.MonstersSlain*DungeonMonsterXP)
	xp = int(math.Round(base * diff.XPMultiplier()))

	bonus := r.GoldBonus
	if elapsedMinutes < d.TargetMinutes {
		bonus /= 2
	}
	gold = int(math.Round(float64(bonus) * diff.GoldMultiplier()))
	return xp, gold
}

// CompleteDungeon pays out and clears the active dungeon. With no dungeon
// active it does nothing.
func (e *Engine) CompleteDungeon() (*Outcome, error) {
	d := e.state.ActiveDungeon
	if d == nil {
		return &Outcome{}, nil
	}
	e.begin()
	elapsed := int(e.now().Sub(d.StartTime).Minutes())
	elapsed = max(0, elapsed)
	xp, gold := DungeonPayout(*d, elapsed, e.state.GameDifficulty)

	e.state.ActiveDungeon = nil
	e.state.Stats.TotalDungeonsCleared++
	e.state.Stats.TotalFocusMinutes += elapsed

	msg := fmt.Sprintf("Cleared a %s dungeon after %d minutes", d.Tier, elapsed)
	e.emit(Event{Kind: EventDungeonCleared, Message: msg, Amount: xp, Gold: gold})
	e.logActivity(Activity{Category: ActivityDungeon, Description: msg, XP: xp, Gold: gold})
	e.grant(xp, gold)
	return e.finish(), nil
}

// AbandonDungeon clears the active dungeon without reward.
func (e *Engine) AbandonDungeon() *Outcome {
	if e.state.ActiveDungeon == nil {
		return &Outcome{}
	}
	e.begin()
	e.state.ActiveDungeon = nil
	e.emit(Event{Kind: EventDungeonAbandoned, Message: "Fled the dungeon"})
	return e.finish()
}
