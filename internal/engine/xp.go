package engine

import (
	"fmt"
	"math"
	"time"
)

const (
	// XPPerLevel scales the character's per-level XP requirement.
	XPPerLevel = 100
	// DomainXPPerLevel scales each domain's per-level XP requirement.
	DomainXPPerLevel = 50

	LevelUpHPBonus        = 10
	DomainLevelScoreBonus = 2
	EntropyReliefPerGain  = 5
	FaintXPPenalty        = 50
	DomainBossDamage      = 10
)

const (
	PhaseWindow         = 7 * 24 * time.Hour
	PhaseActivityWeight = 10
	DiscoveryMomentum   = 100
	UncertaintyMomentum = 30
)

// XPToNextLevel returns the XP needed to leave the given character level.
func XPToNextLevel(level int) int {
	return max(1, level) * XPPerLevel
}

// DomainXPToNextLevel returns the XP needed to leave the given domain level.
func DomainXPToNextLevel(level int) int {
	return max(1, level) * DomainXPPerLevel
}

// DerivePhase maps entropy and recent XP-earning activity to a phase.
// More activity or less entropy never yields a less advanced phase.
func DerivePhase(entropy, recentActivities int) Phase {
	momentum := recentActivities*PhaseActivityWeight - entropy
	switch {
	case momentum >= DiscoveryMomentum:
		return PhaseDiscovery
	case momentum >= UncertaintyMomentum:
		return PhaseUncertainty
	default:
		return PhaseDissonance
	}
}

func (e *Engine) recentActivities() int {
	cutoff := e.now().Add(-PhaseWindow)
	n := 0
	for _, a := range e.state.ActivityLog {
		if a.Category.EarnsXP() && a.Timestamp.After(cutoff) {
			n++
		}
	}
	return n
}

func (e *Engine) refreshPhase() {
	e.state.CurrentPhase = DerivePhase(e.state.PsychicEntropy, e.recentActivities())
}

// GainXP awards XP (scaled by the current phase) and gold, optionally
// crediting a domain.
func (e *Engine) GainXP(xp, gold int, domain DomainID) (*Outcome, error) {
	if xp < 0 || gold < 0 {
		return nil, ErrNegativeAmount
	}
	if domain != "" && !domain.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	e.begin()
	e.gainXP(xp, gold, domain)
	return e.finish(), nil
}

// gainXP returns the phase-adjusted XP actually credited.
func (e *Engine) gainXP(xp, gold int, domain DomainID) int {
	s := e.state
	e.refreshPhase()
	adjusted := int(math.Round(float64(xp) * s.CurrentPhase.XPMultiplier()))

	s.Gold += gold
	s.TotalGoldEarned += gold
	s.PsychicEntropy = clamp(s.PsychicEntropy-EntropyReliefPerGain, 0, MaxEntropy)
	s.XP += adjusted
	e.emit(Event{Kind: EventXPGained, Amount: adjusted, Gold: gold, Domain: domain})

	if domain != "" {
		e.gainDomainXP(domain, adjusted)
	}
	e.checkLevelUp()
	return adjusted
}

// grant adds a fixed payout with no phase multiplier and no entropy relief.
func (e *Engine) grant(xp, gold int) {
	s := e.state
	s.Gold += gold
	s.TotalGoldEarned += gold
	s.XP += xp
	e.emit(Event{Kind: EventXPGained, Amount: xp, Gold: gold})
	e.checkLevelUp()
}

func (e *Engine) gainDomainXP(id DomainID, xp int) {
	d := e.state.Domain(id)
	if d == nil {
		return
	}
	d.XP += xp
	if d.XP < DomainXPToNextLevel(d.Level) {
		return
	}
	d.Level++
	d.XP = 0
	d.Score = min(MaxDomainScore, d.Score+DomainLevelScoreBonus)
	e.emit(Event{
		Kind:    EventDomainLevelUp,
		Message: fmt.Sprintf("%s reached level %d", id.Info().Name, d.Level),
		Domain:  id,
		Level:   d.Level,
	})
	e.damageLinkedBosses(id)
}

func (e *Engine) checkLevelUp() {
	if e.state.XP >= XPToNextLevel(e.state.Level) {
		e.levelUp()
	}
}

func (e *Engine) levelUp() {
	s := e.state
	before := TierForLevel(s.Level)
	s.Level++
	s.XP = 0
	s.MaxHP += LevelUpHPBonus
	s.HP = s.MaxHP
	after := TierForLevel(s.Level)

	if after != before {
		msg := fmt.Sprintf("Ascended to Human %s at level %d", after, s.Level)
		e.emit(Event{Kind: EventTierUp, Message: msg, Level: s.Level})
		e.logActivity(Activity{Category: ActivityTierUp, Description: msg})
		return
	}
	msg := fmt.Sprintf("Reached level %d", s.Level)
	e.emit(Event{Kind: EventLevelUp, Message: msg, Level: s.Level})
	e.logActivity(Activity{Category: ActivityLevelUp, Description: msg})
}

// TakeDamage reduces HP. Dropping to zero faints the character instead of
// leaving it at zero.
func (e *Engine) TakeDamage(amount int) (*Outcome, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	e.begin()
	e.takeDamage(amount)
	return e.finish(), nil
}

func (e *Engine) takeDamage(amount int) {
	s := e.state
	s.HP -= amount
	if s.HP > 0 {
		e.emit(Event{Kind: EventDamage, Amount: amount})
		return
	}
	s.HP = 0
	s.XP = max(0, s.XP-FaintXPPenalty)
	s.HP = max(1, s.MaxHP/2)
	e.emit(Event{Kind: EventFainted, Amount: amount, Message: "You fainted and lost XP"})
	e.logActivity(Activity{Category: ActivityDamage, Description: "Fainted", XP: -FaintXPPenalty})
}

// Heal restores HP up to MaxHP.
func (e *Engine) Heal(amount int) (*Outcome, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	e.begin()
	e.heal(amount)
	return e.finish(), nil
}

func (e *Engine) heal(amount int) int {
	s := e.state
	before := s.HP
	s.HP = clamp(s.HP+amount, 0, s.MaxHP)
	healed := s.HP - before
	if healed > 0 {
		e.emit(Event{Kind: EventHealed, Amount: healed})
	}
	return healed
}
