package engine

import (
	"fmt"
	"strings"
)

// DomainID names one of the nine fixed life areas.
type DomainID string

const (
	DomainPsychological DomainID = "psychologicalWellbeing"
	DomainHealth        DomainID = "health"
	DomainTimeUse       DomainID = "timeUse"
	DomainEducation     DomainID = "education"
	DomainCulture       DomainID = "culturalResilience"
	DomainGovernance    DomainID = "goodGovernance"
	DomainCommunity     DomainID = "communityVitality"
	DomainEcology       DomainID = "ecologicalAwareness"
	DomainLiving        DomainID = "livingStandards"
)

// DomainOrder is the canonical display and iteration order.
var DomainOrder = []DomainID{
	DomainPsychological,
	DomainHealth,
	DomainTimeUse,
	DomainEducation,
	DomainCulture,
	DomainGovernance,
	DomainCommunity,
	DomainEcology,
	DomainLiving,
}

const (
	DefaultDomainScore = 50
	MaxDomainScore     = 100
)

type DomainInfo struct {
	ID    DomainID
	Name  string
	Icon  string
	Short string
}

var domainInfo = map[DomainID]DomainInfo{
	DomainPsychological: {DomainPsychological, "Psychological Wellbeing", "🧠", "psych"},
	DomainHealth:        {DomainHealth, "Health", "💪", "health"},
	DomainTimeUse:       {DomainTimeUse, "Time Use", "⏰", "time"},
	DomainEducation:     {DomainEducation, "Education", "📚", "edu"},
	DomainCulture:       {DomainCulture, "Cultural Resilience", "🎭", "culture"},
	DomainGovernance:    {DomainGovernance, "Good Governance", "⚖️", "gov"},
	DomainCommunity:     {DomainCommunity, "Community Vitality", "🤝", "community"},
	DomainEcology:       {DomainEcology, "Ecological Awareness", "🌍", "eco"},
	DomainLiving:        {DomainLiving, "Living Standards", "💰", "living"},
}

func (d DomainID) IsValid() bool {
	_, ok := domainInfo[d]
	return ok
}

func (d DomainID) Info() DomainInfo {
	if info, ok := domainInfo[d]; ok {
		return info
	}
	return DomainInfo{ID: d, Name: string(d), Icon: "❔", Short: string(d)}
}

// ParseDomain accepts a domain id or its short alias, case-insensitively.
func ParseDomain(input string) (DomainID, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownDomain)
	}
	for _, id := range DomainOrder {
		info := domainInfo[id]
		if s == strings.ToLower(string(id)) || s == info.Short {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, input)
}

// Quadrant groups domains into the four developmental areas.
type Quadrant string

const (
	QuadrantMind     Quadrant = "mind"
	QuadrantBody     Quadrant = "body"
	QuadrantSpirit   Quadrant = "spirit"
	QuadrantVocation Quadrant = "vocation"
)

var QuadrantOrder = []Quadrant{QuadrantMind, QuadrantBody, QuadrantSpirit, QuadrantVocation}

var quadrantMembers = map[Quadrant][]DomainID{
	QuadrantMind:     {DomainPsychological, DomainEducation},
	QuadrantBody:     {DomainHealth, DomainTimeUse},
	QuadrantSpirit:   {DomainCulture, DomainCommunity, DomainEcology},
	QuadrantVocation: {DomainGovernance, DomainLiving},
}

// QuadrantMembers returns the domains that make up q.
func QuadrantMembers(q Quadrant) []DomainID {
	return append([]DomainID(nil), quadrantMembers[q]...)
}

// QuadrantFor returns the quadrant a domain belongs to.
func QuadrantFor(d DomainID) (Quadrant, bool) {
	for _, q := range QuadrantOrder {
		for _, m := range quadrantMembers[q] {
			if m == d {
				return q, true
			}
		}
	}
	return "", false
}
