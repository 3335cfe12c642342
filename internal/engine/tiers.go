package engine

import "math"

// Tier is a broad developmental stage derived from character level.
type Tier string

const (
	Tier1 Tier = "1.0"
	Tier2 Tier = "2.0"
	Tier3 Tier = "3.0"
)

// tierStarts maps each tier to the first level inside it, lowest first.
var tierStarts = []struct {
	tier  Tier
	start int
}{
	{Tier1, 1},
	{Tier2, 101},
	{Tier3, 201},
}

// TierForLevel returns the tier containing level. Levels below 1 count as 1.
func TierForLevel(level int) Tier {
	level = max(1, level)
	tier := tierStarts[0].tier
	for _, t := range tierStarts {
		if level >= t.start {
			tier = t.tier
		}
	}
	return tier
}

type TierReport struct {
	Tier Tier
	// NextTier is empty in the top tier.
	NextTier         Tier
	TierProgress     int
	LevelsToNextTier int
	Quadrants        map[Quadrant]float64
	Overall          int
	Balance          int
}

// Classify derives tier standing, quadrant means and balance from level and
// domains. It keeps no state.
func Classify(level int, domains []Domain) TierReport {
	level = max(1, level)
	r := TierReport{Tier: TierForLevel(level)}
	for i, t := range tierStarts {
		if t.tier != r.Tier {
			continue
		}
		r.TierProgress = level - (t.start - 1)
		if i+1 < len(tierStarts) {
			next := tierStarts[i+1]
			r.NextTier = next.tier
			r.LevelsToNextTier = next.start - level
		}
	}
	r.Quadrants = QuadrantScores(domains)
	r.Balance = Balance(r.Quadrants)
	r.Overall = OverallScore(domains)
	return r
}

// QuadrantScores averages member domain scores per quadrant. A quadrant with
// no members present scores the neutral default.
func QuadrantScores(domains []Domain) map[Quadrant]float64 {
	scores := make(map[DomainID]int, len(domains))
	for _, d := range domains {
		scores[d.ID] = d.Score
	}
	out := make(map[Quadrant]float64, len(QuadrantOrder))
	for _, q := range QuadrantOrder {
		sum, n := 0, 0
		for _, id := range quadrantMembers[q] {
			if v, ok := scores[id]; ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			out[q] = DefaultDomainScore
			continue
		}
		out[q] = float64(sum) / float64(n)
	}
	return out
}

// Balance is 100 minus the spread between the best and worst quadrant.
func Balance(quadrants map[Quadrant]float64) int {
	if len(quadrants) == 0 {
		return 100
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range quadrants {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return int(math.Round(100 - (hi - lo)))
}

// OverallScore is the rounded mean of all domain scores.
func OverallScore(domains []Domain) int {
	if len(domains) == 0 {
		return DefaultDomainScore
	}
	sum := 0
	for _, d := range domains {
		sum += d.Score
	}
	return int(math.Round(float64(sum) / float64(len(domains))))
}

// Title is a short rank name for the character level.
func Title(level int) string {
	switch {
	case level >= 201:
		return "Transcendent"
	case level >= 101:
		return "Ascendant"
	case level >= 50:
		return "Sage"
	case level >= 25:
		return "Champion"
	case level >= 10:
		return "Adventurer"
	case level >= 5:
		return "Seeker"
	default:
		return "Novice"
	}
}
