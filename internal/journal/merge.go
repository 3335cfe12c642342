package journal

import (
	"time"

	"liferpg/internal/engine"
)

// Merge folds a batch of analyses into one delta. Every aggregate is a sum
// or a mean, so the result does not depend on the order of analyses.
func Merge(analyses []Analysis, at time.Time) engine.JournalDelta {
	d := engine.JournalDelta{
		DomainDeltas: make(map[engine.DomainID]int),
		SyncedAt:     at,
	}
	if len(analyses) == 0 {
		return d
	}

	sums := make(map[engine.DomainID]float64)
	for _, a := range analyses {
		n := a.Note()
		xp, hp := Suggestion(a)
		d.XP += xp
		d.HPDelta += hp
		d.Gold += n.WordCount / WordsPerGold

		for id, v := range Impact(a) {
			sums[id] += v
		}
		for _, q := range n.Quests {
			d.NoteQuests = append(d.NoteQuests, engine.NoteQuest{FileName: n.FileName, Text: q})
		}
		d.Records = append(d.Records, Record(a, at))
	}

	count := float64(len(analyses))
	for _, id := range engine.DomainOrder {
		if delta := engine.ClampDomainDelta(sums[id] / count); delta != 0 {
			d.DomainDeltas[id] = delta
		}
	}
	return d
}
