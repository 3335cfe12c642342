// Package journal turns journal notes into bounded progression deltas.
package journal

import (
	"math"
	"time"

	"liferpg/internal/engine"
)

const (
	MaxRelevance    = 10
	MaxAISentiment  = 10
	MaxSuggestedXP  = 50
	MinSuggestedHP  = -20
	MaxSuggestedHP  = 10
	WordsPerGold    = 100
	ImpactScale     = 0.5
	OfflineSentNorm = 5
)

// Source values recorded on journal records.
const (
	SourceOffline = "offline"
	SourceAI      = "ai"
)

// Note is one note handed to the analyzer.
type Note struct {
	FileName  string
	Text      string
	WordCount int
	Quests    []string
}

// Analysis is either an OfflineAnalysis or an AIAnalysis.
type Analysis interface {
	Note() Note
	Offline() OfflineAnalysis
	isAnalysis()
}

// OfflineAnalysis is the keyword heuristic result, always available.
type OfflineAnalysis struct {
	Source    Note
	Relevance map[engine.DomainID]int
	Sentiment int
}

func (a OfflineAnalysis) Note() Note { return a.Source }
func (a OfflineAnalysis) Offline() OfflineAnalysis { return a }
func (OfflineAnalysis) isAnalysis() {}

// AIAnalysis carries the service's reading of a note next to the offline one.
type AIAnalysis struct {
	Base         OfflineAnalysis
	Relevance    map[engine.DomainID]int
	Sentiment    int
	Achievements []string
	Challenges   []string
	SuggestedXP  int
	SuggestedHP  int
}

func (a AIAnalysis) Note() Note { return a.Base.Source }
func (a AIAnalysis) Offline() OfflineAnalysis { return a.Base }
func (AIAnalysis) isAnalysis() {}

// Suggestion returns the XP and HP delta a note contributes to a sync.
func Suggestion(a Analysis) (xp, hp int) {
	switch v := a.(type) {
	case AIAnalysis:
		return v.SuggestedXP, v.SuggestedHP
	case OfflineAnalysis:
		return offlineSuggestion(v.Sentiment)
	}
	return 0, 0
}

func offlineSuggestion(s int) (xp, hp int) {
	xp = max(0, s*5)
	switch {
	case s < -2:
		hp = -min(20, -s*2)
	case s > 2:
		hp = min(10, s)
	}
	return xp, hp
}

// Impact is the per-domain score pressure of one note.
func Impact(a Analysis) map[engine.DomainID]float64 {
	var rel map[engine.DomainID]int
	var norm float64
	switch v := a.(type) {
	case AIAnalysis:
		rel = v.Relevance
		norm = float64(v.Sentiment) / MaxAISentiment
	case OfflineAnalysis:
		rel = v.Relevance
		norm = math.Max(-1, math.Min(1, float64(v.Sentiment)/OfflineSentNorm))
	}
	out := make(map[engine.DomainID]float64, len(rel))
	for id, r := range rel {
		if r == 0 {
			continue
		}
		out[id] = float64(r) * norm * ImpactScale
	}
	return out
}

// Record builds the retained summary for a note.
func Record(a Analysis, at time.Time) engine.JournalRecord {
	n := a.Note()
	xp, hp := Suggestion(a)
	rec := engine.JournalRecord{
		FileName:         n.FileName,
		WordCount:        n.WordCount,
		DomainImpact:     Impact(a),
		SuggestedXP:      xp,
		SuggestedHPDelta: hp,
		AnalyzedAt:       at,
	}
	switch v := a.(type) {
	case AIAnalysis:
		rec.Source = SourceAI
		rec.SentimentScore = v.Sentiment
		rec.Achievements = v.Achievements
		rec.Challenges = v.Challenges
	case OfflineAnalysis:
		rec.Source = SourceOffline
		rec.SentimentScore = v.Sentiment
	}
	return rec
}
