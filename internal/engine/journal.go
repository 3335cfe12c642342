package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	JournalHistoryLimit = 10
	// MaxSyncDomainDelta bounds how far one sync may move a domain score.
	MaxSyncDomainDelta = 5

	NoteQuestXP   = 20
	NoteQuestGold = 10
)

// NoteQuestDomain receives the reward of quests ticked off inside notes.
const NoteQuestDomain = DomainEducation

// JournalRecord is the retained summary of one analyzed note.
type JournalRecord struct {
	FileName         string               `json:"fileName"`
	WordCount        int                  `json:"wordCount"`
	SentimentScore   int                  `json:"sentimentScore"`
	DomainImpact     map[DomainID]float64 `json:"domainImpact"`
	SuggestedXP      int                  `json:"suggestedXp"`
	SuggestedHPDelta int                  `json:"suggestedHpDelta"`
	Source           string               `json:"source"`
	Achievements     []string             `json:"achievements,omitempty"`
	Challenges       []string             `json:"challenges,omitempty"`
	AnalyzedAt       time.Time            `json:"analyzedAt"`
}

// NoteQuest is a checked "- [x] ... #quest" line found in a note.
type NoteQuest struct {
	FileName string
	Text     string
}

func (q NoteQuest) key() string {
	return q.FileName + "|" + strings.TrimSpace(q.Text)
}

// JournalDelta is the aggregate effect of one sync batch.
type JournalDelta struct {
	XP           int
	Gold         int
	HPDelta      int
	DomainDeltas map[DomainID]int
	Records      []JournalRecord
	NoteQuests   []NoteQuest
	SyncedAt     time.Time
}

// ApplyJournalSync applies a merged batch in one step. Domain deltas are
// clamped to MaxSyncDomainDelta here as well, whatever the merger produced.
func (e *Engine) ApplyJournalSync(d JournalDelta) (*Outcome, error) {
	if d.XP < 0 || d.Gold < 0 {
		return nil, ErrNegativeAmount
	}
	for id := range d.DomainDeltas {
		if !id.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, id)
		}
	}

	e.begin()
	s := e.state
	if d.XP > 0 || d.Gold > 0 {
		e.gainXP(d.XP, d.Gold, "")
	}
	switch {
	case d.HPDelta < 0:
		e.takeDamage(-d.HPDelta)
	case d.HPDelta > 0:
		e.heal(d.HPDelta)
	}

	for _, id := range DomainOrder {
		delta, ok := d.DomainDeltas[id]
		if !ok || delta == 0 {
			continue
		}
		delta = clamp(delta, -MaxSyncDomainDelta, MaxSyncDomainDelta)
		dom := s.Domain(id)
		dom.Score = clamp(dom.Score+delta, 0, MaxDomainScore)
	}

	e.claimNoteQuests(d.NoteQuests)

	recent := append(s.Journal.Recent, d.Records...)
	if len(recent) > JournalHistoryLimit {
		recent = recent[len(recent)-JournalHistoryLimit:]
	}
	s.Journal.Recent = recent
	s.Journal.TotalEntriesSynced += len(d.Records)
	syncedAt := d.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = e.now()
	}
	s.Journal.LastSyncAt = syncedAt

	if len(d.Records) > 0 {
		msg := fmt.Sprintf("Synced %d journal note(s)", len(d.Records))
		e.emit(Event{Kind: EventJournalSynced, Message: msg, Amount: d.XP, Gold: d.Gold})
		e.logActivity(Activity{Category: ActivityJournal, Description: msg, XP: d.XP, Gold: d.Gold, HP: d.HPDelta})
	}
	return e.finish(), nil
}

// claimNoteQuests pays each ticked note quest once across all syncs.
func (e *Engine) claimNoteQuests(quests []NoteQuest) {
	s := e.state
	claimed := make(map[string]bool, len(s.Journal.ClaimedQuests))
	for _, k := range s.Journal.ClaimedQuests {
		claimed[k] = true
	}
	fresh := 0
	for _, q := range quests {
		k := q.key()
		if claimed[k] {
			continue
		}
		claimed[k] = true
		s.Journal.ClaimedQuests = append(s.Journal.ClaimedQuests, k)
		fresh++
		e.emit(Event{Kind: EventNoteQuest, Message: strings.TrimSpace(q.Text), Domain: NoteQuestDomain})
	}
	if n := len(s.Journal.ClaimedQuests); n > ClaimedQuestLimit {
		s.Journal.ClaimedQuests = s.Journal.ClaimedQuests[n-ClaimedQuestLimit:]
	}
	if fresh == 0 {
		return
	}
	e.gainXP(fresh*NoteQuestXP, fresh*NoteQuestGold, NoteQuestDomain)
	e.logActivity(Activity{Category: ActivityQuest,
		Description: fmt.Sprintf("Completed %d quest(s) from notes", fresh),
		XP:          fresh * NoteQuestXP, Gold: fresh * NoteQuestGold})
}

// ClampDomainDelta rounds a mean impact and bounds it for one sync.
func ClampDomainDelta(mean float64) int {
	return int(math.Round(clampFloat(mean, -MaxSyncDomainDelta, MaxSyncDomainDelta)))
}
