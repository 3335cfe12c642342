package journal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"liferpg/internal/engine"
	"liferpg/internal/notes"
)

// Source lists and reads notes.
type Source interface {
	ListModifiedSince(ctx context.Context, since time.Time) ([]notes.Note, error)
	ReadNote(ctx context.Context, id string) (notes.Content, error)
}

// Batch is the collected result of one sync before it is applied.
type Batch struct {
	Delta    engine.JournalDelta
	Analyzed int
	AIUsed   int
	Skipped  []string
}

type Syncer struct {
	source   Source
	analyzer *Analyzer
	log      *slog.Logger
	now      func() time.Time
}

func NewSyncer(source Source, analyzer *Analyzer, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if analyzer == nil {
		analyzer = NewAnalyzer(nil, log)
	}
	return &Syncer{source: source, analyzer: analyzer, log: log, now: time.Now}
}

// WithClock replaces the sync timestamp source.
func (s *Syncer) WithClock(now func() time.Time) *Syncer {
	s.now = now
	return s
}

// Collect analyzes every note modified after since. Unreadable notes are
// logged and skipped; only a listing failure aborts the batch.
func (s *Syncer) Collect(ctx context.Context, since time.Time) (*Batch, error) {
	started := s.now()
	list, err := s.source.ListModifiedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	b := &Batch{}
	var analyses []Analysis
	for _, n := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := s.source.ReadNote(ctx, n.ID)
		if err != nil {
			s.log.Warn("skipping unreadable note", "note", n.ID, "error", err)
			b.Skipped = append(b.Skipped, n.ID)
			continue
		}
		a := s.analyzer.Analyze(ctx, Note{
			FileName:  n.ID,
			Text:      c.Text,
			WordCount: c.WordCount,
			Quests:    c.Quests,
		})
		if _, ok := a.(AIAnalysis); ok {
			b.AIUsed++
		}
		analyses = append(analyses, a)
	}
	b.Analyzed = len(analyses)
	b.Delta = Merge(analyses, started)
	s.log.Debug("journal batch collected", "notes", b.Analyzed, "ai", b.AIUsed, "skipped", len(b.Skipped))
	return b, nil
}

// Run collects notes since the last sync and applies them to eng.
func (s *Syncer) Run(ctx context.Context, eng *engine.Engine) (*Batch, *engine.Outcome, error) {
	b, err := s.Collect(ctx, eng.State().Journal.LastSyncAt)
	if err != nil {
		return nil, nil, err
	}
	out, err := eng.ApplyJournalSync(b.Delta)
	if err != nil {
		return nil, nil, fmt.Errorf("apply journal sync: %w", err)
	}
	return b, out, nil
}
