// Package game wires the engine to persistence and the optional AI and notes
// collaborators. Every mutation loads the saved state, runs the daily cycle,
// applies one operation and saves the whole state back.
package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"liferpg/internal/ai"
	"liferpg/internal/coach"
	"liferpg/internal/config"
	"liferpg/internal/engine"
	"liferpg/internal/journal"
	"liferpg/internal/notes"
	"liferpg/internal/storage"
)

// Backup reasons.
const (
	ReasonReset   = "reset"
	ReasonRetake  = "retake"
	ReasonManual  = "manual"
	ReasonRestore = "restore"
)

type Service struct {
	db    *sql.DB
	log   *slog.Logger
	cfg   config.Config
	key   string
	now   func() time.Time
	newID func() string

	client ai.Completer
	source journal.Source
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithCompleter replaces the text-generation client built from config.
func WithCompleter(c ai.Completer) Option {
	return func(s *Service) { s.client = c }
}

// WithNoteSource replaces the markdown directory built from config.
func WithNoteSource(src journal.Source) Option {
	return func(s *Service) { s.source = src }
}

func NewService(db *sql.DB, cfg *config.Config, log *slog.Logger, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		db:  db,
		log: log,
		cfg: *cfg,
		key: storage.MainStateKey,
		now: time.Now,
	}
	if cfg.AIEnabled() {
		s.client = ai.NewClient(ai.Config{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
			Timeout:     cfg.AI.Timeout,
		})
	}
	if cfg.Journal.Dir != "" {
		s.source = notes.NewDirSource(cfg.Journal.Dir, cfg.Journal.Folder, cfg.Journal.Tag)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Config() config.Config { return s.cfg }

func (s *Service) AIConfigured() bool {
	return s.client != nil && s.client.IsConfigured()
}

func (s *Service) engine(st *engine.CharacterState) *engine.Engine {
	opts := []engine.Option{engine.WithClock(s.now)}
	if s.newID != nil {
		opts = append(opts, engine.WithIDs(s.newID))
	}
	st.GameDifficulty = engine.ParseGameDifficulty(s.cfg.Difficulty)
	return engine.New(st, opts...)
}

// Do runs fn against the saved state inside one transaction. The daily cycle
// runs first so fn always sees the current day. Nothing is saved when fn
// fails.
func (s *Service) Do(ctx context.Context, fn func(e *engine.Engine) (*engine.Outcome, error)) (*engine.Outcome, error) {
	return s.do(ctx, func(_ *sql.Tx, e *engine.Engine) (*engine.Outcome, error) {
		return fn(e)
	})
}

// do is Do with access to the open transaction. With a single pooled
// connection every other write in fn must go through tx.
func (s *Service) do(ctx context.Context, fn func(tx *sql.Tx, e *engine.Engine) (*engine.Outcome, error)) (*engine.Outcome, error) {
	var result *engine.Outcome
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := storage.NewStateRepo(tx)
		now := s.now()
		st, err := repo.GetOrCreate(ctx, s.key, now)
		if err != nil {
			return err
		}
		eng := s.engine(st)
		result = eng.RunDailyCycle()

		out, err := fn(tx, eng)
		if err != nil {
			return err
		}
		result.Merge(out)
		if out != nil {
			result.Ref = out.Ref
		}
		return repo.Save(ctx, s.key, eng.State(), now)
	})
	if err != nil {
		return nil, err
	}
	for _, ev := range result.Events {
		s.log.Debug("event", "kind", ev.Kind, "message", ev.Message, "amount", ev.Amount)
	}
	return result, nil
}

// View returns the current state after the daily cycle has been applied and
// saved, with the events the cycle produced.
func (s *Service) View(ctx context.Context) (*engine.CharacterState, *engine.Outcome, error) {
	var st *engine.CharacterState
	out, err := s.Do(ctx, func(e *engine.Engine) (*engine.Outcome, error) {
		st = e.State()
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return st, out, nil
}

// SyncResult reports one journal sync.
type SyncResult struct {
	Batch   *journal.Batch
	Outcome *engine.Outcome
}

// SyncJournals analyzes notes changed since the last sync and applies them as
// one batch. Analysis runs outside the transaction.
func (s *Service) SyncJournals(ctx context.Context) (*SyncResult, error) {
	if s.source == nil {
		return nil, errors.New("no journal directory configured (set journal.dir or LIFERPG_JOURNAL_DIR)")
	}
	st, _, err := s.View(ctx)
	if err != nil {
		return nil, err
	}

	var client ai.Completer
	if s.cfg.Journal.UseAI {
		client = s.client
	}
	syncer := journal.NewSyncer(s.source, journal.NewAnalyzer(client, s.log), s.log).WithClock(s.now)
	batch, err := syncer.Collect(ctx, st.Journal.LastSyncAt)
	if err != nil {
		return nil, err
	}

	out, err := s.Do(ctx, func(e *engine.Engine) (*engine.Outcome, error) {
		return e.ApplyJournalSync(batch.Delta)
	})
	if err != nil {
		return nil, fmt.Errorf("apply journal sync: %w", err)
	}
	s.log.Info("journal sync finished", "notes", batch.Analyzed, "ai", batch.AIUsed, "skipped", len(batch.Skipped))
	return &SyncResult{Batch: batch, Outcome: out}, nil
}

// Chat sends message to the coach and stores the exchange. On failure the
// state is left unchanged.
func (s *Service) Chat(ctx context.Context, message string) (string, *engine.Outcome, error) {
	st, _, err := s.View(ctx)
	if err != nil {
		return "", nil, err
	}
	reply, err := coach.New(s.client, s.log).Reply(ctx, st, message)
	if err != nil {
		return "", nil, err
	}
	out, err := s.Do(ctx, func(e *engine.Engine) (*engine.Outcome, error) {
		return e.RecordChat(coach.Exchange(message, reply)...), nil
	})
	if err != nil {
		return "", nil, err
	}
	return reply, out, nil
}

// GenerateQuests asks the coach for quests and adds them.
func (s *Service) GenerateQuests(ctx context.Context, count int) (coach.Generated, *engine.Outcome, error) {
	st, _, err := s.View(ctx)
	if err != nil {
		return coach.Generated{}, nil, err
	}
	gen := coach.New(s.client, s.log).GenerateQuests(ctx, st, count)
	out, err := s.Do(ctx, func(e *engine.Engine) (*engine.Outcome, error) {
		return e.AddGeneratedQuests(gen.Quests)
	})
	if err != nil {
		return coach.Generated{}, nil, err
	}
	return gen, out, nil
}

// Assess finalizes an assessment session. A retake backs up the previous
// character first.
func (s *Service) Assess(ctx context.Context, name string, session *engine.AssessmentSession) (*engine.Outcome, error) {
	return s.do(ctx, func(tx *sql.Tx, e *engine.Engine) (*engine.Outcome, error) {
		if e.State().HasCharacter() {
			if _, err := insertBackup(ctx, tx, s.key, e.State(), ReasonRetake, "", s.now()); err != nil {
				return nil, err
			}
		}
		return e.FinalizeAssessment(name, session)
	})
}

// Reset backs up the current state and starts over.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	var id int64
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := storage.NewStateRepo(tx)
		st, err := repo.Get(ctx, s.key)
		if err != nil {
			return err
		}
		now := s.now()
		if st != nil {
			if id, err = storage.NewBackupRepo(tx).Insert(ctx, s.key, ReasonReset, st, now); err != nil {
				return err
			}
		}
		return repo.Save(ctx, s.key, engine.NewState(now), now)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Backup snapshots the current state with an optional note.
func (s *Service) Backup(ctx context.Context, note string) (int64, error) {
	var id int64
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		st, err := storage.NewStateRepo(tx).GetOrCreate(ctx, s.key, s.now())
		if err != nil {
			return err
		}
		id, err = insertBackup(ctx, tx, s.key, st, ReasonManual, note, s.now())
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) ListBackups(ctx context.Context) ([]storage.Backup, error) {
	return storage.NewBackupRepo(s.db).List(ctx, s.key)
}

// Restore replaces the current state with backup id. The state being
// replaced is itself backed up.
func (s *Service) Restore(ctx context.Context, id int64) (*engine.CharacterState, error) {
	var restored *engine.CharacterState
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		backups := storage.NewBackupRepo(tx)
		b, err := backups.Get(ctx, id)
		if err != nil {
			return err
		}
		if b == nil || b.Key != s.key {
			return engine.NotFoundError{Kind: "backup", ID: fmt.Sprint(id)}
		}
		restored, err = b.Decode()
		if err != nil {
			return err
		}

		repo := storage.NewStateRepo(tx)
		now := s.now()
		cur, err := repo.Get(ctx, s.key)
		if err != nil {
			return err
		}
		if cur != nil {
			note := fmt.Sprintf("replaced by backup #%d", id)
			if _, err := insertBackup(ctx, tx, s.key, cur, ReasonRestore, note, now); err != nil {
				return err
			}
		}
		return repo.Save(ctx, s.key, restored, now)
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

func insertBackup(ctx context.Context, db storage.DBTX, key string, st *engine.CharacterState, reason, note string, at time.Time) (int64, error) {
	repo := storage.NewBackupRepo(db)
	id, err := repo.Insert(ctx, key, reason, st, at)
	if err != nil {
		return 0, err
	}
	if note != "" {
		if err := repo.SetNote(ctx, id, note); err != nil {
			return 0, err
		}
	}
	return id, nil
}
