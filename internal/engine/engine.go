package engine

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for day-boundary bookkeeping.
const DateLayout = "2006-01-02"

// Engine owns a CharacterState and applies every game rule to it.
// It is not safe for concurrent use; callers serialize operations.
type Engine struct {
	state  *CharacterState
	now    func() time.Time
	newID  func() string
	events []Event
}

type Option func(*Engine)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides id generation for new entities.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New wraps state in an Engine. A nil state starts a fresh character.
func New(state *CharacterState, opts ...Option) *Engine {
	e := &Engine{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	if state == nil {
		state = NewState(e.now())
	}
	state.Normalize()
	e.state = state
	return e
}

func (e *Engine) State() *CharacterState { return e.state }

func (e *Engine) Now() time.Time { return e.now() }

// Outcome carries the notable things that happened during one operation.
type Outcome struct {
	Events []Event
	// Ref is the id of the entity an operation created, if any.
	Ref string
}

func (o *Outcome) Has(kind EventKind) bool {
	return len(o.Find(kind)) > 0
}

func (o *Outcome) Find(kind EventKind) []Event {
	if o == nil {
		return nil
	}
	var out []Event
	for _, ev := range o.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// Merge appends other's events to o.
func (o *Outcome) Merge(other *Outcome) {
	if other == nil {
		return
	}
	o.Events = append(o.Events, other.Events...)
}

func (e *Engine) begin() {
	e.events = nil
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// finish closes a mutating operation: achievements are evaluated and the
// phase is re-derived before the collected events are handed back.
func (e *Engine) finish() *Outcome {
	e.evaluateAchievements()
	e.refreshPhase()
	out := &Outcome{Events: e.events}
	e.events = nil
	return out
}

func (e *Engine) today() string {
	return dayOf(e.now())
}

func dayOf(t time.Time) string {
	return t.Format(DateLayout)
}

// daysBetween counts calendar days from a to b, both in DateLayout.
func daysBetween(a, b string) (int, bool) {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, false
	}
	return int(tb.Sub(ta).Hours() / 24), true
}
