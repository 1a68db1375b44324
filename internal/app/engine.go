package app

import (
	"sync"
	"time"

	"drb-quiz-service/internal/clock"
	"drb-quiz-service/internal/domain"
)

// DefaultAdvanceDelay is how long answer feedback stays on screen before the next question.
const DefaultAdvanceDelay = 1500 * time.Millisecond

// Engine is a single playthrough of a question bank.
type Engine struct {
	id        string
	bank      *domain.QuestionBank
	scheduler clock.Scheduler
	delay     time.Duration
	now       func() time.Time

	mu          sync.Mutex
	phase       domain.Phase
	index       int
	score       int
	answers     []bool
	pending     *int
	feedback    bool
	generation  uint64
	timer       clock.Handle
	result      *domain.ResultSummary
	closed      bool
	subscribers map[chan domain.View]struct{}
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithAdvanceDelay overrides DefaultAdvanceDelay.
func WithAdvanceDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithClock sets the time source used for result timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(id string, bank *domain.QuestionBank, scheduler clock.Scheduler, opts ...EngineOption) *Engine {
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	e := &Engine{
		id:          id,
		bank:        bank,
		scheduler:   scheduler,
		delay:       DefaultAdvanceDelay,
		now:         time.Now,
		phase:       domain.PhaseNotStarted,
		subscribers: make(map[chan domain.View]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// Bank returns the question bank being played.
func (e *Engine) Bank() *domain.QuestionBank {
	return e.bank
}

// Start begins a fresh playthrough from any phase. Any deferred advance from
// the previous playthrough is invalidated.
func (e *Engine) Start() domain.View {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.phase = domain.PhaseInProgress
	e.index = 0
	e.score = 0
	e.answers = nil
	e.pending = nil
	e.feedback = false
	e.result = nil
	return e.broadcastLocked()
}

// SubmitAnswer evaluates option for the current question. It reports false and
// leaves state untouched when no answer is expected or option is out of range.
func (e *Engine) SubmitAnswer(option int) (domain.View, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != domain.PhaseInProgress || e.feedback || e.closed {
		return e.snapshotLocked(), false
	}
	question := e.bank.Question(e.index)
	if option < 0 || option >= len(question.Options) {
		return e.snapshotLocked(), false
	}

	selected := option
	e.pending = &selected
	e.feedback = true
	correct := question.Correct(option)
	if correct {
		e.score++
	}
	e.answers = append(e.answers, correct)

	generation := e.generation
	e.timer = e.scheduler.AfterFunc(e.delay, func() {
		e.advance(generation)
	})
	return e.broadcastLocked(), true
}

// advance runs when the feedback delay elapses.
func (e *Engine) advance(generation uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if generation != e.generation || e.closed || e.phase != domain.PhaseInProgress || !e.feedback {
		return
	}
	e.timer = nil

	if e.index == e.bank.Len()-1 {
		e.phase = domain.PhaseFinished
		summary := e.summaryLocked()
		e.result = &summary
	} else {
		e.index++
		e.pending = nil
		e.feedback = false
	}
	e.broadcastLocked()
}

// Snapshot returns the current view.
func (e *Engine) Snapshot() domain.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Result returns the summary once the playthrough has finished.
func (e *Engine) Result() (domain.ResultSummary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return domain.ResultSummary{}, false
	}
	return *e.result, true
}

// Answers returns a copy of the answer log.
func (e *Engine) Answers() []bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]bool(nil), e.answers...)
}

// Subscribe returns a channel that receives a view on every state change,
// starting with the current one. The caller must invoke cancel to avoid leaks.
func (e *Engine) Subscribe() (<-chan domain.View, func()) {
	ch := make(chan domain.View, 8)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	e.subscribers[ch] = struct{}{}
	ch <- e.snapshotLocked()
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

// Close stops any pending advance and closes all subscriptions.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	for ch := range e.subscribers {
		delete(e.subscribers, ch)
		close(ch)
	}
}

func (e *Engine) broadcastLocked() domain.View {
	view := e.snapshotLocked()
	for ch := range e.subscribers {
		select {
		case ch <- view:
		default:
			// Every view is a full snapshot, so a slow reader only needs the newest.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
	return view
}

func (e *Engine) snapshotLocked() domain.View {
	total := e.bank.Len()
	view := domain.View{
		SessionID:       e.id,
		Phase:           e.phase,
		Index:           e.index,
		Total:           total,
		FeedbackVisible: e.feedback,
		Score:           e.score,
		Answers:         append([]bool{}, e.answers...),
	}

	if e.phase == domain.PhaseInProgress {
		q := e.bank.Question(e.index)
		view.Question = &domain.QuestionView{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Options:  q.Options,
			Category: q.Category,
		}
		view.Progress = RoundedPercentage(e.index+1, total)
		if e.feedback {
			correct := q.CorrectOptionIndex
			view.CorrectOption = &correct
		}
	}
	if e.pending != nil {
		selected := *e.pending
		view.PendingSelection = &selected
	}
	if e.result != nil {
		summary := *e.result
		view.Result = &summary
		view.Progress = 100
	}
	return view
}

func (e *Engine) summaryLocked() domain.ResultSummary {
	total := e.bank.Len()
	rank := DeriveRank(e.score, total)
	return domain.ResultSummary{
		Score:      e.score,
		Total:      total,
		Percentage: RoundedPercentage(e.score, total),
		RankLabel:  rank.Label,
		RankEmoji:  rank.Emoji,
		Timestamp:  e.now(),
	}
}
