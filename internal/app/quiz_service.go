package app

import (
	"context"

	"drb-quiz-service/internal/clock"
	"drb-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// SessionRepository abstracts where live engines are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(engine *Engine)
	Get(sessionID string) (*Engine, bool)
	Delete(sessionID string)
}

// BankRepository loads validated question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (*domain.QuestionBank, error)
}

// QuizService contains the quiz use cases shared by every transport.
type QuizService struct {
	sessions  SessionRepository
	banks     BankRepository
	scheduler clock.Scheduler
	opts      []EngineOption
	newID     func() string
}

// ServiceOption customizes a QuizService.
type ServiceOption func(*QuizService)

// WithEngineOptions applies opts to every engine the service opens.
func WithEngineOptions(opts ...EngineOption) ServiceOption {
	return func(s *QuizService) {
		s.opts = append(s.opts, opts...)
	}
}

// WithIDGenerator replaces the UUID session id generator.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *QuizService) {
		s.newID = newID
	}
}

func NewQuizService(store SessionRepository, banks BankRepository, scheduler clock.Scheduler, opts ...ServiceOption) *QuizService {
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	s := &QuizService{
		sessions:  store,
		banks:     banks,
		scheduler: scheduler,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a new, not yet started session over the named bank.
func (s *QuizService) Open(ctx context.Context, bankID string) (domain.View, error) {
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return domain.View{}, err
	}
	engine := NewEngine(s.newID(), bank, s.scheduler, s.opts...)
	s.sessions.Put(engine)
	return engine.Snapshot(), nil
}

// Engine returns the live engine for a session.
func (s *QuizService) Engine(_ context.Context, sessionID string) (*Engine, error) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return engine, nil
}

// Start starts or restarts the session.
func (s *QuizService) Start(ctx context.Context, sessionID string) (domain.View, error) {
	engine, err := s.Engine(ctx, sessionID)
	if err != nil {
		return domain.View{}, err
	}
	return engine.Start(), nil
}

// SubmitAnswer forwards an answer; accepted is false when the engine ignored it.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, option int) (view domain.View, accepted bool, err error) {
	engine, err := s.Engine(ctx, sessionID)
	if err != nil {
		return domain.View{}, false, err
	}
	view, accepted = engine.SubmitAnswer(option)
	return view, accepted, nil
}

// Subscribe returns a channel of views for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, sessionID string) (<-chan domain.View, func(), error) {
	engine, err := s.Engine(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := engine.Subscribe()
	return ch, cancel, nil
}

// Result returns the summary of a finished session.
func (s *QuizService) Result(ctx context.Context, sessionID string) (domain.ResultSummary, error) {
	engine, err := s.Engine(ctx, sessionID)
	if err != nil {
		return domain.ResultSummary{}, err
	}
	summary, ok := engine.Result()
	if !ok {
		return domain.ResultSummary{}, domain.ErrResultNotReady
	}
	return summary, nil
}

// ShareText returns the share message for a finished session.
func (s *QuizService) ShareText(ctx context.Context, sessionID string) (string, error) {
	summary, err := s.Result(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return FormatShareText(summary.Score, summary.Total, domain.Rank{Label: summary.RankLabel, Emoji: summary.RankEmoji}), nil
}

// ResultCard renders the result card for a finished session.
func (s *QuizService) ResultCard(ctx context.Context, sessionID, site string) (string, error) {
	engine, err := s.Engine(ctx, sessionID)
	if err != nil {
		return "", err
	}
	summary, ok := engine.Result()
	if !ok {
		return "", domain.ErrResultNotReady
	}
	return FormatResultCard(summary, engine.Answers(), site), nil
}

// Share delivers the share message through native, falling back to clipboard.
func (s *QuizService) Share(ctx context.Context, sessionID string, native NativeSharer, clipboard Clipboard) (ShareOutcome, error) {
	text, err := s.ShareText(ctx, sessionID)
	if err != nil {
		return ShareOutcome{}, err
	}
	return DeliverShare(ctx, text, native, clipboard), nil
}

// Close stops the session and forgets it.
func (s *QuizService) Close(_ context.Context, sessionID string) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	engine.Close()
	s.sessions.Delete(sessionID)
}
