package domain

import "time"

// Category groups questions by topic.
type Category string

const (
	CategoryGrok   Category = "grok"
	CategoryDRB    Category = "drb"
	CategoryCrypto Category = "crypto"
	CategoryMeme   Category = "meme"
)

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID                 int      `json:"id" yaml:"id" validate:"gt=0"`
	Prompt             string   `json:"prompt" yaml:"prompt" validate:"required"`
	Options            []string `json:"options" yaml:"options" validate:"len=4,unique,dive,required"`
	CorrectOptionIndex int      `json:"correctOptionIndex" yaml:"correctOptionIndex" validate:"gte=0"`
	Category           Category `json:"category" yaml:"category" validate:"oneof=grok drb crypto meme"`
}

// Correct reports whether option is the correct answer.
func (q Question) Correct(option int) bool {
	return option == q.CorrectOptionIndex
}

// Bank is the serialized form of a question bank as stored by loaders.
type Bank struct {
	ID        string     `json:"id" yaml:"id" validate:"required"`
	Questions []Question `json:"questions" yaml:"questions" validate:"required,min=1,unique=ID,dive"`
}

// Phase is the state of a single playthrough.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Rank is the label and emoji awarded for a final score.
type Rank struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// ResultSummary is computed once when a session finishes.
type ResultSummary struct {
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	RankLabel  string    `json:"rankLabel"`
	RankEmoji  string    `json:"rankEmoji"`
	Timestamp  time.Time `json:"timestamp"`
}

// QuestionView is the public part of a question; it never carries the answer.
type QuestionView struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Category Category `json:"category"`
}

// View is the snapshot handed to renderers on every state change.
type View struct {
	SessionID        string         `json:"sessionId"`
	Phase            Phase          `json:"phase"`
	Index            int            `json:"index"`
	Total            int            `json:"total"`
	Question         *QuestionView  `json:"question,omitempty"`
	CorrectOption    *int           `json:"correctOption,omitempty"` // only while feedback is visible
	PendingSelection *int           `json:"pendingSelection,omitempty"`
	FeedbackVisible  bool           `json:"feedbackVisible"`
	Score            int            `json:"score"`
	Answers          []bool         `json:"answers"`
	Progress         int            `json:"progress"`
	Result           *ResultSummary `json:"result,omitempty"`
}
