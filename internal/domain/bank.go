package domain

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// QuestionBank is an immutable, validated, ordered list of questions.
type QuestionBank struct {
	id        string
	questions []Question
}

// NewQuestionBank validates b and returns a bank that owns a private copy of its questions.
func NewQuestionBank(b Bank) (*QuestionBank, error) {
	if err := validatorInstance().Struct(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	questions := make([]Question, len(b.Questions))
	for i, q := range b.Questions {
		if q.CorrectOptionIndex >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d: correct option %d out of range", ErrInvalidBank, q.ID, q.CorrectOptionIndex)
		}
		q.Options = append([]string(nil), q.Options...)
		questions[i] = q
	}
	return &QuestionBank{id: b.ID, questions: questions}, nil
}

// ID returns the bank identifier.
func (b *QuestionBank) ID() string {
	return b.id
}

// Len returns the number of questions.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// Question returns the question at index i. It panics if i is out of range, like a slice.
func (b *QuestionBank) Question(i int) Question {
	q := b.questions[i]
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Categories returns the distinct categories in first-seen order.
func (b *QuestionBank) Categories() []Category {
	seen := make(map[Category]struct{}, 4)
	out := make([]Category, 0, 4)
	for _, q := range b.questions {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out
}

// Bank returns the serializable form of the bank.
func (b *QuestionBank) Bank() Bank {
	questions := make([]Question, len(b.questions))
	for i := range b.questions {
		questions[i] = b.Question(i)
	}
	return Bank{ID: b.id, Questions: questions}
}
