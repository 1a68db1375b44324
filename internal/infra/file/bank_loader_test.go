package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"drb-quiz-service/internal/domain"
)

const bankYAML = `id: custom
questions:
  - id: 1
    prompt: "What does gm mean?"
    options: ["General Manager", "Good Morning", "Gains Multiplier", "Gas Money"]
    correctOptionIndex: 1
    category: meme
`

func TestLoadBankFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(bankYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	bank, err := NewBankLoader(path).LoadBank(context.Background(), "custom")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(bank.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(bank.Questions))
	}
	q := bank.Questions[0]
	if q.CorrectOptionIndex != 1 || q.Category != domain.CategoryMeme || q.Options[1] != "Good Morning" {
		t.Fatalf("unexpected question %+v", q)
	}
	if _, err := domain.NewQuestionBank(bank); err != nil {
		t.Fatalf("loaded bank should validate: %v", err)
	}
}

func TestLoadBankFromJSONDefaultsID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night.json")
	body := `{"questions":[{"id":1,"prompt":"p","options":["a","b","c","d"],"correctOptionIndex":0,"category":"drb"}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	bank, err := ReadBank(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bank.ID != "night" {
		t.Fatalf("expected id from file name, got %q", bank.ID)
	}
}

func TestLoadBankWrongID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(bankYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewBankLoader(path).LoadBank(context.Background(), "other")
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}
