// Package terminal plays a quiz session on a text terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/domain"
)

// topics lists the start screen tags in display order.
var topics = []struct {
	category domain.Category
	name     string
}{
	{domain.CategoryGrok, "GROK_AI"},
	{domain.CategoryDRB, "$DRB"},
	{domain.CategoryCrypto, "CRYPTO_CULTURE"},
	{domain.CategoryMeme, "MEMES"},
}

// Render writes the screen for view.
func Render(w io.Writer, view domain.View, categories []domain.Category, site string) {
	switch view.Phase {
	case domain.PhaseNotStarted:
		renderStart(w, view, categories)
	case domain.PhaseInProgress:
		renderQuestion(w, view)
	case domain.PhaseFinished:
		renderResult(w, view, site)
	}
}

func renderStart(w io.Writer, view domain.View, categories []domain.Category) {
	present := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		present[c] = true
	}
	names := make([]string, 0, len(categories))
	for _, topic := range topics {
		if present[topic.category] {
			names = append(names, topic.name)
		}
	}
	fmt.Fprintln(w, "GROK x $DRB")
	fmt.Fprintln(w, "KNOWLEDGE PROTOCOL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "$ initializing quiz protocol...")
	fmt.Fprintf(w, "> %d questions loaded\n", view.Total)
	fmt.Fprintf(w, "> topics: [%s]\n", strings.Join(names, ", "))
	fmt.Fprintln(w, "> shareable result card: ENABLED")
	fmt.Fprintln(w, "$ ready to test your degen knowledge?")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[ press enter to INITIALIZE QUIZ ]")
}

func renderQuestion(w io.Writer, view domain.View) {
	q := view.Question
	if q == nil {
		return
	}
	fmt.Fprintf(w, "QUESTION %d/%d    SCORE: %d\n", view.Index+1, view.Total, view.Score)
	fmt.Fprintf(w, "%s %d%%\n", progressBar(view.Progress, 20), view.Progress)
	fmt.Fprintf(w, "[%s]\n", strings.ToUpper(string(q.Category)))
	fmt.Fprintf(w, "> %s\n", q.Prompt)
	for i, option := range q.Options {
		mark := " "
		if view.FeedbackVisible && view.CorrectOption != nil {
			switch {
			case i == *view.CorrectOption:
				mark = "✓"
			case view.PendingSelection != nil && i == *view.PendingSelection:
				mark = "✗"
			}
		}
		fmt.Fprintf(w, "%s [%c] %s\n", mark, 'A'+i, option)
	}
	if !view.FeedbackVisible {
		fmt.Fprintln(w, "answer with a-d")
	}
}

func renderResult(w io.Writer, view domain.View, site string) {
	if view.Result == nil {
		return
	}
	fmt.Fprintln(w, app.FormatResultCard(*view.Result, view.Answers, site))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[s] share results  [r] retry quiz  [q] quit")
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
