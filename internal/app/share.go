package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"drb-quiz-service/internal/domain"
)

// CopiedMessage confirms a clipboard fallback to the user.
const CopiedMessage = "Results copied to clipboard! 📋"

// NativeSharer hands text to a platform share sheet. Any error, including
// the user dismissing the sheet, triggers the clipboard fallback.
type NativeSharer interface {
	Share(ctx context.Context, text string) error
}

// Clipboard copies text for the user to paste.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// ShareMethod records how a share was finally delivered.
type ShareMethod string

const (
	ShareNative ShareMethod = "shared"
	ShareCopied ShareMethod = "copied"
	ShareFailed ShareMethod = "failed"
)

// ShareOutcome is what the user is told after a share attempt.
type ShareOutcome struct {
	Method  ShareMethod `json:"method"`
	Message string      `json:"message"`
}

// FormatShareText builds the plain-text summary posted by the share action.
func FormatShareText(score, total int, rank domain.Rank) string {
	return fmt.Sprintf("🤖 GROK x $DRB QUIZ RESULTS 🤖\n\n%s %s\n📊 Score: %d/%d (%d%%)\n\nThink you can beat me? Take the quiz! 👇",
		rank.Emoji, rank.Label, score, total, RoundedPercentage(score, total))
}

// FormatResultCard renders the result card: rank, score, per-question marks,
// accuracy and a dated footer.
func FormatResultCard(summary domain.ResultSummary, answers []bool, site string) string {
	var b strings.Builder
	b.WriteString("QUIZ COMPLETE\n")
	b.WriteString("GROK x $DRB\n\n")
	fmt.Fprintf(&b, "%s\n%s\n", summary.RankEmoji, summary.RankLabel)
	fmt.Fprintf(&b, "%d / %d correct\n\n", summary.Score, summary.Total)

	marks := make([]string, len(answers))
	for i, correct := range answers {
		if correct {
			marks[i] = "✓"
		} else {
			marks[i] = "✗"
		}
	}
	b.WriteString(strings.Join(marks, " "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Accuracy %d%%\n", summary.Percentage)

	footer := summary.Timestamp.Format("2006-01-02")
	if site != "" {
		footer += " • " + site
	}
	b.WriteString(footer)
	return b.String()
}

// DeliverShare tries the native sharer first and falls back to the clipboard.
// native may be nil when the platform has no share sheet. It never returns an error.
func DeliverShare(ctx context.Context, text string, native NativeSharer, clipboard Clipboard) ShareOutcome {
	if native != nil {
		err := native.Share(ctx, text)
		if err == nil {
			return ShareOutcome{Method: ShareNative, Message: "Results shared!"}
		}
		log.Printf("native share failed, copying instead: %v", err)
	}
	if clipboard == nil {
		return ShareOutcome{Method: ShareFailed, Message: "Could not copy results"}
	}
	if err := clipboard.Copy(ctx, text); err != nil {
		log.Printf("clipboard copy failed: %v", err)
		return ShareOutcome{Method: ShareFailed, Message: "Could not copy results"}
	}
	return ShareOutcome{Method: ShareCopied, Message: CopiedMessage}
}
