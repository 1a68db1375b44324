package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestFormatShareText(t *testing.T) {
	text := app.FormatShareText(7, 10, app.DeriveRank(7, 10))
	want := "🤖 GROK x $DRB QUIZ RESULTS 🤖\n\n💎 CRYPTO CHAD\n📊 Score: 7/10 (70%)\n\nThink you can beat me? Take the quiz! 👇"
	require.Equal(t, want, text)
}

func TestFormatShareTextRounds(t *testing.T) {
	text := app.FormatShareText(2, 3, app.DeriveRank(2, 3))
	require.Contains(t, text, "Score: 2/3 (67%)")
}

func TestFormatResultCard(t *testing.T) {
	summary := domain.ResultSummary{
		Score: 2, Total: 3, Percentage: 67,
		RankLabel: "PAPER HANDS", RankEmoji: "📄",
		Timestamp: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
	card := app.FormatResultCard(summary, []bool{true, false, true}, "grok-drb-quiz.vercel.app")

	require.Contains(t, card, "QUIZ COMPLETE")
	require.Contains(t, card, "📄\nPAPER HANDS")
	require.Contains(t, card, "2 / 3 correct")
	require.Contains(t, card, "✓ ✗ ✓")
	require.Contains(t, card, "Accuracy 67%")
	require.True(t, strings.HasSuffix(card, "2026-10-14 • grok-drb-quiz.vercel.app"), card)
}

type fakeNative struct {
	err  error
	seen []string
}

func (f *fakeNative) Share(_ context.Context, text string) error {
	f.seen = append(f.seen, text)
	return f.err
}

type fakeClipboard struct {
	err    error
	copied []string
}

func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	f.copied = append(f.copied, text)
	return f.err
}

func TestDeliverShareNative(t *testing.T) {
	native, clip := &fakeNative{}, &fakeClipboard{}
	out := app.DeliverShare(context.Background(), "hi", native, clip)
	require.Equal(t, app.ShareNative, out.Method)
	require.Equal(t, []string{"hi"}, native.seen)
	require.Empty(t, clip.copied)
}

func TestDeliverShareFallsBackWhenNativeFails(t *testing.T) {
	native, clip := &fakeNative{err: errors.New("user cancelled")}, &fakeClipboard{}
	out := app.DeliverShare(context.Background(), "hi", native, clip)
	require.Equal(t, app.ShareCopied, out.Method)
	require.Equal(t, "Results copied to clipboard! 📋", out.Message)
	require.Equal(t, []string{"hi"}, clip.copied)
}

func TestDeliverShareWithoutNative(t *testing.T) {
	clip := &fakeClipboard{}
	out := app.DeliverShare(context.Background(), "hi", nil, clip)
	require.Equal(t, app.ShareCopied, out.Method)
	require.Equal(t, []string{"hi"}, clip.copied)
}

func TestDeliverShareClipboardFailureIsNotAnError(t *testing.T) {
	out := app.DeliverShare(context.Background(), "hi", &fakeNative{err: errors.New("no")}, &fakeClipboard{err: errors.New("denied")})
	require.Equal(t, app.ShareFailed, out.Method)
	require.NotEmpty(t, out.Message)
}
