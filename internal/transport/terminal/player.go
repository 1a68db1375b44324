package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/domain"
)

// WriterClipboard "copies" by printing the text; terminals have no shared clipboard API.
type WriterClipboard struct {
	W io.Writer
}

func (c WriterClipboard) Copy(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.W, "----- copy below -----\n%s\n----------------------\n", text)
	return err
}

// FileClipboard writes the text to a file the user can paste from.
type FileClipboard struct {
	Path string
}

func (c FileClipboard) Copy(_ context.Context, text string) error {
	return os.WriteFile(c.Path, []byte(text+"\n"), 0o644)
}

// syncWriter serializes screen updates from the render loop and the input loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Player runs one session on a terminal.
type Player struct {
	service   *app.QuizService
	bankID    string
	site      string
	in        io.Reader
	out       *syncWriter
	clipboard app.Clipboard
}

func NewPlayer(service *app.QuizService, bankID, site string, in io.Reader, out io.Writer, clipboard app.Clipboard) *Player {
	sw := &syncWriter{w: out}
	if clipboard == nil {
		clipboard = WriterClipboard{W: sw}
	}
	return &Player{
		service:   service,
		bankID:    bankID,
		site:      site,
		in:        in,
		out:       sw,
		clipboard: clipboard,
	}
}

// Run plays until the input ends, q is entered, or ctx is canceled.
func (p *Player) Run(ctx context.Context) error {
	opened, err := p.service.Open(ctx, p.bankID)
	if err != nil {
		return err
	}
	sessionID := opened.SessionID
	defer p.service.Close(context.Background(), sessionID)

	engine, err := p.service.Engine(ctx, sessionID)
	if err != nil {
		return err
	}
	categories := engine.Bank().Categories()

	updates, cancel, err := p.service.Subscribe(ctx, sessionID)
	if err != nil {
		return err
	}
	renderDone := make(chan struct{})
	go func() {
		defer close(renderDone)
		for view := range updates {
			fmt.Fprintln(p.out)
			Render(p.out, view, categories, p.site)
		}
	}()
	defer func() {
		cancel()
		<-renderDone
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if quit := p.handle(ctx, sessionID, line); quit {
				return nil
			}
		}
	}
}

// handle applies one line of input; it reports whether the player asked to quit.
func (p *Player) handle(ctx context.Context, sessionID, line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))
	engine, err := p.service.Engine(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(p.out, "error: %v\n", err)
		return true
	}
	phase := engine.Snapshot().Phase

	switch {
	case cmd == "q" || cmd == "quit":
		return true
	case cmd == "r" || cmd == "retry" || (cmd == "" && phase == domain.PhaseNotStarted):
		_, _ = p.service.Start(ctx, sessionID)
	case cmd == "s" || cmd == "share":
		outcome, err := p.service.Share(ctx, sessionID, nil, p.clipboard)
		if err != nil {
			fmt.Fprintln(p.out, "finish the quiz before sharing")
			return false
		}
		fmt.Fprintln(p.out, outcome.Message)
	default:
		option, ok := parseOption(cmd)
		if !ok || phase != domain.PhaseInProgress {
			return false
		}
		_, _, _ = p.service.SubmitAnswer(ctx, sessionID, option)
	}
	return false
}

// parseOption maps a-d or 1-4 to an option index.
func parseOption(cmd string) (int, bool) {
	if len(cmd) != 1 {
		return 0, false
	}
	c := cmd[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	}
	return 0, false
}
