// Package console runs an assessment over plain line-oriented input and
// output, for terminals and pipes where the full-screen UI is unwanted.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/session"
)

// ErrAborted is returned when the learner quits or input ends early.
var ErrAborted = errors.New("assessment aborted")

// Run asks every question of an active session in order. It returns nil
// once every question is answered and the cursor is on the last one, ready
// for session.Complete.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) error {
	if s.Phase() != session.PhaseActive {
		return session.ErrNotActive
	}

	sc := bufio.NewScanner(in)
	ew := &errWriter{w: out}
	lastSection := ""

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, ok := s.Current()
		if !ok {
			return session.ErrNotActive
		}
		if sec, ok := s.Section(); ok && sec.ID != lastSection {
			lastSection = sec.ID
			ew.printf("\n== %s (%d min) ==\n%s\n", sec.Title, sec.TimeMinutes, sec.Description)
		}

		choices := q.Choices()
		current := -1
		if v, ok := s.ResponseFor(q.ID); ok {
			if f, ok := v.Float(); ok {
				current = indexOf(choices, int(f))
			}
		}
		printQuestion(ew, s.Index(), s.Total(), q, choices, current)
		if ew.err != nil {
			return ew.err
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			return fmt.Errorf("%w: input ended at question %d of %d", ErrAborted, s.Index()+1, s.Total())
		}
		line := strings.ToLower(strings.TrimSpace(sc.Text()))

		switch line {
		case "q", "quit", "exit":
			return ErrAborted
		case "b", "back", "p", "prev":
			if !s.Previous() {
				ew.printf("Already at the first question.\n")
			}
			continue
		case "":
			if current < 0 {
				ew.printf("Please select an answer (1-%d).\n", len(choices))
				continue
			}
		default:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(choices) {
				ew.printf("Please select an answer (1-%d).\n", len(choices))
				continue
			}
			if err := s.Answer(scoring.Int(choices[n-1].Value)); err != nil {
				return err
			}
		}

		if s.IsLast() {
			return ew.err
		}
		s.Next()
	}
}

func printQuestion(ew *errWriter, index, total int, q assessment.Question, choices []assessment.ScaleOption, current int) {
	ew.printf("\n[%d/%d] %s\n", index+1, total, q.Text)
	for i, c := range choices {
		mark := " "
		if i == current {
			mark = "*"
		}
		ew.printf(" %s %d) %s\n", mark, i+1, c.Label)
	}
	hint := "b=back, q=quit"
	if current >= 0 {
		hint = "enter=keep, " + hint
	}
	ew.printf("answer [1-%d, %s]: ", len(choices), hint)
}

func indexOf(choices []assessment.ScaleOption, value int) int {
	for i, c := range choices {
		if c.Value == value {
			return i
		}
	}
	return -1
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
