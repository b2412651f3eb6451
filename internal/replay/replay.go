// Package replay drives a document from a scripted event sequence.
//
// A replay script has one step per line:
//
//	# comments and blank lines are ignored
//	keypress o              press "o" on the document root
//	keypress x li.item      press "x" on the first li.item
//	click h1                click the first h1
//	mouseover #list
//
// keypress takes a single character. Any other first word is used as the
// event type verbatim. The optional remainder of the line is a selector
// for the target; without one the step targets the document root. Fields
// are separated by any run of spaces or tabs.
package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/attachevents/internal/dom"
	"github.com/dshills/attachevents/internal/dom/htmltree"
)

// Step is one scripted event.
type Step struct {
	// Line is the 1-based line number in the source.
	Line int
	// Type is the event type.
	Type string
	// Char is the pressed character for key events.
	Char string
	// Selector picks the target; empty means the document root.
	Selector string
}

func (s Step) String() string {
	var parts []string
	parts = append(parts, s.Type)
	if s.Char != "" {
		parts = append(parts, s.Char)
	}
	if s.Selector != "" {
		parts = append(parts, s.Selector)
	}
	return strings.Join(parts, " ")
}

// Event builds the event for the step.
func (s Step) Event() *dom.Event {
	if s.Char == "" {
		return dom.NewEvent(s.Type)
	}
	r, _ := utf8.DecodeRuneInString(s.Char)
	return dom.NewKeyEvent(s.Type, r)
}

func isKeyType(t string) bool {
	switch t {
	case dom.TypeKeyPress, dom.TypeKeyDown, dom.TypeKeyUp:
		return true
	}
	return false
}

// Parse reads steps from r.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		typ, rest := cutField(text)
		step := Step{Line: line, Type: typ}

		if isKeyType(typ) {
			char, sel := cutField(rest)
			if char == "" {
				return nil, &ParseError{Line: line, Msg: typ + " needs a character"}
			}
			if utf8.RuneCountInString(char) != 1 {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("%s takes one character, got %q", typ, char)}
			}
			step.Char = char
			rest = sel
		}
		step.Selector = rest
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading replay script: %w", err)
	}
	return steps, nil
}

// cutField splits s at its first run of whitespace.
func cutField(s string) (head, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// Player dispatches steps onto a document.
type Player struct {
	doc    *htmltree.Document
	logger *slog.Logger

	// StopOnError ends playback at the first failing step.
	StopOnError bool
}

// NewPlayer creates a player for doc.
func NewPlayer(doc *htmltree.Document, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{doc: doc, logger: logger}
}

// Play dispatches steps in order. Step failures are collected and returned
// joined; playback continues past them unless StopOnError is set.
// Cancelling ctx stops playback before the next step.
func (p *Player) Play(ctx context.Context, steps []Step) error {
	var errs []error
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.play(step); err != nil {
			p.logger.Warn("replay step failed", slog.Int("line", step.Line), slog.Any("error", err))
			errs = append(errs, err)
			if p.StopOnError {
				break
			}
		}
	}
	return errors.Join(errs...)
}

func (p *Player) play(step Step) error {
	var target dom.Node = p.doc.Root()
	if step.Selector != "" {
		n, err := p.doc.QuerySelector(step.Selector)
		if err != nil {
			return &StepError{Step: step, Err: err}
		}
		if n == nil {
			return &StepError{Step: step, Err: ErrNoTarget}
		}
		target = n
	}

	p.logger.Debug("replay step", slog.Int("line", step.Line), slog.String("step", step.String()))
	if err := p.doc.Dispatch(target, step.Event()); err != nil {
		return &StepError{Step: step, Err: err}
	}
	return nil
}
