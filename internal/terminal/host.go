// Package terminal hosts a bound document in a tcell screen.
//
// Each focusable element is drawn on its own line. Tab and the arrow keys
// move focus, Enter clicks the focused element, and any printable key is
// delivered as a keypress on it, bubbling up to the document root where
// top-level keystroke bindings listen.
package terminal

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/attachevents/internal/dom"
	"github.com/dshills/attachevents/internal/dom/htmltree"
)

const hint = "tab/arrows: focus  enter: click  keys: keypress  esc: quit"

// Host renders a document and turns terminal input into DOM events.
type Host struct {
	screen tcell.Screen
	doc    *htmltree.Document
	logger *slog.Logger

	focusable  string
	status     func() string
	statusLine bool

	items []*htmltree.Element
	focus int
}

// Option configures a Host.
type Option func(*Host)

// WithFocusable sets the selector for focusable elements.
func WithFocusable(selector string) Option {
	return func(h *Host) {
		if selector != "" {
			h.focusable = selector
		}
	}
}

// WithStatus sets the source of the status line text.
func WithStatus(fn func() string) Option {
	return func(h *Host) {
		h.status = fn
	}
}

// WithStatusLine toggles the status line.
func WithStatusLine(show bool) Option {
	return func(h *Host) {
		h.statusLine = show
	}
}

// WithLogger sets the logger used for dispatch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a host drawing doc on screen. The screen must already be
// initialized; the caller finalizes it.
func New(screen tcell.Screen, doc *htmltree.Document, opts ...Option) (*Host, error) {
	h := &Host{
		screen:     screen,
		doc:        doc,
		logger:     slog.New(slog.DiscardHandler),
		focusable:  "body *",
		statusLine: true,
		focus:      -1,
	}
	for _, opt := range opts {
		opt(h)
	}

	nodes, err := doc.QuerySelectorAll(h.focusable)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		el := n.(*htmltree.Element)
		if strings.TrimSpace(el.TextContent()) != "" {
			h.items = append(h.items, el)
		}
	}
	return h, nil
}

// Focused returns the focused element, or nil before the first move.
func (h *Host) Focused() *htmltree.Element {
	if h.focus < 0 {
		return nil
	}
	return h.items[h.focus]
}

// Items returns the focusable elements in display order.
func (h *Host) Items() []*htmltree.Element {
	return h.items
}

// HandleEvent processes one terminal event and redraws.
// It returns true when the user asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyTab, tcell.KeyDown:
			h.move(1)
		case tcell.KeyBacktab, tcell.KeyUp:
			h.move(-1)
		case tcell.KeyEnter:
			h.dispatch(h.target(), dom.NewEvent(dom.TypeClick))
		case tcell.KeyRune:
			h.dispatch(h.target(), dom.NewKeyPress(ev.Rune()))
		}
	}

	h.Draw()
	return false
}

// Run draws the document and processes events until quit or until ctx
// is done.
func (h *Host) Run(ctx context.Context) error {
	h.Draw()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := h.screen.PollEvent()
		switch ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if h.HandleEvent(ev) {
			return nil
		}
	}
}

// target is the focused element, or the document root when nothing is
// focused.
func (h *Host) target() dom.Node {
	if el := h.Focused(); el != nil {
		return el
	}
	return h.doc.Root()
}

// move shifts focus by delta, wrapping, and dispatches blur and focus.
func (h *Host) move(delta int) {
	n := len(h.items)
	if n == 0 {
		return
	}

	next := h.focus + delta
	switch {
	case h.focus < 0 && delta < 0:
		next = n - 1
	case next < 0:
		next = n - 1
	case next >= n:
		next = 0
	}

	if prev := h.Focused(); prev != nil {
		h.dispatch(prev, dom.NewEvent(dom.TypeBlur))
	}
	h.focus = next
	h.dispatch(h.items[next], dom.NewEvent(dom.TypeFocus))
}

func (h *Host) dispatch(target dom.Node, ev *dom.Event) {
	if err := h.doc.Dispatch(target, ev); err != nil {
		h.logger.Warn("dispatch failed", slog.String("event", ev.Type), slog.Any("error", err))
	}
}

// Draw renders the focusable list and the status line.
func (h *Host) Draw() {
	h.screen.Clear()
	width, height := h.screen.Size()

	rows := height
	if h.statusLine {
		rows--
	}

	offset := 0
	if h.focus >= rows && rows > 0 {
		offset = h.focus - rows + 1
	}
	for i := offset; i < len(h.items) && i-offset < rows; i++ {
		style := tcell.StyleDefault
		if i == h.focus {
			style = style.Reverse(true)
		}
		drawText(h.screen, 0, i-offset, width, style, label(h.items[i]))
	}

	if h.statusLine && height > 0 {
		text := ""
		if h.status != nil {
			text = h.status()
		}
		if text == "" {
			text = hint
		}
		drawText(h.screen, 0, height-1, width, tcell.StyleDefault.Dim(true), text)
	}

	h.screen.Show()
}

func label(el *htmltree.Element) string {
	return el.TagName() + " " + strings.Join(strings.Fields(el.TextContent()), " ")
}

// drawText writes text from x on row y, one grapheme cluster per cell
// group, clipped at maxX.
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if w == 0 {
			continue
		}
		if x+w > maxX {
			return
		}
		runes := gr.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
