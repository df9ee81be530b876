package practice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
)

const bannerTitle = "ENGLISH CONVERSATION PRACTICE APP"

// lineReader delivers input lines from a background goroutine so a blocked
// read can be abandoned when the context is cancelled.
type lineReader struct {
	lines chan string
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lr.lines <- sc.Text()
		}
		lr.err = sc.Err()
	}()
	return lr
}

// next returns the next line without its newline, io.EOF at end of input or
// ErrInterrupted once ctx is done.
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// printer renders the program's text output.
type printer struct {
	w     io.Writer
	width int

	partner *color.Color
	good    *color.Color
	warn    *color.Color
	hint    *color.Color
	heading *color.Color
}

func newPrinter(w io.Writer, width int, colored bool) *printer {
	p := &printer{
		w:       w,
		width:   width,
		partner: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		hint:    color.New(color.FgMagenta),
		heading: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.partner, p.good, p.warn, p.hint, p.heading} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) prompt(s string) {
	fmt.Fprint(p.w, s)
}

func (p *printer) header() {
	banner := strings.Repeat("=", p.width)
	p.line(banner)
	p.line(p.heading.Sprint(strings.TrimRight(lipgloss.PlaceHorizontal(p.width, lipgloss.Center, bannerTitle), " ")))
	p.line(banner)
}

// wrapped prints text wrapped to the configured width, each line prefixed by
// indent spaces. Blank paragraphs are kept and empty text prints one empty
// line.
func (p *printer) wrapped(text string, indent int) {
	p.styled(nil, text, indent)
}

// styled is wrapped with every output line passed through c.
func (p *printer) styled(c *color.Color, text string, indent int) {
	if text == "" {
		p.blank()
		return
	}

	pad := strings.Repeat(" ", indent)
	limit := max(p.width-indent, 1)
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			p.blank()
			continue
		}
		for _, l := range strings.Split(ansi.Wrap(para, limit, ""), "\n") {
			l = pad + strings.TrimRight(l, " ")
			if c != nil {
				l = c.Sprint(l)
			}
			p.line(l)
		}
	}
}
