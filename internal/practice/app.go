// Package practice is the terminal conversation practice program: scripted
// role-play scenarios graded by keyword matching, a phrasebook, a quick
// response builder and an in-process practice history.
package practice

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/soyeahso/kaiwa/internal/scenario"
)

// DefaultWidth is the output wrap width.
const DefaultWidth = 72

// ErrInterrupted is returned when the context is cancelled while the program
// waits for input.
var ErrInterrupted = errors.New("interrupted")

// Options configures an App.
type Options struct {
	Width int
	Color bool
	// Rand picks quick response templates. Nil seeds from the clock.
	Rand *rand.Rand
	Log  *logging.Logger
}

// TurnRecord is one answered turn of a practice session.
type TurnRecord struct {
	Prompt   string
	Response string
	Feedback string
	Success  bool
}

// SessionRecord is one practice session kept in the history.
type SessionRecord struct {
	Scenario string
	Turns    []TurnRecord
}

// Successes counts the turns that matched a keyword.
func (s SessionRecord) Successes() int {
	n := 0
	for _, t := range s.Turns {
		if t.Success {
			n++
		}
	}
	return n
}

// App is one run of the practice program.
type App struct {
	in  *lineReader
	out *printer
	rnd *rand.Rand
	log *logging.Logger

	scenarios  []scenario.Scenario
	phrasebook map[string][]scenario.Phrase
	categories []string
	templates  []TemplateCategory
	history    []SessionRecord
}

// New creates an App reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, opts Options) *App {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Rand == nil {
		now := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(now, now>>32))
	}
	if opts.Log == nil {
		opts.Log = logging.New(io.Discard, "silent")
	}

	scs := Scenarios()
	book := BuildPhrasebook(scs)
	categories := make([]string, 0, len(book))
	for name := range book {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	return &App{
		in:         newLineReader(in),
		out:        newPrinter(out, opts.Width, opts.Color),
		rnd:        opts.Rand,
		log:        opts.Log.Sub("practice"),
		scenarios:  scs,
		phrasebook: book,
		categories: categories,
		templates:  Templates(),
	}
}

// History returns the sessions practised so far.
func (a *App) History() []SessionRecord {
	return append([]SessionRecord(nil), a.history...)
}

// Run shows the main menu until the learner exits or input ends. It returns
// ErrInterrupted if ctx is cancelled while waiting for input.
func (a *App) Run(ctx context.Context) error {
	a.out.header()
	a.out.wrapped("ようこそ！英会話の練習を始めましょう。数字を入力して操作してください。", 0)

	for {
		a.printMenu()
		choice, err := a.ask(ctx, "番号を選択してください: ")
		if err != nil {
			return a.finish(err)
		}
		a.out.blank()

		n, _ := parseChoice(choice, 5)
		switch n {
		case 1:
			err = a.startConversation(ctx)
		case 2:
			err = a.viewPhrasebook(ctx)
		case 3:
			err = a.quickResponse(ctx)
		case 4:
			err = a.viewHistory(ctx)
		case 5:
			a.goodbye()
			return nil
		default:
			a.out.wrapped("1から5の数字を入力してください。", 0)
		}
		if err != nil {
			return a.finish(err)
		}
	}
}

// RunDemo plays the first scenario with its sample responses.
func (a *App) RunDemo() {
	sc := a.scenarios[0]
	a.out.header()
	a.out.wrapped("デモモード: アプリの使い方を自動的に紹介します。", 0)
	a.out.wrapped("Scene: "+sc.Title+" — "+sc.Description, 0)
	a.out.blank()

	record := SessionRecord{Scenario: sc.Title}
	for _, turn := range sc.Turns {
		a.out.styled(a.out.partner, sc.PartnerRole+": "+turn.Prompt, 0)
		a.out.wrapped("モデル回答: "+turn.SampleResponse, 2)
		feedback, ok := Evaluate(turn.SampleResponse, turn)
		a.out.styled(a.feedbackColor(ok), "フィードバック: "+feedback, 2)
		a.out.blank()
		record.Turns = append(record.Turns, TurnRecord{
			Prompt:   turn.Prompt,
			Response: turn.SampleResponse,
			Feedback: feedback,
			Success:  ok,
		})
	}

	a.out.wrapped(Summarize(record, sc), 0)
	a.log.Debug().Str("scenario", sc.ID).Int("successes", record.Successes()).Msg("demo finished")
}

// finish turns end of input into a normal exit.
func (a *App) finish(err error) error {
	if errors.Is(err, io.EOF) {
		a.out.blank()
		a.goodbye()
		return nil
	}
	return err
}

func (a *App) goodbye() {
	a.out.wrapped("ご利用ありがとうございました。See you next time!", 0)
}

func (a *App) printMenu() {
	a.out.blank()
	a.out.line(a.out.heading.Sprint("Main Menu"))
	a.out.line("1. 会話練習を始める (Start a conversation)")
	a.out.line("2. フレーズ集を見る (View phrasebook)")
	a.out.line("3. 即答フレーズを作る (Quick response builder)")
	a.out.line("4. 練習履歴を見る (View history)")
	a.out.line("5. アプリを終了する (Exit)")
}

// ask prints prompt and returns the trimmed answer.
func (a *App) ask(ctx context.Context, prompt string) (string, error) {
	a.out.prompt(prompt)
	line, err := a.in.next(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// isNumber reports whether s is a non-empty run of ASCII or full-width
// digits.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9') && !(r >= '０' && r <= '９') {
			return false
		}
	}
	return true
}

// parseChoice converts a menu answer to a number in [1, n].
func parseChoice(s string, n int) (int, bool) {
	if !isNumber(s) {
		return 0, false
	}
	v := 0
	for _, r := range s {
		d := int(r - '0')
		if r >= '０' {
			d = int(r - '０')
		}
		v = v*10 + d
		if v > n {
			return 0, false
		}
	}
	return v, v >= 1
}
