package practice

import (
	"context"
	"fmt"
	"strings"

	"github.com/soyeahso/kaiwa/internal/scenario"
)

const encouragement = "声に出して練習すると定着しやすくなります。もう一度答えてみましょう。"

// Evaluate grades a response against a turn. It succeeds when the lower-cased
// response contains at least one of the turn's keywords.
func Evaluate(response string, turn scenario.Turn) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(response))
	if cleaned == "" {
		return encouragement, false
	}

	var matches []string
	for _, kw := range turn.Keywords {
		if strings.Contains(cleaned, kw) {
			matches = append(matches, kw)
		}
	}
	if len(matches) > 0 {
		msg := "Great job! You included: " + strings.Join(matches, ", ")
		if turn.GrammarFocus != "" {
			msg += " — " + turn.GrammarFocus
		}
		return msg, true
	}

	suggestion := ""
	if turn.SampleResponse != "" {
		suggestion = " 例: " + turn.SampleResponse
	}
	return "もう一歩です。キーとなる単語を入れてみましょう: " +
		strings.Join(turn.Keywords, ", ") + "." + suggestion, false
}

// Summarize renders the closing summary of a completed scenario.
func Summarize(record SessionRecord, sc scenario.Scenario) string {
	lines := []string{
		fmt.Sprintf("お疲れさまでした！%d/%d のターンでキーワードを含められました。", record.Successes(), len(record.Turns)),
	}

	if len(sc.Tips) > 0 {
		lines = append(lines, "振り返りのポイント:")
		for _, tip := range sc.Tips {
			lines = append(lines, "- "+tip)
		}
	}

	phrases := sc.Phrasebook
	if len(phrases) > 3 {
		phrases = phrases[:3]
	}
	if len(phrases) > 0 {
		lines = append(lines, "覚えておくと便利なフレーズ:")
		for _, p := range phrases {
			lines = append(lines, fmt.Sprintf("- %s (%s)", p.English, p.Japanese))
		}
	}

	lines = append(lines, "必要に応じて会話履歴メニューから練習の振り返りができます。")
	return strings.Join(lines, "\n")
}

func (a *App) startConversation(ctx context.Context) error {
	sc, ok, err := a.selectScenario(ctx)
	if err != nil || !ok {
		return err
	}

	a.out.blank()
	a.out.wrapped("Scene: "+sc.Title+" — "+sc.Description, 0)
	a.printConversationHelp()

	a.log.Debug().Str("scenario", sc.ID).Msg("scenario started")

	record := SessionRecord{Scenario: sc.Title}
	completed := true
	for _, turn := range sc.Turns {
		a.out.styled(a.out.partner, sc.PartnerRole+": "+turn.Prompt, 0)

		response, quit, err := a.collectResponse(ctx, turn)
		if err != nil {
			a.keep(record)
			return err
		}
		if quit {
			a.out.wrapped("シナリオを終了します。", 0)
			completed = false
			break
		}

		feedback, success := Evaluate(response, turn)
		a.out.blank()
		a.out.styled(a.feedbackColor(success), feedback, 0)
		a.out.blank()

		record.Turns = append(record.Turns, TurnRecord{
			Prompt:   turn.Prompt,
			Response: response,
			Feedback: feedback,
			Success:  success,
		})
	}

	if completed {
		a.out.wrapped(Summarize(record, sc), 0)
	}
	a.keep(record)

	a.log.Debug().
		Str("scenario", sc.ID).
		Bool("completed", completed).
		Int("turns", len(record.Turns)).
		Int("successes", record.Successes()).
		Msg("scenario finished")
	return nil
}

// keep adds record to the history if at least one turn was answered.
func (a *App) keep(record SessionRecord) {
	if len(record.Turns) > 0 {
		a.history = append(a.history, record)
	}
}

func (a *App) selectScenario(ctx context.Context) (scenario.Scenario, bool, error) {
	a.out.line("シナリオ一覧:")
	for i, sc := range a.scenarios {
		a.out.wrapped(fmt.Sprintf("%d. %s — %s", i+1, sc.Title, sc.Description), 0)
	}
	a.out.line("0. メインメニューに戻る")

	choice, err := a.ask(ctx, "番号を選んでください: ")
	if err != nil {
		return scenario.Scenario{}, false, err
	}
	if choice == "" || choice == "0" {
		return scenario.Scenario{}, false, nil
	}
	if !isNumber(choice) {
		a.out.wrapped("数字を入力してください。", 0)
		return scenario.Scenario{}, false, nil
	}
	n, ok := parseChoice(choice, len(a.scenarios))
	if !ok {
		a.out.wrapped("その番号は存在しません。", 0)
		return scenario.Scenario{}, false, nil
	}
	return a.scenarios[n-1], true, nil
}

// collectResponse reads the learner's answer to turn, handling inline
// commands. Commands are case-insensitive and may omit the leading "?".
// A skipped turn yields an empty response.
func (a *App) collectResponse(ctx context.Context, turn scenario.Turn) (string, bool, error) {
	for {
		input, err := a.ask(ctx, "あなた: ")
		if err != nil {
			return "", false, err
		}

		switch strings.TrimPrefix(strings.ToLower(input), "?") {
		case "help":
			a.printConversationHelp()
		case "hint":
			if len(turn.Hints) == 0 {
				a.out.wrapped("このターンにはヒントがありません。", 0)
				continue
			}
			a.out.blank()
			for _, h := range turn.Hints {
				a.out.styled(a.out.hint, "ヒント: "+h, 2)
			}
			a.out.blank()
		case "sample":
			if turn.SampleResponse == "" {
				a.out.wrapped("このターンには模範解答がありません。", 0)
				continue
			}
			a.out.styled(a.out.hint, "模範解答: "+turn.SampleResponse, 2)
			if turn.GrammarFocus != "" {
				a.out.styled(a.out.hint, "ポイント: "+turn.GrammarFocus, 2)
			}
		case "skip":
			a.out.wrapped("この質問をスキップしました。", 0)
			return "", false, nil
		case "quit":
			return "", true, nil
		default:
			return input, false, nil
		}
	}
}

func (a *App) printConversationHelp() {
	a.out.blank()
	a.out.wrapped("会話中に使えるコマンド:", 0)
	a.out.wrapped("?hint  : ヒントを見る", 2)
	a.out.wrapped("?sample: 模範解答を見る", 2)
	a.out.wrapped("?skip  : この質問をスキップ", 2)
	a.out.wrapped("?quit  : シナリオを終了", 2)
	a.out.wrapped("?help  : コマンド一覧を表示", 2)
	a.out.blank()
}
