package practice

import (
	"context"
	"fmt"

	"github.com/fatih/color"
)

func (a *App) viewPhrasebook(ctx context.Context) error {
	for {
		a.out.wrapped("フレーズカテゴリを選んでください。", 0)
		for i, name := range a.categories {
			a.out.line(fmt.Sprintf("%d. %s", i+1, name))
		}
		a.out.line("0. メインメニューに戻る")

		choice, err := a.ask(ctx, "番号を入力 (Enterで終了): ")
		if err != nil {
			return err
		}
		if choice == "" || choice == "0" {
			a.out.blank()
			return nil
		}

		n, ok := parseChoice(choice, len(a.categories))
		if !ok {
			a.out.wrapped("該当する番号を入力してください。", 0)
			continue
		}

		name := a.categories[n-1]
		a.out.blank()
		a.out.styled(a.out.heading, name+" のフレーズ:", 0)
		for _, p := range a.phrasebook[name] {
			a.out.wrapped("- "+p.English, 2)
			a.out.wrapped("  "+p.Japanese, 4)
		}
		a.out.blank()
		if _, err := a.ask(ctx, "Enterキーでカテゴリ一覧に戻ります。"); err != nil {
			return err
		}
		a.out.blank()
	}
}

// quickResponse suggests a ready-made reply from a chosen category, with
// optional detail appended after a single space.
func (a *App) quickResponse(ctx context.Context) error {
	a.out.wrapped("即答フレーズを作りましょう。状況に合うカテゴリを選んでください。", 0)
	for i, c := range a.templates {
		a.out.line(fmt.Sprintf("%d. %s", i+1, c.Name))
	}
	a.out.line("0. メインメニューに戻る")

	choice, err := a.ask(ctx, "番号を入力: ")
	if err != nil {
		return err
	}
	if choice == "" || choice == "0" {
		a.out.blank()
		return nil
	}

	n, ok := parseChoice(choice, len(a.templates))
	if !ok {
		a.out.wrapped("該当する番号を入力してください。", 0)
		return nil
	}

	category := a.templates[n-1]
	template := category.Templates[a.rnd.IntN(len(category.Templates))]
	detail, err := a.ask(ctx, "伝えたい内容を追加したい場合は入力してください (Enterでスキップ): ")
	if err != nil {
		return err
	}

	a.out.blank()
	a.out.styled(a.out.good, "提案フレーズ: "+BuildQuickResponse(template, detail), 0)
	a.out.blank()
	return nil
}

// BuildQuickResponse joins a template and optional detail with one space.
func BuildQuickResponse(template, detail string) string {
	if detail == "" {
		return template
	}
	return template + " " + detail
}

func (a *App) viewHistory(ctx context.Context) error {
	if len(a.history) == 0 {
		a.out.wrapped("まだ練習履歴がありません。会話練習を始めてみましょう！", 0)
		return nil
	}

	a.out.line("練習履歴:")
	for i, s := range a.history {
		a.out.line(fmt.Sprintf("%d. %s — 成功 %d/%d", i+1, s.Scenario, s.Successes(), len(s.Turns)))
	}

	choice, err := a.ask(ctx, "詳細を見たい番号を入力してください (Enterで戻る): ")
	if err != nil {
		return err
	}
	if choice == "" {
		a.out.blank()
		return nil
	}
	if !isNumber(choice) {
		a.out.wrapped("数字を入力してください。", 0)
		return nil
	}
	n, ok := parseChoice(choice, len(a.history))
	if !ok {
		a.out.wrapped("その番号は存在しません。", 0)
		return nil
	}

	s := a.history[n-1]
	a.out.blank()
	a.out.styled(a.out.heading, "Scenario: "+s.Scenario, 0)
	for i, t := range s.Turns {
		a.out.wrapped(fmt.Sprintf("Turn %d: %s", i+1, t.Prompt), 0)
		a.out.wrapped("あなた: "+t.Response, 2)
		a.out.styled(a.feedbackColor(t.Success), "フィードバック: "+t.Feedback, 2)
		a.out.blank()
	}
	return nil
}

func (a *App) feedbackColor(success bool) *color.Color {
	if success {
		return a.out.good
	}
	return a.out.warn
}
