package practice

import "github.com/soyeahso/kaiwa/internal/scenario"

// TemplateCategory is a named set of ready-made replies for the quick
// response builder.
type TemplateCategory struct {
	Name      string
	Templates []string
}

var scenarios = []scenario.Scenario{
	{
		ID:          "coffee-shop",
		Title:       "Coffee Shop",
		Description: "You are ordering a drink at a cosy cafe during the morning rush.",
		PartnerRole: "Barista",
		Turns: []scenario.Turn{
			{
				Prompt:   "Good morning! What can I get started for you today?",
				Keywords: []string{"latte", "coffee", "tea", "americano", "cappuccino"},
				Hints: []string{
					"注文したい飲み物をはっきり伝えましょう。",
					"例: I'd like a latte, please.",
				},
				SampleResponse: "I'd like a vanilla latte, please.",
				GrammarFocus:   "注文には 'I'd like ...' が便利です。",
			},
			{
				Prompt:   "Would you like that hot or iced?",
				Keywords: []string{"hot", "iced", "either"},
				Hints: []string{
					"温かいか冷たいかを選ぶ質問です。",
					"hot = 温かい, iced = 氷入り",
				},
				SampleResponse: "Could I have it iced, please?",
				GrammarFocus:   "質問に合わせて形容詞で答える練習です。",
			},
			{
				Prompt:   "Anything else for you today?",
				Keywords: []string{"that's all", "that's it", "just", "no"},
				Hints: []string{
					"追加注文が必要か聞かれています。",
					"that's all = 以上です",
				},
				SampleResponse: "No, that's all for now, thank you.",
				GrammarFocus:   "丁寧に断る表現。",
			},
			{
				Prompt:   "Great! Can I have your name for the order?",
				Keywords: []string{"it's", "my name", "call me"},
				Hints: []string{
					"名前を伝えるフレーズを使ってみましょう。",
					"例: It's Ken.",
				},
				SampleResponse: "Sure, it's Aya.",
				GrammarFocus:   "自己紹介に使える 'It's ...' の形。",
			},
		},
		Tips: []string{
			"注文するときは 'I'd like ...' や 'Could I have ...' を使いましょう。",
			"最後にお礼を伝えると丁寧な印象になります。",
		},
		Phrasebook: []scenario.Phrase{
			{English: "I'd like a latte, please.", Japanese: "ラテをお願いします。"},
			{English: "Could you make that decaf?", Japanese: "デカフェにしていただけますか。"},
			{English: "That's all for now, thanks.", Japanese: "以上でお願いします。"},
			{English: "Can I have it to go?", Japanese: "持ち帰りでお願いします。"},
		},
	},
	{
		ID:          "new-coworker",
		Title:       "New Coworker",
		Description: "You are meeting a new coworker on your first day at the office.",
		PartnerRole: "Coworker",
		Turns: []scenario.Turn{
			{
				Prompt:   "Hi, I'm Sarah from marketing. Are you new here?",
				Keywords: []string{"nice", "meet", "yes", "first day"},
				Hints: []string{
					"挨拶と自己紹介の表現を組み合わせましょう。",
					"例: Yes, I'm new here. Nice to meet you!",
				},
				SampleResponse: "Yes, I just joined the product team. Nice to meet you!",
				GrammarFocus:   "自己紹介と挨拶の組み合わせ。",
			},
			{
				Prompt:   "What kind of projects will you be working on?",
				Keywords: []string{"project", "working", "app", "service", "plan"},
				Hints: []string{
					"担当予定の仕事を簡単に説明しましょう。",
					"project = プロジェクト、取り組み",
				},
				SampleResponse: "I'll be working on our mobile app redesign and some user interviews.",
				GrammarFocus:   "未来の予定には 'will' や 'be going to'。",
			},
			{
				Prompt:   "Let me know if you need any help settling in.",
				Keywords: []string{"thank", "appreciate", "that's kind"},
				Hints: []string{
					"助けの申し出には感謝を伝えます。",
					"thank you so much = とてもありがとう",
				},
				SampleResponse: "Thank you, I really appreciate it!",
				GrammarFocus:   "感謝を伝える表現。",
			},
			{
				Prompt:   "Do you want to grab lunch together sometime?",
				Keywords: []string{"sure", "love", "sounds", "great"},
				Hints: []string{
					"誘いには肯定的に答えてみましょう。",
					"例: That sounds great!",
				},
				SampleResponse: "That sounds great. I'd love to!",
				GrammarFocus:   "誘いに応じる表現。",
			},
		},
		Tips: []string{
			"自己紹介では笑顔と挨拶を忘れずに。",
			"質問で会話を続けると、距離が縮まります。",
		},
		Phrasebook: []scenario.Phrase{
			{English: "Nice to meet you!", Japanese: "お会いできて嬉しいです。"},
			{English: "I just joined the team this week.", Japanese: "今週チームに加わったばかりです。"},
			{English: "Thanks, I appreciate your help.", Japanese: "ありがとうございます、助かります。"},
			{English: "Let's have lunch together soon.", Japanese: "近いうちに一緒にランチしましょう。"},
		},
	},
	{
		ID:          "asking-for-directions",
		Title:       "Asking for Directions",
		Description: "You are travelling in a new city and ask a friendly local for directions.",
		PartnerRole: "Local resident",
		Turns: []scenario.Turn{
			{
				Prompt:   "Hi there, you look a little lost. Where are you trying to go?",
				Keywords: []string{"station", "museum", "hotel", "downtown", "airport"},
				Hints: []string{
					"目的地を伝えるフレーズを使いましょう。",
					"例: I'm trying to get to the station.",
				},
				SampleResponse: "I'm trying to get to the central station.",
				GrammarFocus:   "目的地を伝える 'I'm trying to get to ...'。",
			},
			{
				Prompt:   "It's about ten minutes from here. Do you want the quickest route or the scenic route?",
				Keywords: []string{"quick", "fast", "scenic", "either"},
				Hints: []string{
					"quickest route = 最短ルート, scenic route = 景色が良いルート",
				},
				SampleResponse: "The quickest route would be great, please.",
				GrammarFocus:   "好みを尋ねられた時の答え方。",
			},
			{
				Prompt:   "You'll need to take the subway at Maple Street. Do you know how to buy a ticket?",
				Keywords: []string{"yes", "no", "not really", "i do"},
				Hints: []string{
					"切符の買い方を知っているかを答えましょう。",
					"例: I'm not sure.",
				},
				SampleResponse: "I'm not sure. Could you show me?",
				GrammarFocus:   "助けを求める表現。",
			},
			{
				Prompt:   "Safe travels! Anything else you need help with?",
				Keywords: []string{"thank", "that's all", "no", "appreciate"},
				Hints: []string{
					"最後にお礼を伝えましょう。",
					"例: That's all, thank you so much!",
				},
				SampleResponse: "No, that's all. Thank you so much!",
				GrammarFocus:   "会話の締め方。",
			},
		},
		Tips: []string{
			"道を尋ねるときは礼儀正しく、ありがとうを忘れずに。",
			"目的地は 'I'm looking for ...' の形でも伝えられます。",
		},
		Phrasebook: []scenario.Phrase{
			{English: "Could you point me towards the station?", Japanese: "駅までの道を教えてくれますか。"},
			{English: "Is it within walking distance?", Japanese: "歩いて行ける距離ですか。"},
			{English: "Thank you for your help!", Japanese: "助けてくれてありがとうございます。"},
		},
	},
}

// basePhrasebook holds the general-purpose categories that scenario phrases
// are merged into.
var basePhrasebook = map[string][]scenario.Phrase{
	"Greetings": {
		{English: "Good morning!", Japanese: "おはようございます。"},
		{English: "How's it going?", Japanese: "調子はどうですか。"},
		{English: "It's nice to see you again.", Japanese: "またお会いできて嬉しいです。"},
	},
	"Small Talk": {
		{English: "The weather is lovely today, isn't it?", Japanese: "今日はいい天気ですね。"},
		{English: "Have you been to this café before?", Japanese: "このカフェに来たことはありますか。"},
		{English: "What do you usually do on weekends?", Japanese: "週末は普段何をしますか。"},
	},
	"Travel": {
		{English: "Where is the nearest subway station?", Japanese: "最寄りの地下鉄駅はどこですか。"},
		{English: "How much is a ticket to downtown?", Japanese: "中心部までの切符はいくらですか。"},
		{English: "Could you recommend a local restaurant?", Japanese: "地元のおすすめレストランを教えてください。"},
	},
}

var responseTemplates = []TemplateCategory{
	{
		Name: "Agreeing",
		Templates: []string{
			"I couldn't agree more.",
			"That's exactly what I was thinking.",
			"You're absolutely right about that.",
		},
	},
	{
		Name: "Politely disagreeing",
		Templates: []string{
			"I see what you mean, but I have a different view.",
			"That's an interesting point, although I tend to disagree.",
			"I appreciate your idea, but I'm not entirely convinced.",
		},
	},
	{
		Name: "Asking for time",
		Templates: []string{
			"Do you have a minute to talk?",
			"Is now a good time to discuss this?",
			"Could we set up a time to go over the details?",
		},
	},
	{
		Name: "Expressing gratitude",
		Templates: []string{
			"Thanks a lot for your help today.",
			"I really appreciate your support on this.",
			"That was very kind of you. Thank you!",
		},
	},
	{
		Name: "Buying time",
		Templates: []string{
			"Let me think about that for a second.",
			"That's a good question. Give me a moment.",
			"I'll need a bit more time to consider it.",
		},
	},
}

// Scenarios returns the practice scenarios in menu order.
func Scenarios() []scenario.Scenario {
	return append([]scenario.Scenario(nil), scenarios...)
}

// Templates returns the quick response categories in menu order.
func Templates() []TemplateCategory {
	return append([]TemplateCategory(nil), responseTemplates...)
}

// BuildPhrasebook merges each scenario's phrases into the base categories,
// keyed by scenario title. A phrase already present in a category is not
// repeated.
func BuildPhrasebook(scs []scenario.Scenario) map[string][]scenario.Phrase {
	book := make(map[string][]scenario.Phrase, len(basePhrasebook)+len(scs))
	for name, phrases := range basePhrasebook {
		book[name] = append([]scenario.Phrase(nil), phrases...)
	}
	for _, sc := range scs {
		for _, p := range sc.Phrasebook {
			if !containsPhrase(book[sc.Title], p) {
				book[sc.Title] = append(book[sc.Title], p)
			}
		}
		if _, ok := book[sc.Title]; !ok {
			book[sc.Title] = nil
		}
	}
	return book
}

func containsPhrase(phrases []scenario.Phrase, p scenario.Phrase) bool {
	for _, q := range phrases {
		if q == p {
			return true
		}
	}
	return false
}
