package scenario

var catalog = []Scenario{
	{
		ID:          "coffee-shop",
		Title:       "Coffee Shop",
		Description: "You are ordering a drink at a cosy cafe during the morning rush.",
		PartnerRole: "Barista",
		Goals: []string{
			"Order a drink clearly.",
			"Handle follow-up questions politely.",
			"Confirm your order before paying.",
		},
		Turns: []Turn{
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
				Prompt:         "Would you like that hot or iced?",
				Keywords:       []string{"hot", "iced", "either"},
				Hints:          []string{"温かいか冷たいかを選びましょう。"},
				SampleResponse: "Iced, please.",
				GrammarFocus:   "形容詞を使って注文の詳細を伝える練習です。",
			},
			{
				Prompt:         "Do you want any pastries today?",
				Keywords:       []string{"yes", "no", "croissant", "muffin"},
				Hints:          []string{"欲しいものがあれば追加で注文しましょう。"},
				SampleResponse: "No thanks, just the latte.",
				GrammarFocus:   "丁寧に断る表現 'No thanks, ...' を使ってみましょう。",
			},
		},
		Tips: []string{
			"注文する前に飲み物のサイズを考えておきましょう。",
			"聞き返す時は 'Could you repeat that, please?' を使いましょう。",
		},
		Phrasebook: []Phrase{
			{"I'd like a [drink], please.", "[飲み物]をお願いします。"},
			{"Can I have it iced?", "アイスにできますか？"},
			{"That's all, thank you.", "以上です、ありがとうございます。"},
		},
	},
	{
		ID:          "hotel-check-in",
		Title:       "Hotel Check-in",
		Description: "You arrive at the front desk of your hotel in the evening.",
		PartnerRole: "Receptionist",
		Goals: []string{
			"Confirm your reservation details.",
			"Make a simple request during check-in.",
			"Respond naturally to polite questions.",
		},
		Turns: []Turn{
			{
				Prompt:         "Good evening, welcome to Brightview Hotel. Do you have a reservation?",
				Keywords:       []string{"yes", "reservation", "booking"},
				Hints:          []string{"予約済みならそのことを伝えましょう。"},
				SampleResponse: "Yes, I booked a room under the name Sato.",
				GrammarFocus:   "予約について話す時は 'booked a room' を使います。",
			},
			{
				Prompt:         "May I see your passport, please?",
				Keywords:       []string{"here", "passport", "sure"},
				Hints:          []string{"差し出す時は 'Here you go.' が自然です。"},
				SampleResponse: "Of course, here you are.",
				GrammarFocus:   "丁寧に手渡す表現 'Here you are.' を使いましょう。",
			},
			{
				Prompt:         "Would you like a wake-up call for tomorrow morning?",
				Keywords:       []string{"yes", "no", "please"},
				Hints:          []string{"必要であれば希望の時間を伝えましょう。"},
				SampleResponse: "Yes, please. Could you call me at 6:30 a.m.?",
				GrammarFocus:   "希望を伝える丁寧な依頼文を練習しましょう。",
			},
		},
		Tips: []string{
			"宿泊に関する質問に 'Absolutely' や 'Not at the moment' などで答えると自然です。",
			"特別な希望があれば遠慮せずに伝えましょう。",
		},
		Phrasebook: []Phrase{
			{"I have a reservation under [name].", "[名前]で予約しています。"},
			{"Could I have a wake-up call at [time]?", "[時間]にモーニングコールをお願いできますか。"},
			{"Is breakfast included?", "朝食は含まれていますか？"},
		},
	},
	{
		ID:          "job-interview",
		Title:       "Job Interview",
		Description: "You are interviewing for a junior marketing position.",
		PartnerRole: "Interviewer",
		Goals: []string{
			"Introduce yourself professionally.",
			"Describe a past experience confidently.",
			"Ask a thoughtful question at the end.",
		},
		Turns: []Turn{
			{
				Prompt:         "Thanks for coming in today. Could you start by introducing yourself?",
				Keywords:       []string{"name", "experience", "student", "marketing"},
				Hints:          []string{"名前、経験、興味を簡潔にまとめましょう。"},
				SampleResponse: "My name is Keiko, and I recently graduated with a degree in marketing.",
				GrammarFocus:   "自己紹介では 'My name is ...' から始めましょう。",
			},
			{
				Prompt:         "Can you tell me about a project you're proud of?",
				Keywords:       []string{"project", "campaign", "team", "results"},
				Hints:          []string{"STAR 法で説明するとわかりやすくなります。"},
				SampleResponse: "I led a social media campaign at university that increased engagement by 30%.",
				GrammarFocus:   "過去の経験を語るときは過去形を使いましょう。",
			},
			{
				Prompt:         "Do you have any questions for us?",
				Keywords:       []string{"ask", "question", "role", "team"},
				Hints:          []string{"ポジティブな質問を用意しておくと好印象です。"},
				SampleResponse: "Yes, could you tell me more about the team I'll be working with?",
				GrammarFocus:   "面接の最後には感謝を伝えることも忘れずに。",
			},
		},
		Tips: []string{
			"具体例を挙げながら答えると説得力が増します。",
			"面接官の質問を復唱することで時間を稼げます。",
		},
		Phrasebook: []Phrase{
			{"I have experience in [area].", "[分野]での経験があります。"},
			{"One of my strengths is [skill].", "私の強みは[スキル]です。"},
			{"Thank you for the opportunity today.", "本日は機会をいただきありがとうございます。"},
		},
	},
}
