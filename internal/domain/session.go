package domain

// PhrasebookEntry pairs an English phrase with its Japanese translation.
type PhrasebookEntry struct {
	English  string `json:"english"`
	Japanese string `json:"japanese"`
}

// TurnResource is the client-facing shape of a scripted turn. Grading
// keywords are deliberately not part of it.
type TurnResource struct {
	Prompt         string   `json:"prompt"`
	Hints          []string `json:"hints"`
	SampleResponse string   `json:"sample_response"`
	GrammarFocus   string   `json:"grammar_focus"`
}

// ScenarioResource is the client-facing shape of a scenario.
type ScenarioResource struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	PartnerRole string            `json:"partner_role"`
	Goals       []string          `json:"goals"`
	Turns       []TurnResource    `json:"turns"`
	Tips        []string          `json:"tips"`
	Phrasebook  []PhrasebookEntry `json:"phrasebook"`
}

// PhrasebookSection groups phrasebook entries under a heading.
type PhrasebookSection struct {
	Title   string            `json:"title"`
	Phrases []PhrasebookEntry `json:"phrases"`
}

// ConversationState is a read-only snapshot of a session.
type ConversationState struct {
	SessionID string           `json:"session_id"`
	Scenario  ScenarioResource `json:"scenario"`
	Messages  []Message        `json:"messages"`
}
