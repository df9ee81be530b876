// Package scenario holds the fixed catalog of role-play scenarios served by
// the web backend.
package scenario

import (
	"fmt"
	"strings"

	"github.com/soyeahso/kaiwa/internal/domain"
)

// Turn is one scripted step of a scenario.
type Turn struct {
	Prompt         string
	Keywords       []string
	Hints          []string
	SampleResponse string
	GrammarFocus   string
}

// Phrase is an English phrase and its Japanese translation.
type Phrase struct {
	English  string
	Japanese string
}

// Scenario is a role-play setup. Values from the catalog must be treated as
// read-only.
type Scenario struct {
	ID          string
	Title       string
	Description string
	PartnerRole string
	Goals       []string
	Turns       []Turn
	Tips        []string
	Phrasebook  []Phrase
}

const systemPromptTemplate = "You are role-playing as the %s in the '%s' scenario. " +
	"Stay true to the situation: %s. Provide warm, " +
	"encouraging replies that invite the learner to keep speaking. " +
	"Offer gentle corrections when necessary and guide the " +
	"conversation toward these goals: %s."

// SystemPrompt renders the instruction that opens every session for s.
func (s Scenario) SystemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate,
		s.PartnerRole, s.Title, s.Description, strings.Join(s.Goals, ", "))
}

// Resource converts s into its wire shape. The returned value shares no
// slices with s.
func (s Scenario) Resource() domain.ScenarioResource {
	turns := make([]domain.TurnResource, len(s.Turns))
	for i, t := range s.Turns {
		turns[i] = domain.TurnResource{
			Prompt:         t.Prompt,
			Hints:          cloneStrings(t.Hints),
			SampleResponse: t.SampleResponse,
			GrammarFocus:   t.GrammarFocus,
		}
	}
	return domain.ScenarioResource{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		PartnerRole: s.PartnerRole,
		Goals:       cloneStrings(s.Goals),
		Turns:       turns,
		Tips:        cloneStrings(s.Tips),
		Phrasebook:  phraseEntries(s.Phrasebook),
	}
}

// List returns every scenario in catalog order.
func List() []Scenario {
	out := make([]Scenario, len(catalog))
	copy(out, catalog)
	return out
}

// Get looks up a scenario by id.
func Get(id string) (Scenario, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// Default is the scenario used when a session is created without an id: the
// first entry of the catalog.
func Default() Scenario {
	return catalog[0]
}

// Resolve returns the scenario for id, or Default when id is empty.
func Resolve(id string) (Scenario, error) {
	if id == "" {
		return Default(), nil
	}
	s, ok := Get(id)
	if !ok {
		return Scenario{}, domain.UnknownScenario(id)
	}
	return s, nil
}

// PhrasebookSections groups the phrasebook of each scenario under its title.
func PhrasebookSections() []domain.PhrasebookSection {
	sections := make([]domain.PhrasebookSection, 0, len(catalog))
	for _, s := range catalog {
		sections = append(sections, domain.PhrasebookSection{
			Title:   s.Title,
			Phrases: phraseEntries(s.Phrasebook),
		})
	}
	return sections
}

func phraseEntries(phrases []Phrase) []domain.PhrasebookEntry {
	out := make([]domain.PhrasebookEntry, len(phrases))
	for i, p := range phrases {
		out[i] = domain.PhrasebookEntry{English: p.English, Japanese: p.Japanese}
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
