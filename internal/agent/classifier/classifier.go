// Package classifier decides which lookups a question asks for.
package classifier

import (
	"strings"

	"github.com/redspider/medqa/internal/agent/model"
)

type Classifier struct {
	keywords map[model.Intent][]string
}

// New returns a classifier over the built-in keyword lists.
func New() *Classifier {
	return NewWithKeywords(DefaultKeywords())
}

func NewWithKeywords(keywords map[model.Intent][]string) *Classifier {
	return &Classifier{keywords: keywords}
}

// Classify returns ok=false when entities is empty. Otherwise it selects every
// intent whose keywords occur in text, provided a disease entity is present.
// With no intent selected and a symptom entity present, the result is {symptom}.
func (c *Classifier) Classify(text string, entities model.Entities) (model.Classification, bool) {
	if entities.Empty() {
		return model.Classification{}, false
	}

	out := model.Classification{Entities: entities}
	hasDisease := entities.Has(model.Disease)
	for _, intent := range model.Intents {
		if hasDisease && containsAny(text, c.keywords[intent]) {
			out.Intents = append(out.Intents, intent)
		}
	}

	if len(out.Intents) == 0 && entities.Has(model.Symptom) {
		out.Intents = []model.Intent{model.IntentSymptom}
	}
	return out, true
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
