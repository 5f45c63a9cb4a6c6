package model

// Intent is the relationship a question asks about for a disease.
type Intent string

const (
	IntentSymptom Intent = "symptom"
	IntentFood    Intent = "food"
	IntentDrug    Intent = "drug"
)

// Intents lists the supported intents in evaluation order.
var Intents = []Intent{IntentSymptom, IntentFood, IntentDrug}

// Supported reports whether the query builder has a template for i.
func (i Intent) Supported() bool {
	switch i {
	case IntentSymptom, IntentFood, IntentDrug:
		return true
	}
	return false
}

// Classification is the result of classifying one question.
// Intents may be empty while Entities is not; that still ends in the fallback.
type Classification struct {
	Entities Entities `json:"entities"`
	Intents  []Intent `json:"intents"`
}

// HasIntent reports whether i was selected.
func (c Classification) HasIntent(i Intent) bool {
	for _, in := range c.Intents {
		if in == i {
			return true
		}
	}
	return false
}
