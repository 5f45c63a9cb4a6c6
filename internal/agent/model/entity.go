package model

// EntityType is the semantic type of a dictionary term.
type EntityType string

const (
	Disease EntityType = "disease"
	Drug    EntityType = "drug"
	Food    EntityType = "food"
	Symptom EntityType = "symptom"
)

// EntityTypes lists the types in the order a term's types are reported.
var EntityTypes = []EntityType{Disease, Drug, Food, Symptom}

// Entity is a dictionary term found in the question together with all its types.
type Entity struct {
	Term  string       `json:"term"`
	Types []EntityType `json:"types"`
}

// Is reports whether the entity carries type t.
func (e Entity) Is(t EntityType) bool {
	for _, et := range e.Types {
		if et == t {
			return true
		}
	}
	return false
}

// Entities is the matched entity set, ordered by first occurrence in the question.
// Terms are unique.
type Entities []Entity

// Empty reports whether nothing was matched.
func (es Entities) Empty() bool {
	return len(es) == 0
}

// Has reports whether any entity carries type t.
func (es Entities) Has(t EntityType) bool {
	for _, e := range es {
		if e.Is(t) {
			return true
		}
	}
	return false
}

// Terms returns the terms typed t, in entity order.
func (es Entities) Terms(t EntityType) []string {
	var out []string
	for _, e := range es {
		if e.Is(t) {
			out = append(out, e.Term)
		}
	}
	return out
}

// AsMap returns the term -> types view.
func (es Entities) AsMap() map[string][]EntityType {
	m := make(map[string][]EntityType, len(es))
	for _, e := range es {
		m[e.Term] = e.Types
	}
	return m
}
