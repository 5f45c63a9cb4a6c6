package model

// Statement is one parametrized graph query.
type Statement struct {
	Cypher string         `json:"cypher"`
	Params map[string]any `json:"params"`
}

// PlanItem groups the statements answering one intent.
type PlanItem struct {
	Intent     Intent      `json:"intent"`
	Statements []Statement `json:"statements"`
}

// QueryPlan is the ordered list of plan items for one question.
type QueryPlan []PlanItem

// Empty reports whether the plan has no statement to run.
func (p QueryPlan) Empty() bool {
	for _, item := range p {
		if len(item.Statements) > 0 {
			return false
		}
	}
	return true
}

// Record is one result row: column name -> scalar value.
type Record map[string]any

// Result columns every template returns.
const (
	ColDisease  = "disease"
	ColRelation = "relation"
	ColTarget   = "target"
)

// String returns the column as a string, or "" when absent or not a string.
func (r Record) String(col string) string {
	if v, ok := r[col].(string); ok {
		return v
	}
	return ""
}
