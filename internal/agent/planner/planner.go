// Package planner turns a classification into parametrized Cypher statements.
package planner

import (
	"fmt"
	"regexp"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

// ParamName is the bound parameter carrying the disease name.
const ParamName = "name"

const template = "MATCH (m:Disease)-[r:`%s`]->(n:%s) WHERE m.name = $" + ParamName +
	" RETURN m.name AS " + model.ColDisease + ", r.name AS " + model.ColRelation + ", n.name AS " + model.ColTarget

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var targetLabels = map[model.Intent]string{
	model.IntentSymptom: "Symptom",
	model.IntentFood:    "Food",
	model.IntentDrug:    "Drug",
}

type Planner struct {
	templates map[model.Intent]string
}

// New compiles one query template per supported intent. Relationship types come
// from configuration and must be plain identifiers.
func New(cfg model.GraphConfig) (*Planner, error) {
	rels := map[model.Intent]string{
		model.IntentSymptom: cfg.RelSymptom,
		model.IntentFood:    cfg.RelFood,
		model.IntentDrug:    cfg.RelDrug,
	}

	p := &Planner{templates: make(map[model.Intent]string, len(rels))}
	for intent, rel := range rels {
		if !identifier.MatchString(rel) {
			return nil, errx.Config("relationship type for %s intent must be an identifier, got %q", intent, rel)
		}
		p.templates[intent] = fmt.Sprintf(template, rel, targetLabels[intent])
	}
	return p, nil
}

// Build emits one statement per disease entity for every supported intent, in
// classification order. Intents without a template or without disease entities
// are left out of the plan.
func (p *Planner) Build(c model.Classification) model.QueryPlan {
	diseases := c.Entities.Terms(model.Disease)
	if len(diseases) == 0 {
		return nil
	}

	var plan model.QueryPlan
	for _, intent := range c.Intents {
		cypher, ok := p.templates[intent]
		if !ok {
			continue
		}
		item := model.PlanItem{Intent: intent, Statements: make([]model.Statement, 0, len(diseases))}
		for _, d := range diseases {
			item.Statements = append(item.Statements, model.Statement{
				Cypher: cypher,
				Params: map[string]any{ParamName: d},
			})
		}
		plan = append(plan, item)
	}
	return plan
}
