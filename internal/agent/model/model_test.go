package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestEntitiesHelpers(t *testing.T) {
	es := Entities{
		{Term: "感冒", Types: []EntityType{Disease}},
		{Term: "发热", Types: []EntityType{Disease, Symptom}},
		{Term: "苹果", Types: []EntityType{Food}},
	}

	assert.False(t, es.Empty())
	assert.True(t, es.Has(Symptom))
	assert.False(t, es.Has(Drug))
	assert.Equal(t, []string{"感冒", "发热"}, es.Terms(Disease))
	assert.Equal(t, []EntityType{Disease, Symptom}, es.AsMap()["发热"])
	assert.True(t, Entities(nil).Empty())
}

func TestQueryPlanEmpty(t *testing.T) {
	assert.True(t, QueryPlan(nil).Empty())
	assert.True(t, QueryPlan{{Intent: IntentFood}}.Empty())
	assert.False(t, QueryPlan{{Intent: IntentFood, Statements: []Statement{{Cypher: "RETURN 1"}}}}.Empty())
}

func TestAnswerText(t *testing.T) {
	a := Answer{Lines: []string{"a", "b"}}
	assert.Equal(t, "a\nb", a.Text())
	assert.True(t, Answer{}.Empty())
}

func TestRecordString(t *testing.T) {
	r := Record{ColDisease: "感冒", ColTarget: 42}
	assert.Equal(t, "感冒", r.String(ColDisease))
	assert.Equal(t, "", r.String(ColTarget))
	assert.Equal(t, "", r.String(ColRelation))
}

func TestComputeCost(t *testing.T) {
	usage := &schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000}
	in, out, total := ComputeCost(usage, ResolvePricing("gemini-2.5-flash"))
	assert.InDelta(t, 0.30, in, 1e-9)
	assert.InDelta(t, 1.25, out, 1e-9)
	assert.InDelta(t, 1.55, total, 1e-9)

	_, _, zero := ComputeCost(usage, ResolvePricing("unknown"))
	assert.Zero(t, zero)
}
