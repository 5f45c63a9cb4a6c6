package model

import (
	"strings"
	"time"
)

// Stage names a step of the answering cascade.
type Stage string

const (
	StageMatch    Stage = "match"
	StageClassify Stage = "classify"
	StagePlan     Stage = "plan"
	StageRetrieve Stage = "retrieve"
	StageFallback Stage = "fallback"
)

// Source tells where the final answer came from.
type Source string

const (
	SourceKG   Source = "kg"
	SourceLLM  Source = "llm"
	SourceNone Source = "none"
)

// Answer is the formatted deterministic answer. Empty means "no deterministic answer".
type Answer struct {
	Lines []string
}

// Empty reports whether no line was produced.
func (a Answer) Empty() bool {
	return len(a.Lines) == 0
}

// Text joins the lines, one per intent.
func (a Answer) Text() string {
	return strings.Join(a.Lines, "\n")
}

// Turn carries one question through the cascade. It is created per question and
// never shared between questions.
type Turn struct {
	RunID    string
	Question string

	Entities       Entities
	Classification *Classification
	Plan           QueryPlan
	Answer         Answer

	// ExitStage is the stage whose empty result sent the turn to the fallback.
	ExitStage Stage
	// GraphErr is set when retrieval failed after retries.
	GraphErr error

	Final    string
	Source   Source
	Degraded bool
}

// Response is what the caller of the cascade receives.
type Response struct {
	RunID    string        `json:"run_id"`
	Answer   string        `json:"answer"`
	Source   Source        `json:"source"`
	Stage    Stage         `json:"exit_stage,omitempty"`
	Degraded bool          `json:"degraded"`
	Elapsed  time.Duration `json:"elapsed"`
}
