package retriever

import (
	"fmt"
	"strings"

	"github.com/redspider/medqa/internal/agent/model"
)

// DefaultLimit caps the items listed in one answer line.
const DefaultLimit = 10

const separator = "；"

var headings = map[model.Intent]string{
	model.IntentSymptom: "%s的症状包括: ",
	model.IntentFood:    "%s推荐饮食/食谱包括: ",
	model.IntentDrug:    "%s常用/推荐药品包括: ",
}

// Format renders the rows of one intent as a single line. It returns "" when the
// intent is unknown, the subject is missing or no target survives.
func Format(intent model.Intent, rows []model.Record, limit int) string {
	heading, ok := headings[intent]
	if !ok || len(rows) == 0 {
		return ""
	}
	subject := rows[0].String(model.ColDisease)
	if subject == "" {
		return ""
	}
	targets := dedupe(rows, limit)
	if len(targets) == 0 {
		return ""
	}
	return fmt.Sprintf(heading, subject) + strings.Join(targets, separator)
}

// dedupe keeps the first occurrence of each target, in row order.
func dedupe(rows []model.Record, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, min(len(rows), limit))
	for _, r := range rows {
		t := r.String(model.ColTarget)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
