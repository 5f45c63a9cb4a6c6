// Package matcher finds dictionary terms in a question with one Aho-Corasick scan.
package matcher

import (
	"sort"
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"github.com/redspider/medqa/internal/agent/dict"
	"github.com/redspider/medqa/internal/agent/model"
)

// Matcher is read-only after New and safe for concurrent use.
type Matcher struct {
	dict *dict.Dictionary
	trie *ahocorasick.Trie
}

func New(d *dict.Dictionary) *Matcher {
	return &Matcher{
		dict: d,
		trie: ahocorasick.NewTrieBuilder().AddStrings(d.Terms()).Build(),
	}
}

type hit struct {
	term string
	pos  int64
}

// Match returns the maximal dictionary terms found in text, ordered by first
// occurrence. A matched term contained in another matched term is dropped.
func (m *Matcher) Match(text string) model.Entities {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	first := make(map[string]int64)
	for _, mt := range m.trie.MatchString(text) {
		term := mt.MatchString()
		if p, ok := first[term]; !ok || mt.Pos() < p {
			first[term] = mt.Pos()
		}
	}
	if len(first) == 0 {
		return nil
	}

	hits := make([]hit, 0, len(first))
	for term, pos := range first {
		if contained(term, first) {
			continue
		}
		hits = append(hits, hit{term: term, pos: pos})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return hits[i].term < hits[j].term
	})

	out := make(model.Entities, 0, len(hits))
	for _, h := range hits {
		out = append(out, model.Entity{Term: h.term, Types: m.dict.Types(h.term)})
	}
	return out
}

func contained(term string, all map[string]int64) bool {
	for other := range all {
		if other != term && strings.Contains(other, term) {
			return true
		}
	}
	return false
}
