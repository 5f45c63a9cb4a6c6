// Package dict loads the curated medical term lists once at startup.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

// Files maps each entity type to its newline-delimited term list.
var Files = map[model.EntityType]string{
	model.Disease: "disease.txt",
	model.Drug:    "drug.txt",
	model.Food:    "food.txt",
	model.Symptom: "symptom.txt",
}

// Dictionary holds the term sets and the term -> types table. Immutable after Load.
type Dictionary struct {
	sets  map[model.EntityType]map[string]struct{}
	types map[string][]model.EntityType
	terms []string
}

// Load reads the four lists from dir. A missing, unreadable or empty list is a
// configuration error.
func Load(dir string) (*Dictionary, error) {
	lists := make(map[model.EntityType][]string, len(Files))
	for _, t := range model.EntityTypes {
		path := filepath.Join(dir, Files[t])
		words, err := readList(path)
		if err != nil {
			return nil, errx.Config("load %s dictionary %s: %v", t, path, err)
		}
		if len(words) == 0 {
			return nil, errx.Config("%s dictionary %s is empty", t, path)
		}
		lists[t] = words
	}
	return New(lists), nil
}

// New builds a dictionary from in-memory lists. Blank entries are skipped.
func New(lists map[model.EntityType][]string) *Dictionary {
	d := &Dictionary{
		sets:  make(map[model.EntityType]map[string]struct{}, len(lists)),
		types: make(map[string][]model.EntityType),
	}
	for _, t := range model.EntityTypes {
		set := make(map[string]struct{}, len(lists[t]))
		for _, w := range lists[t] {
			if w = strings.TrimSpace(w); w != "" {
				set[w] = struct{}{}
			}
		}
		d.sets[t] = set
	}

	// types follow model.EntityTypes order so a term's type list is stable
	for _, t := range model.EntityTypes {
		for w := range d.sets[t] {
			if _, seen := d.types[w]; !seen {
				d.terms = append(d.terms, w)
			}
			d.types[w] = append(d.types[w], t)
		}
	}
	return d
}

func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return words, nil
}

// Terms returns the union of all terms. Order is unspecified.
func (d *Dictionary) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}

// Types returns the semantic types of term, nil when unknown.
func (d *Dictionary) Types(term string) []model.EntityType {
	return d.types[term]
}

// Contains reports whether term is in the list of type t.
func (d *Dictionary) Contains(t model.EntityType, term string) bool {
	_, ok := d.sets[t][term]
	return ok
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.terms)
}
