package location

import (
	"bytes"
	"errors"
	"fmt"
	rege "regexp"
	"slices"
	"strings"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"

	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
	"github.com/blevesearch/vellum/regexp"
)

const (
	MAX_EDIT_DISTANCE = 2
)

var (
	ErrEditDistance = errors.New("edit distance out of range")
)

// CleanString keeps only ascii letters and spaces, lower cased.
func CleanString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
			sb.WriteRune(c + ('a' - 'A'))
		case c >= 'a' && c <= 'z', c == ' ':
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

type entry struct {
	names     []string
	locations []datastructure.Location
}

// Index location search over named osm nodes. keys of the fst are cleaned names, outputs index entries.
// read only after NewIndex, safe for concurrent use.
type Index struct {
	fst     *vellum.FST
	entries []entry
}

// NewIndex builds the fst from locations. locations sharing a cleaned name keep their arrival order.
func NewIndex(locations []datastructure.Location) (*Index, error) {
	byKey := make(map[string]*entry)
	for _, loc := range locations {
		key := CleanString(loc.Name)
		e, ok := byKey[key]
		if !ok {
			e = &entry{}
			byKey[key] = e
		}
		if !slices.Contains(e.names, loc.Name) {
			e.names = append(e.names, loc.Name)
		}
		e.locations = append(e.locations, loc)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	idx := &Index{
		entries: make([]entry, 0, len(keys)),
	}
	if len(keys) == 0 {
		return idx, nil
	}

	var buf bytes.Buffer
	fstBuilder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}

	for i, key := range keys {
		if err := fstBuilder.Insert([]byte(key), uint64(i)); err != nil {
			return nil, fmt.Errorf("insert location %q: %w", key, err)
		}
		idx.entries = append(idx.entries, *byKey[key])
	}

	if err := fstBuilder.Close(); err != nil {
		return nil, err
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	idx.fst = fst
	return idx, nil
}

// Len number of distinct cleaned names.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Locations every location whose cleaned name equals the cleaned name.
func (idx *Index) Locations(name string) []datastructure.Location {
	if idx.fst == nil {
		return []datastructure.Location{}
	}
	out, exists, err := idx.fst.Get([]byte(CleanString(name)))
	if err != nil || !exists {
		return []datastructure.Location{}
	}
	return slices.Clone(idx.entries[out].locations)
}

// Prefix full names of locations whose cleaned name starts with the cleaned prefix, in key order.
// limit <= 0 means no limit.
func (idx *Index) Prefix(prefix string, limit int) ([]string, error) {
	if idx.fst == nil {
		return []string{}, nil
	}

	prefixReg := fmt.Sprintf(`%s.*`, rege.QuoteMeta(CleanString(prefix)))
	regAutomaton, err := regexp.New(prefixReg)
	if err != nil {
		return []string{}, fmt.Errorf("error when initializing regex automaton: %w", err)
	}

	names := []string{}
	err = idx.search(regAutomaton, func(e entry) bool {
		for _, name := range e.names {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
			if limit > 0 && len(names) >= limit {
				return false
			}
		}
		return true
	})
	return names, err
}

// Fuzzy locations whose cleaned name is within editDistance of the cleaned name.
func (idx *Index) Fuzzy(name string, editDistance int) ([]datastructure.Location, error) {
	if editDistance < 0 || editDistance > MAX_EDIT_DISTANCE {
		return []datastructure.Location{}, fmt.Errorf("%w: %d", ErrEditDistance, editDistance)
	}
	if idx.fst == nil {
		return []datastructure.Location{}, nil
	}

	lv, err := levenshtein.NewLevenshteinAutomatonBuilder(uint8(editDistance), false)
	if err != nil {
		return []datastructure.Location{}, err
	}
	dfa, err := lv.BuildDfa(CleanString(name), uint8(editDistance))
	if err != nil {
		return []datastructure.Location{}, err
	}

	locations := []datastructure.Location{}
	err = idx.search(dfa, func(e entry) bool {
		locations = append(locations, e.locations...)
		return true
	})
	return locations, err
}

// search visits matching entries in key order until visit returns false.
func (idx *Index) search(aut vellum.Automaton, visit func(e entry) bool) error {
	fstIt, err := idx.fst.Search(aut, nil, nil)
	for err == nil {
		_, out := fstIt.Current()
		if !visit(idx.entries[out]) {
			return nil
		}
		err = fstIt.Next()
	}
	if errors.Is(err, vellum.ErrIteratorDone) {
		return nil
	}
	return err
}
