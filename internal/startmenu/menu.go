// Package startmenu searches the windows that can be brought back from the
// taskbar start button.
package startmenu

import (
	"fmt"
	"log"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sahilm/fuzzy"

	"github.com/chess10kp/xpdesk/internal/winstate"
)

// Source is the window manager view the menu searches.
type Source interface {
	Restorable() []winstate.Entry
	Generation() uint64
	Activate(id string) bool
}

type Options struct {
	MaxResults int
	MinScore   int
	CacheSize  int
}

func DefaultOptions() Options {
	return Options{MaxResults: 10, MinScore: 25, CacheSize: 64}
}

// Stats reports cache effectiveness.
type Stats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

type Menu struct {
	src    Source
	opts   Options
	cache  *lru.Cache[string, []winstate.Entry]
	hits   uint64
	misses uint64
}

func New(src Source, opts Options) (*Menu, error) {
	def := DefaultOptions()
	if opts.MaxResults <= 0 {
		opts.MaxResults = def.MaxResults
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = def.CacheSize
	}

	cache, err := lru.New[string, []winstate.Entry](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &Menu{src: src, opts: opts, cache: cache}, nil
}

// entries adapts restorable entries to fuzzy.Source so duplicate titles
// keep their own index.
type entries []winstate.Entry

func (e entries) String(i int) string { return e[i].Title }
func (e entries) Len() int            { return len(e) }

// Search returns the restorable windows matching query, best first. An
// empty query lists every restorable window, closed ones first.
func (m *Menu) Search(query string) []winstate.Entry {
	query = strings.TrimSpace(query)
	key := fmt.Sprintf("%s:%d", strings.ToLower(query), m.src.Generation())
	if cached, ok := m.cache.Get(key); ok {
		m.hits++
		return append([]winstate.Entry(nil), cached...)
	}
	m.misses++

	all := entries(m.src.Restorable())
	var results []winstate.Entry
	if query == "" {
		results = all[:min(len(all), m.opts.MaxResults)]
	} else {
		results = m.match(query, all)
	}

	results = append([]winstate.Entry(nil), results...)
	m.cache.Add(key, results)
	log.Printf("[STARTMENU] query=%q matched %d of %d windows", query, len(results), len(all))
	return append([]winstate.Entry(nil), results...)
}

func (m *Menu) match(query string, all entries) []winstate.Entry {
	matches := fuzzy.FindFrom(query, all)

	filtered := make([]fuzzy.Match, 0, len(matches))
	for _, match := range matches {
		if match.Score >= m.opts.MinScore {
			filtered = append(filtered, match)
		}
	}

	// Prefix matches first, then by score.
	lower := strings.ToLower(query)
	sort.SliceStable(filtered, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(filtered[i].Str), lower)
		pj := strings.HasPrefix(strings.ToLower(filtered[j].Str), lower)
		if pi != pj {
			return pi
		}
		return filtered[i].Score > filtered[j].Score
	})

	out := make([]winstate.Entry, 0, min(len(filtered), m.opts.MaxResults))
	for i := 0; i < len(filtered) && i < m.opts.MaxResults; i++ {
		out = append(out, all[filtered[i].Index])
	}
	return out
}

// Launch activates the best match for query.
func (m *Menu) Launch(query string) (winstate.Entry, error) {
	results := m.Search(query)
	if len(results) == 0 {
		return winstate.Entry{}, fmt.Errorf("no restorable window matches %q", query)
	}
	best := results[0]
	if !m.src.Activate(best.ID) {
		return winstate.Entry{}, fmt.Errorf("window %s is no longer restorable", best.ID)
	}
	log.Printf("[STARTMENU] launched %s (%s)", best.ID, best.Kind)
	return best, nil
}

// Invalidate drops every cached result.
func (m *Menu) Invalidate() {
	m.cache.Purge()
}

func (m *Menu) Stats() Stats {
	return Stats{Size: m.cache.Len(), Hits: m.hits, Misses: m.misses}
}
