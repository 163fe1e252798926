// Package dropdown implements the searchable select used by forms and /ui/options.
package dropdown

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Option is one selectable entry
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Hint  string `json:"hint,omitempty"`
}

// Dropdown holds the options built from a slice of domain values
type Dropdown[T any] struct {
	items   []T
	options []Option
	words   []string
}

// New maps items to options, keeping their order
func New[T any](items []T, mapper func(T) Option) *Dropdown[T] {
	d := &Dropdown[T]{
		items:   items,
		options: make([]Option, len(items)),
		words:   make([]string, len(items)),
	}
	for i, it := range items {
		opt := mapper(it)
		d.options[i] = opt
		d.words[i] = strings.TrimSpace(opt.Label + " " + opt.Hint)
	}
	return d
}

// Options returns every option in original order
func (d *Dropdown[T]) Options() []Option {
	return slices.Clone(d.options)
}

// Len returns the option count
func (d *Dropdown[T]) Len() int {
	return len(d.options)
}

// Filter returns options fuzzily matching query, best match first, at most limit
// (limit <= 0 means no limit). Matching ignores case and accents. An empty
// query returns the first options in original order.
func (d *Dropdown[T]) Filter(query string, limit int) []Option {
	query = strings.TrimSpace(query)
	if query == "" {
		return take(d.options, limit)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, d.words)
	// ties keep the original order
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.OriginalIndex - b.OriginalIndex
	})

	out := make([]Option, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, d.options[r.OriginalIndex])
	}
	return take(out, limit)
}

// Selected returns the item and option whose value matches
func (d *Dropdown[T]) Selected(value string) (T, Option, bool) {
	for i, opt := range d.options {
		if opt.Value == value {
			return d.items[i], opt, true
		}
	}
	var zero T
	return zero, Option{}, false
}

func take(opts []Option, limit int) []Option {
	if limit > 0 && len(opts) > limit {
		opts = opts[:limit]
	}
	return slices.Clone(opts)
}
