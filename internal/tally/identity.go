package tally

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

// GroupBy selects the aggregation key for author grouping.
type GroupBy string

// Supported grouping modes.
const (
	GroupByName  GroupBy = "name"
	GroupByEmail GroupBy = "email"
)

// ErrUnknownGroupBy indicates an unsupported grouping mode string.
var ErrUnknownGroupBy = errors.New("group-by must be one of: name, email")

// ParseGroupBy validates a grouping mode string.
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case GroupByName, GroupByEmail:
		return GroupBy(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownGroupBy, s)
	}
}

// foldCaser performs Unicode case folding so that "Ada" and "ADA" (and
// non-ASCII equivalents) land in one group. Caseless by construction, so
// it is safe to share.
var foldCaser = cases.Fold()

// foldKey normalizes an author name or email into an aggregation key.
func foldKey(s string) string {
	return foldCaser.String(s)
}

// variantSet tracks the spellings seen for one identity field, their
// frequency and first-seen order.
type variantSet struct {
	counts map[string]int
	order  []string
}

func newVariantSet() *variantSet {
	return &variantSet{counts: map[string]int{}}
}

func (v *variantSet) add(s string) {
	if _, seen := v.counts[s]; !seen {
		v.order = append(v.order, s)
	}

	v.counts[s]++
}

// canonical returns the first spelling ever seen, or "".
func (v *variantSet) canonical() string {
	if len(v.order) == 0 {
		return ""
	}

	return v.order[0]
}

// byFrequency returns all spellings, most frequent first; ties keep
// first-seen order so output is deterministic.
func (v *variantSet) byFrequency() []string {
	variants := make([]string, len(v.order))
	copy(variants, v.order)

	sort.SliceStable(variants, func(i, j int) bool {
		return v.counts[variants[i]] > v.counts[variants[j]]
	})

	return variants
}
