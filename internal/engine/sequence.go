package engine

import (
	"sort"
	"strings"

	"github.com/jask/jaskplan/internal/database/repository"
)

// Criterion selects the field or regime the sequencer orders by.
type Criterion int

const (
	ByCreation Criterion = iota
	ByCustom
	ByLock
	ByTShirtSize
	ByWSJF
	ByJobSize
	ByCoD
	ByComplexity
	ByEffort
	ByDoubt
	ByCostBV
	ByCostTC
	ByCostRROE
)

var criterionNames = map[Criterion]string{
	ByCreation:   "creation",
	ByCustom:     "custom",
	ByLock:       "lock",
	ByTShirtSize: "tshirt",
	ByWSJF:       "wsjf",
	ByJobSize:    "jobsize",
	ByCoD:        "cod",
	ByComplexity: "complexity",
	ByEffort:     "effort",
	ByDoubt:      "doubt",
	ByCostBV:     "cod_bv",
	ByCostTC:     "cod_tc",
	ByCostRROE:   "cod_rroe",
}

func (c Criterion) String() string {
	if name, ok := criterionNames[c]; ok {
		return name
	}
	return "creation"
}

// Criteria lists all criteria in cycle order for the view.
var Criteria = []Criterion{
	ByCreation, ByCustom, ByLock, ByTShirtSize, ByWSJF, ByJobSize, ByCoD,
	ByComplexity, ByEffort, ByDoubt, ByCostBV, ByCostTC, ByCostRROE,
}

// ParseCriterion maps a stored name back to its criterion; unknown names
// fall back to creation order.
func ParseCriterion(s string) Criterion {
	for c, name := range criterionNames {
		if name == s {
			return c
		}
	}
	return ByCreation
}

// Direction is the sort direction toggle.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection maps a stored name back to a direction; anything but
// "desc" is ascending.
func ParseDirection(s string) Direction {
	if s == "desc" {
		return Desc
	}
	return Asc
}

// SequenceInput bundles one sequencing request. Items and LockedOrder are
// snapshots; Sequence never mutates them.
type SequenceInput struct {
	Items       []repository.Item
	Criterion   Criterion
	Direction   Direction
	SizeLabels  []string
	LockedOrder []string
	WSJFMode    bool
}

// Sequence produces the display order: pinned reference anchors first
// (unless the criterion is custom or WSJF mode is active), then the body
// ordered by the criterion, then the sentinel. The input slice is never
// mutated.
func Sequence(in SequenceInput) []repository.Item {
	if len(in.Items) == 0 {
		return []repository.Item{}
	}
	pinRefs := in.Criterion != ByCustom && !in.WSJFMode

	var refs, body []repository.Item
	var sentinel *repository.Item
	for _, it := range in.Items {
		switch {
		case it.Kind == repository.KindSentinel && sentinel == nil:
			sentinel = &it
		case pinRefs && (it.Kind == repository.KindRefMin || it.Kind == repository.KindRefMax):
			refs = append(refs, it)
		default:
			body = append(body, it)
		}
	}
	// reference-min always precedes reference-max
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Kind == repository.KindRefMin && refs[j].Kind == repository.KindRefMax
	})

	body = orderBody(body, in.Criterion, in.Direction, in.SizeLabels, in.LockedOrder)

	out := make([]repository.Item, 0, len(in.Items))
	out = append(out, refs...)
	out = append(out, body...)
	if sentinel != nil {
		out = append(out, *sentinel)
	}
	return out
}

// orderBody orders the non-pinned portion of the backlog. It allocates a
// new slice; the input is left untouched.
func orderBody(items []repository.Item, c Criterion, dir Direction, sizeLabels, lockedOrder []string) []repository.Item {
	out := make([]repository.Item, len(items))
	copy(out, items)

	switch c {
	case ByCreation:
		// manual/creation order has no inherent direction
		return out
	case ByCustom, ByLock:
		out = applyLockedOrder(out, lockedOrder)
		// Reversing here also reverses the ledger-absent tail. That is
		// what the shipped behavior does for custom+descending; lock
		// never reverses. See DESIGN.md.
		if c == ByCustom && dir == Desc {
			reverse(out)
		}
		return out
	case ByTShirtSize:
		rank := labelRanks(sizeLabels)
		fallback := len(sizeLabels) // unknown labels share a trailing rank
		key := func(it repository.Item) int {
			if r, ok := rank[strings.ToLower(it.SizeLabel)]; ok {
				return r
			}
			return fallback
		}
		sort.SliceStable(out, func(i, j int) bool {
			ki, kj := key(out[i]), key(out[j])
			if ki != kj {
				return ki < kj
			}
			return lessTitle(out[i], out[j])
		})
	default:
		// numeric criteria, including wsjf density; an unknown criterion
		// degrades to comparing everything as 0 rather than failing
		sort.SliceStable(out, func(i, j int) bool {
			vi, vj := criterionValue(out[i], c), criterionValue(out[j], c)
			if vi != vj {
				return vi < vj
			}
			return lessTitle(out[i], out[j])
		})
	}
	if dir == Desc {
		reverse(out)
	}
	return out
}

// criterionValue returns the comparison key for numeric criteria. An
// incomplete triad forces job size and cost of delay (and therefore the
// WSJF density) to 0 even when raw sub-metrics are stored.
func criterionValue(it repository.Item, c Criterion) float64 {
	switch c {
	case ByWSJF:
		return density(it)
	case ByJobSize:
		return Derive(it).JobSize
	case ByCoD:
		return Derive(it).CoD
	case ByComplexity:
		return sanitize(it.Complexity)
	case ByEffort:
		return sanitize(it.Effort)
	case ByDoubt:
		return sanitize(it.Doubt)
	case ByCostBV:
		return sanitize(it.CostBV)
	case ByCostTC:
		return sanitize(it.CostTC)
	case ByCostRROE:
		return sanitize(it.CostRROE)
	default:
		return 0
	}
}

// applyLockedOrder reconstructs the manual permutation: ledger matches
// first in ledger order, then items the ledger does not mention, keeping
// their incoming relative order. Ledger ids with no matching item are
// skipped.
func applyLockedOrder(items []repository.Item, ledger []string) []repository.Item {
	byID := make(map[string]repository.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]repository.Item, 0, len(items))
	taken := make(map[string]bool, len(items))
	for _, id := range ledger {
		it, ok := byID[id]
		if !ok || taken[id] {
			continue
		}
		taken[id] = true
		out = append(out, it)
	}
	for _, it := range items {
		if !taken[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func labelRanks(labels []string) map[string]int {
	ranks := make(map[string]int, len(labels))
	for i, l := range labels {
		ranks[strings.ToLower(l)] = i
	}
	return ranks
}

func lessTitle(a, b repository.Item) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

func reverse(items []repository.Item) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
