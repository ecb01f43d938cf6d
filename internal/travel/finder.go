package travel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

// maxLegs bounds the search: one direct leg plus up to three stopovers.
const maxLegs = 4

// Criterion selects the ranking applied to enumerated paths. Each
// criterion is a strict ordering with an explicit tie-break chain.
type Criterion int

const (
	// ByDefault orders by total duration and supports n-th selection.
	ByDefault Criterion = iota
	ByCost
	ByDuration
	ByStopovers
	ByLayover
	ByFlightTime
)

var criterionNames = map[string]Criterion{
	"sort":        ByDefault,
	"cost":        ByCost,
	"duration":    ByDuration,
	"stopovers":   ByStopovers,
	"layover":     ByLayover,
	"flight_time": ByFlightTime,
}

// ParseCriterion matches a criterion name case-insensitively.
func ParseCriterion(s string) (Criterion, error) {
	if c, ok := criterionNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("invalid sorting property: must be either cost, duration, stopovers, layover, or flight_time")
}

// less is the comparison for the criterion, including its tie-break
// ladder. Cost and duration tie-break on each other; the remaining named
// criteria fall through duration then cost.
func (c Criterion) less(a, b Path) bool {
	switch c {
	case ByCost:
		if ac, bc := a.TotalCost(), b.TotalCost(); ac != bc {
			return ac < bc
		}
		return a.TotalDuration() < b.TotalDuration()
	case ByStopovers:
		if as, bs := a.Stopovers(), b.Stopovers(); as != bs {
			return as < bs
		}
	case ByLayover:
		if al, bl := a.LayoverTime(), b.LayoverTime(); al != bl {
			return al < bl
		}
	case ByFlightTime:
		if af, bf := a.FlightTime(), b.FlightTime(); af != bf {
			return af < bf
		}
	}
	// ByDefault, ByDuration and the fall-through of the criteria above.
	if ad, bd := a.TotalDuration(), b.TotalDuration(); ad != bd {
		return ad < bd
	}
	if c == ByDefault {
		return false // stable index selection into the duration ordering
	}
	return a.TotalCost() < b.TotalCost()
}

// FindAll enumerates every path of one to four legs from start to end.
//
// The frontier starts with all single-leg paths out of start and is
// expanded exactly three more rounds. A path that reaches end is moved
// to the results and never re-expanded; unfinished paths may revisit a
// location, which is accepted under the hop bound.
//
// Adjacency is snapshotted from the network up front, so a caller
// mutating the network afterwards does not alias the search state.
func FindAll(n *network.Network, start, end *network.Location) []Path {
	adjacency := make(map[*network.Location][]*network.Flight)
	for _, f := range n.Flights() {
		adjacency[f.Source] = append(adjacency[f.Source], f)
	}

	var results []Path
	var frontier []Path
	classify := func(p Path) {
		if p.LastLocation() == end {
			results = append(results, p)
		} else {
			frontier = append(frontier, p)
		}
	}

	for _, f := range adjacency[start] {
		classify(Path{Legs: []*network.Flight{f}})
	}
	for round := 0; round < maxLegs-1; round++ {
		expanding := frontier
		frontier = nil
		for _, p := range expanding {
			for _, f := range adjacency[p.LastLocation()] {
				classify(p.extend(f))
			}
		}
	}
	return results
}

// Find runs the bounded enumeration and picks a single path under the
// criterion. For ByDefault, nth selects into the duration ordering,
// clamped to the valid range; named criteria always return the best.
// The second result is false when no route exists within the hop bound.
func Find(n *network.Network, start, end *network.Location, criterion Criterion, nth int) (Path, bool) {
	paths := FindAll(n, start, end)
	if len(paths) == 0 {
		return Path{}, false
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return criterion.less(paths[i], paths[j])
	})
	if criterion != ByDefault {
		nth = 0
	}
	if nth >= len(paths) {
		nth = len(paths) - 1
	}
	if nth < 0 {
		nth = 0
	}
	return paths[nth], true
}
