package pipeline

import (
	"slices"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/collation"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// GroupByPhase buckets tasks by phase in first-seen order, keeping the
// order of tasks inside each bucket. Tasks without a phase go to
// domain.OtherPhase.
func GroupByPhase(tasks []domain.Task) []Group {
	index := map[string]int{}
	var groups []Group
	for _, t := range tasks {
		phase := strings.TrimSpace(t.Phase)
		if phase == "" {
			phase = domain.OtherPhase
		}
		i, ok := index[phase]
		if !ok {
			i = len(groups)
			index[phase] = i
			groups = append(groups, Group{Phase: phase})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// Facets lists the distinct values available to the advanced filters.
type Facets struct {
	Clients []string `json:"clients"`
	Phases  []string `json:"phases"`
	Tags    []string `json:"tags"`
}

// CollectFacets gathers filter choices from tasks that are not deleted.
func CollectFacets(tasks []domain.Task) Facets {
	clients, phases, tags := map[string]bool{}, map[string]bool{}, map[string]bool{}
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		if v := strings.TrimSpace(t.Client); v != "" {
			clients[t.Client] = true
		}
		if v := strings.TrimSpace(t.Phase); v != "" {
			phases[t.Phase] = true
		}
		for _, tag := range t.Tags {
			if strings.TrimSpace(tag) != "" {
				tags[tag] = true
			}
		}
	}
	return Facets{Clients: sortedKeys(clients), Phases: sortedKeys(phases), Tags: sortedKeys(tags)}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	c := collation.NewCaseInsensitive()
	slices.SortFunc(out, func(a, b string) int {
		if n := c.Compare(a, b); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return out
}
