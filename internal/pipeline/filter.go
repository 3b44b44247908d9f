package pipeline

import (
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// Filter keeps the tasks that are shown on the board: not deleted, not
// done, and matching the search, only-mine and advanced filters.
func Filter(tasks []domain.Task, opts Options) []domain.Task {
	search := strings.ToLower(strings.TrimSpace(opts.Filters.Search))
	me := tokenSet(opts.MeTokens)

	var out []domain.Task
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		status, _ := domain.DisplayStatus(t, opts.Today)
		if status == domain.StatusDone {
			continue
		}
		if !matchesSearch(t, search) {
			continue
		}
		if opts.OnlyMine && !assignedTo(t, me) {
			continue
		}
		if !matchesAdvanced(t, status, opts.Filters) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

func tokenSet(tokens []string) map[string]bool {
	if len(tokens) == 0 {
		tokens = DefaultMeTokens
	}
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
			set[tok] = true
		}
	}
	return set
}

func matchesSearch(t domain.Task, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{t.Title, t.Client, t.Phase} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, s := range t.Checklist {
		if strings.Contains(strings.ToLower(s.Executor), term) {
			return true
		}
	}
	return false
}

func assignedTo(t domain.Task, me map[string]bool) bool {
	for _, s := range t.Checklist {
		if me[strings.ToLower(strings.TrimSpace(s.Executor))] {
			return true
		}
	}
	return false
}

func matchesAdvanced(t domain.Task, display domain.Status, f domain.FilterState) bool {
	if f.Client != "" && t.Client != f.Client {
		return false
	}
	if f.Phase != "" && t.Phase != f.Phase {
		return false
	}
	if f.Status != "" && display != f.Status {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(t, f.Tags) {
		return false
	}
	if len(f.Roles) > 0 && !hasAnyRole(t, f.Roles) {
		return false
	}
	return true
}

func hasAnyTag(t domain.Task, tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

// Role filters are alternatives: one filled role is enough.
func hasAnyRole(t domain.Task, roles []domain.Role) bool {
	for _, r := range roles {
		if t.HasRole(r) {
			return true
		}
	}
	return false
}
