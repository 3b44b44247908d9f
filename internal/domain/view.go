package domain

import "time"

// FilterState is the transient advanced filter selection of a board.
type FilterState struct {
	Client string   `json:"client,omitempty"`
	Phase  string   `json:"phase,omitempty"`
	Status Status   `json:"status,omitempty"`
	Roles  []Role   `json:"roles,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Search string   `json:"search,omitempty"`
}

// ActiveCount returns how many advanced filters are set. Search is not
// counted; it has its own input.
func (f FilterState) ActiveCount() int {
	n := len(f.Roles) + len(f.Tags)
	for _, v := range []string{f.Client, f.Phase, string(f.Status)} {
		if v != "" {
			n++
		}
	}
	return n
}

// SavedView is a named snapshot of board settings, unique by name.
type SavedView struct {
	Name     string      `json:"name"`
	Filters  FilterState `json:"filters"`
	Zoom     Zoom        `json:"zoom"`
	Sort     SortKey     `json:"sort,omitempty"`
	OnlyMine bool        `json:"onlyMine,omitempty"`
	SavedAt  time.Time   `json:"savedAt"`
}

// QuickItem is an entry in the quick list scratchpad.
type QuickItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}
