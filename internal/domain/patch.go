package domain

// TaskPatch is a partial update: only non-nil fields are applied. Checklist
// and comments are replaced as a whole, since they have no persistence of
// their own.
type TaskPatch struct {
	Title     *string    `json:"title,omitempty"`
	Client    *string    `json:"client,omitempty"`
	Phase     *string    `json:"phase,omitempty"`
	Assignee  *string    `json:"assignee,omitempty"`
	CAD       *string    `json:"cad,omitempty"`
	Reviewer  *string    `json:"reviewer,omitempty"`
	Agent     *string    `json:"agent,omitempty"`
	BE        *string    `json:"be,omitempty"`
	PL        *string    `json:"pl,omitempty"`
	Tags      *[]string  `json:"tags,omitempty"`
	StartDate *string    `json:"startDate,omitempty"`
	EndDate   *string    `json:"endDate,omitempty"`
	Status    *Status    `json:"status,omitempty"`
	Checklist *[]Subtask `json:"checklist,omitempty"`
	Comments  *[]Comment `json:"comments,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Client == nil && p.Phase == nil &&
		p.Assignee == nil && p.CAD == nil && p.Reviewer == nil &&
		p.Agent == nil && p.BE == nil && p.PL == nil &&
		p.Tags == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Status == nil && p.Checklist == nil && p.Comments == nil
}

// Apply returns t with the patch applied. t itself is left untouched.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&out.Title, p.Title)
	setStr(&out.Client, p.Client)
	setStr(&out.Phase, p.Phase)
	setStr(&out.Assignee, p.Assignee)
	setStr(&out.CAD, p.CAD)
	setStr(&out.Reviewer, p.Reviewer)
	setStr(&out.Agent, p.Agent)
	setStr(&out.BE, p.BE)
	setStr(&out.PL, p.PL)
	setStr(&out.StartDate, p.StartDate)
	setStr(&out.EndDate, p.EndDate)
	if p.Tags != nil {
		out.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Checklist != nil {
		out.Checklist = append([]Subtask{}, (*p.Checklist)...)
	}
	if p.Comments != nil {
		out.Comments = append([]Comment{}, (*p.Comments)...)
	}
	return out
}

// Ptr returns a pointer to v. Handy when building patches.
func Ptr[T any](v T) *T {
	return &v
}
