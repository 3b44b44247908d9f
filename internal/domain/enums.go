package domain

// Status is the lifecycle state of a task. Planned, InProgress and Done are
// the only values ever stored; Overdue is derived for display.
type Status string

const (
	StatusPlanned    Status = "Planerad"
	StatusInProgress Status = "Pågående"
	StatusDone       Status = "Klar"
	StatusOverdue    Status = "Försenad"
)

// SelectableStatuses are the statuses a user may pick when editing a task.
var SelectableStatuses = []Status{StatusPlanned, StatusInProgress, StatusDone}

// StatusReason explains why a display status differs from the stored one.
type StatusReason string

const (
	ReasonNone        StatusReason = ""
	ReasonDateOverdue StatusReason = "dateOverdue"
)

// Priority is the urgency of a checklist item. Tasks carry no priority.
type Priority string

const (
	PriorityLow    Priority = "Låg"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "Hög"
)

// Priorities lists the buckets in display order, most urgent first.
var Priorities = []Priority{PriorityHigh, PriorityNormal, PriorityLow}

// Role names a responsibility on a task. All roles except RoleExecutor map
// to a free-text field on the task; RoleExecutor is the handler named on
// checklist items.
type Role string

const (
	RoleAssignee Role = "assignee"
	RoleCAD      Role = "cad"
	RoleReviewer Role = "reviewer"
	RoleAgent    Role = "agent"
	RoleBE       Role = "be"
	RolePL       Role = "pl"
	RoleExecutor Role = "executor"
)

// TaskFieldRoles are the roles stored directly on the task.
var TaskFieldRoles = []Role{RoleAssignee, RoleCAD, RoleReviewer, RoleAgent, RoleBE, RolePL}

// AllRoles is every role in display order.
var AllRoles = append(append([]Role{}, TaskFieldRoles...), RoleExecutor)

var roleLabels = map[Role]string{
	RoleAssignee: "UA",
	RoleCAD:      "CAD",
	RoleReviewer: "Granskare",
	RoleAgent:    "Ombud",
	RoleBE:       "BE",
	RolePL:       "PL",
	RoleExecutor: "Handläggare",
}

// Label returns the display label of a role.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// ParseRole accepts a role key or its label, case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if equalFold(string(r), s) || equalFold(r.Label(), s) {
			return r, true
		}
	}
	return "", false
}

// SortKey selects the ordering of tasks and checklist items.
type SortKey string

const (
	SortStartDate SortKey = "startDate"
	SortEndDate   SortKey = "endDate"
	SortTitle     SortKey = "title"
)

// ParseSortKey maps user input to a SortKey, defaulting to SortStartDate.
func ParseSortKey(s string) SortKey {
	switch {
	case equalFold(s, string(SortEndDate)), equalFold(s, "end"):
		return SortEndDate
	case equalFold(s, string(SortTitle)):
		return SortTitle
	default:
		return SortStartDate
	}
}

// Zoom is the timeline scale.
type Zoom string

const (
	ZoomDay   Zoom = "day"
	ZoomWeek  Zoom = "week"
	ZoomMonth Zoom = "month"
)

// ParseZoom maps user input to a Zoom, defaulting to ZoomWeek.
func ParseZoom(s string) Zoom {
	switch Zoom(lower(s)) {
	case ZoomDay:
		return ZoomDay
	case ZoomMonth:
		return ZoomMonth
	default:
		return ZoomWeek
	}
}

// OtherPhase labels tasks without a phase.
const OtherPhase = "Övrigt"
