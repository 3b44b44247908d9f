package domain

var priorityTokens = map[string]Priority{
	"high":   PriorityHigh,
	"hög":    PriorityHigh,
	"hog":    PriorityHigh,
	"normal": PriorityNormal,
	"medium": PriorityNormal,
	"medel":  PriorityNormal,
	"low":    PriorityLow,
	"låg":    PriorityLow,
	"lag":    PriorityLow,
}

// NormalizePriority maps a priority in the English or Swedish vocabulary,
// in any case, to its canonical form. Anything else is Normal.
func NormalizePriority(raw string) Priority {
	if p, ok := priorityTokens[lower(raw)]; ok {
		return p
	}
	return PriorityNormal
}
