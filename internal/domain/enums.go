package domain

// CardStatus is the kanban column a card belongs to. The ordering below is
// the display order of the board columns; it is not a workflow constraint.
// Any status is reachable from any other via a drag move.
type CardStatus string

const (
	StatusNotStarted CardStatus = "NOT_STARTED"
	StatusInProgress CardStatus = "IN_PROGRESS"
	StatusOnHold     CardStatus = "ON_HOLD"
	StatusCompleted  CardStatus = "COMPLETED"
	StatusVerified   CardStatus = "VERIFIED"
)

// BoardColumns is the canonical column order for board display.
var BoardColumns = []CardStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
	StatusVerified,
}

// ValidStatus reports whether s is one of the five known statuses.
// Moves to an unknown status are rejected locally before any update.
func ValidStatus(s CardStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusOnHold, StatusCompleted, StatusVerified:
		return true
	}
	return false
}

// Label returns a human-readable column heading for a status.
func (s CardStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusOnHold:
		return "On Hold"
	case StatusCompleted:
		return "Completed"
	case StatusVerified:
		return "Verified"
	default:
		return string(s)
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)
