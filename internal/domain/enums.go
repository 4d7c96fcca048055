package domain

// LogAction is the kind of interaction recorded in a story's history.
type LogAction string

const (
	LogActionCreated LogAction = "CREATED"
	LogActionViewed  LogAction = "VIEWED"
	LogActionEdited  LogAction = "EDITED"
)

func (a LogAction) String() string { return string(a) }

func (a LogAction) IsValid() bool {
	switch a {
	case LogActionCreated, LogActionViewed, LogActionEdited:
		return true
	}
	return false
}
