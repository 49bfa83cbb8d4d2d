package models

import (
	"fmt"
	"strings"
)

// Status — статус контейнера. Dumped терминальный: после него контейнер только в архиве.
type Status string

const (
	StatusAvailable     Status = "Available"
	StatusInUse         Status = "In Use"
	StatusNeedsPickedUp Status = "Needs Picked Up"
	StatusDumped        Status = "Dumped"
)

// StatusAll is the filter value that matches every status.
const StatusAll Status = "All"

var statuses = []Status{StatusAvailable, StatusInUse, StatusNeedsPickedUp, StatusDumped}

var statusColors = map[Status]string{
	StatusAvailable:     "green",
	StatusInUse:         "blue",
	StatusNeedsPickedUp: "violet",
	StatusDumped:        "orange",
}

// Statuses returns the status legend in display order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusDumped
}

func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "gray"
}

// ParseStatus matches case-insensitively and ignores surrounding spaces.
// "all" and "" both mean StatusAll.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(StatusAll)) {
		return StatusAll, nil
	}
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown container status %q", s)
}

// Action — тип события в журнале.
type Action string

const (
	ActionDropoff     Action = "dropoff"
	ActionPickup      Action = "pickup"
	ActionMaintenance Action = "maintenance"
)

// ActionAll is the filter value that matches every action.
const ActionAll Action = "all"

func (a Action) Valid() bool {
	switch a {
	case ActionDropoff, ActionPickup, ActionMaintenance:
		return true
	}
	return false
}

func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(ActionAll) {
		return ActionAll, nil
	}
	a := Action(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown log action %q", s)
	}
	return a, nil
}
