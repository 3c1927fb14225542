package shelf

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Action is the observed stock state recorded by a shelf event
type Action string

const (
	ActionEmpty     Action = "empty"
	ActionLowStock  Action = "low_stock"
	ActionRestocked Action = "restocked"
)

// Actions lists every valid action in display order
var Actions = []Action{ActionEmpty, ActionLowStock, ActionRestocked}

var titleCaser = cases.Title(language.English)

// IsValid reports whether a is one of the enumerated actions
func (a Action) IsValid() bool {
	switch a {
	case ActionEmpty, ActionLowStock, ActionRestocked:
		return true
	}
	return false
}

// Label returns the human-readable form, e.g. "Low Stock"
func (a Action) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(a), "_", " "))
}

// String implements fmt.Stringer
func (a Action) String() string {
	return string(a)
}
