// Package action carries what a UI component wants the app to do.
package action

// Action is a request from a component. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg is the tea.Msg a component returns for an Action.
type Msg struct {
	Source string // "versepanel", "history", etc.
	Action Action
}
