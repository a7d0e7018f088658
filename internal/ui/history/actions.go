package history

import "github.com/llehouerou/hifdh/internal/ui/action"

// Close signals the history popup should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "history.close" }

// GotoPage requests loading the page of the selected completion.
type GotoPage struct {
	Page int
}

// ActionType implements action.Action.
func (a GotoPage) ActionType() string { return "history.goto_page" }

// ActionMsg creates an action.Msg for a history action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "history", Action: a}
}
