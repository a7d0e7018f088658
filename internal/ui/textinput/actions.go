package textinput

import "github.com/llehouerou/hifdh/internal/ui/action"

// Result is sent when the input closes.
type Result struct {
	Text     string
	Context  any // the mode passed to Start
	Canceled bool
}

func (Result) ActionType() string { return "textinput.result" }

func resultMsg(r Result) action.Msg {
	return action.Msg{Source: "textinput", Action: r}
}
