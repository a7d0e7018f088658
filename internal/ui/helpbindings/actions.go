package helpbindings

import "github.com/llehouerou/hifdh/internal/ui/action"

// Close asks the app to hide the help popup.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

func closeMsg() action.Msg {
	return action.Msg{Source: "helpbindings", Action: Close{}}
}
