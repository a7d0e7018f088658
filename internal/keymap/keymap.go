// Package keymap defines key bindings for the application.
package keymap

// Binding maps keys to an action and documents it.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "sequence", "page", "cursor"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionHistory, []string{"H"}, "Completion history", "global"},
	{ActionPlayerBar, []string{"v"}, "Toggle player bar size", "global"},
	{ActionGPrefix, []string{"g"}, "Go to...", "global"},
	{ActionGotoPage, []string{"g p"}, "Go to page", "global"},
	{ActionGotoJuz, []string{"g j"}, "Go to juz", "global"},
	{ActionGotoSurah, []string{"g s"}, "Go to surah", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "playback"},
	{ActionReset, []string{"r"}, "Restart page sequence", "playback"},
	{ActionNextVerse, []string{"n", "right"}, "Next verse", "playback"},
	{ActionPrevVerse, []string{"b", "left"}, "Previous verse", "playback"},
	{ActionFirstVerse, []string{"home"}, "First verse", "playback"},
	{ActionLastVerse, []string{"end"}, "Last verse", "playback"},
	{ActionStartHere, []string{"enter"}, "Start sequence at selected verse", "playback"},
	{ActionStartOver, []string{"s"}, "Start sequence from the first verse", "playback"},

	// Sequence configuration
	{ActionCycleMode, []string{"m"}, "Cycle mode (hifdh, verse, page)", "sequence"},
	{ActionRepetitionsUp, []string{"+", "="}, "More repetitions", "sequence"},
	{ActionRepetitionsDown, []string{"-"}, "Fewer repetitions", "sequence"},
	{ActionSetTarget, []string{"g r"}, "Set repetitions", "sequence"},
	{ActionSetReciter, []string{"R"}, "Change reciter", "sequence"},

	// Page navigation
	{ActionNextPage, []string{"pgdown", "l"}, "Next page", "page"},
	{ActionPrevPage, []string{"pgup", "h"}, "Previous page", "page"},
	{ActionToggleMemorized, []string{"*"}, "Mark page memorized", "page"},

	// Verse cursor
	{ActionMoveDown, []string{"j", "down"}, "Select next verse", "cursor"},
	{ActionMoveUp, []string{"k", "up"}, "Select previous verse", "cursor"},

	// Audio
	{ActionVolumeUp, []string{"]"}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"["}, "Volume down", "playback"},
	{ActionToggleMute, []string{"M"}, "Mute", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts lists the binding contexts in help order.
var Contexts = []string{"global", "playback", "sequence", "page", "cursor"}
