// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit      Action = "quit"
	ActionHelp      Action = "help"
	ActionHistory   Action = "history"
	ActionPlayerBar Action = "toggle_player_bar"

	// Key sequence prefix
	ActionGPrefix Action = "g_prefix"

	// G-sequence actions (g + key)
	ActionGotoPage  Action = "goto_page"
	ActionGotoJuz   Action = "goto_juz"
	ActionGotoSurah Action = "goto_surah"
	ActionSetTarget Action = "set_target"

	// Playback actions
	ActionPlayPause  Action = "play_pause"
	ActionReset      Action = "reset"
	ActionNextVerse  Action = "next_verse"
	ActionPrevVerse  Action = "prev_verse"
	ActionFirstVerse Action = "first_verse"
	ActionLastVerse  Action = "last_verse"
	ActionStartHere  Action = "start_here" // enter - plan starts at the cursor verse
	ActionStartOver  Action = "start_over" // s - plan starts at the first verse

	// Sequence configuration
	ActionCycleMode       Action = "cycle_mode"
	ActionRepetitionsUp   Action = "repetitions_up"
	ActionRepetitionsDown Action = "repetitions_down"
	ActionSetReciter      Action = "set_reciter"

	// Page navigation
	ActionNextPage Action = "next_page"
	ActionPrevPage Action = "prev_page"

	ActionToggleMemorized Action = "toggle_memorized"

	// Verse cursor (does not touch playback)
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"

	// Audio
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"
)
