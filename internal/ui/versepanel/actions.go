package versepanel

// JumpToVerse requests the sequence to restart at a verse.
type JumpToVerse struct {
	Index     int
	StartHere bool // begin the sequence at Index instead of the first verse
}

// ActionType implements action.Action.
func (a JumpToVerse) ActionType() string { return "versepanel.jump_to_verse" }
