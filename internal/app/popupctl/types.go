package popupctl

// Type identifies a popup.
type Type int

const (
	None Type = iota
	Help
	History
	TextInput
	Error
)

// Priority lists the popups from the one that takes keys first.
var Priority = []Type{Error, Help, TextInput, History}

// RenderOrder lists the popups from the bottom layer up.
var RenderOrder = []Type{History, TextInput, Help, Error}

// InputMode says what a text input popup is asking for.
type InputMode int

const (
	InputNone InputMode = iota
	InputGotoPage
	InputGotoJuz
	InputGotoSurah
	InputRepetitions
	InputReciter
)
