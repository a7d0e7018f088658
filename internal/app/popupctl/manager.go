// Package popupctl keeps track of the modal popups of the trainer and decides
// which one receives keys.
package popupctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/helpbindings"
	"github.com/llehouerou/hifdh/internal/ui/history"
	"github.com/llehouerou/hifdh/internal/ui/popup"
	"github.com/llehouerou/hifdh/internal/ui/textinput"
)

const errorHint = "Press any key to dismiss"

// Manager owns the open popups. The error popup is a plain message and is
// stored separately.
type Manager struct {
	open      map[Type]popup.Popup
	inputMode InputMode
	errorMsg  string
	width     int
	height    int
}

func New() *Manager {
	return &Manager{open: make(map[Type]popup.Popup)}
}

func sizeOf(t Type) popup.Size {
	if t == History {
		return popup.SizeLarge
	}
	return popup.SizeAuto
}

// SetSize records the screen size and resizes every open popup.
func (p *Manager) SetSize(width, height int) {
	p.width, p.height = width, height
	for t, pop := range p.open {
		pop.SetSize(p.contentSize(t))
	}
}

// contentSize is the room given to a popup's content. Auto-sized popups get
// the whole screen and fit themselves.
func (p *Manager) contentSize(t Type) (int, int) {
	s := sizeOf(t)
	if s.WidthPct == 0 {
		return p.width, p.height
	}
	return p.width * s.WidthPct / 100, p.height * s.HeightPct / 100
}

func (p *Manager) IsVisible(t Type) bool {
	switch t {
	case Error:
		return p.errorMsg != ""
	case TextInput:
		return p.inputMode != InputNone && p.open[t] != nil
	case Help, History:
		return p.open[t] != nil
	}
	return false
}

// ActivePopup returns the visible popup with the highest priority, or None.
func (p *Manager) ActivePopup() Type {
	for _, t := range Priority {
		if p.IsVisible(t) {
			return t
		}
	}
	return None
}

func (p *Manager) show(t Type, pop popup.Popup) tea.Cmd {
	pop.SetSize(p.contentSize(t))
	p.open[t] = pop
	return pop.Init()
}

func (p *Manager) Hide(t Type) {
	switch t {
	case Error:
		p.errorMsg = ""
	case TextInput:
		p.inputMode = InputNone
		delete(p.open, t)
	case Help, History:
		delete(p.open, t)
	}
}

// ShowHelp opens the key binding reference for the given contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New()
	help.SetContexts(contexts)
	return p.show(Help, &help)
}

// ShowHistory lists recent completions under the memorized and completed
// page counts.
func (p *Manager) ShowHistory(entries []state.Completion, sum history.Summary) tea.Cmd {
	return p.show(History, history.New(entries, sum))
}

// ShowTextInput asks for a value. validate may be nil.
func (p *Manager) ShowTextInput(mode InputMode, title, value string, validate textinput.ValidateFunc) tea.Cmd {
	p.inputMode = mode
	ti := textinput.New()
	ti.Start(title, value, mode, validate, p.width, p.height)
	return p.show(TextInput, &ti)
}

// ShowError replaces any pending error message.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

func (p *Manager) InputMode() InputMode { return p.inputMode }

func (p *Manager) ErrorMsg() string { return p.errorMsg }

// HandleKey gives msg to the active popup and reports whether one took it.
// Any key dismisses an error.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if p.errorMsg != "" {
		p.errorMsg = ""
		return true, nil
	}
	if p.ActivePopup() == None {
		return false, nil
	}
	return true, p.Update(msg)
}

// Update forwards msg, such as a cursor blink, to the active popup.
func (p *Manager) Update(msg tea.Msg) tea.Cmd {
	t := p.ActivePopup()
	pop := p.open[t]
	if pop == nil {
		return nil
	}
	updated, cmd := pop.Update(msg)
	p.open[t] = updated
	return cmd
}

// RenderOverlay draws the visible popups over base, lowest first.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range RenderOrder {
		if !p.IsVisible(t) {
			continue
		}
		var box string
		if t == Error {
			box = popup.Message("Error", p.errorMsg, errorHint, p.width, p.height)
		} else {
			box = popup.Box(p.open[t].View(), p.width, p.height, sizeOf(t))
		}
		base = popup.Compose(base, box, p.width)
	}
	return base
}
