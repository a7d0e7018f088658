// Package textinput provides a single-line prompt popup.
package textinput

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifdh/internal/ui"
	"github.com/llehouerou/hifdh/internal/ui/popup"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Primary)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func errorStyle() lipgloss.Style {
	return styles.T().S().Error
}

// ValidateFunc checks the text before it is submitted.
type ValidateFunc func(text string) error

// IntRange accepts whole numbers in [lo, hi].
func IntRange(lo, hi int) ValidateFunc {
	return func(text string) error {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("enter a number between %d and %d", lo, hi)
		}
		if n < lo || n > hi {
			return fmt.Errorf("%d is not between %d and %d", n, lo, hi)
		}
		return nil
	}
}

// Model is a text prompt popup.
type Model struct {
	ui.Base
	title    string
	input    textinput.Model
	context  any // passed through to Result action
	validate ValidateFunc
	err      error
}

// New creates a new text input model.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	return Model{input: ti}
}

// Start initializes the input with a title and optional initial text.
// validate may be nil.
func (m *Model) Start(title, initialText string, context any, validate ValidateFunc, width, height int) {
	m.title = title
	m.context = context
	m.validate = validate
	m.err = nil
	m.input.SetValue(initialText)
	m.input.CursorEnd()
	m.input.Focus()
	m.SetSize(width, height)
}

// Reset clears the input state.
func (m *Model) Reset() {
	m.title = ""
	m.context = nil
	m.validate = nil
	m.err = nil
	m.input.Reset()
	m.input.Blur()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			ctx := m.context
			return m, func() tea.Msg {
				return resultMsg(Result{Canceled: true, Context: ctx})
			}

		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(text); err != nil {
					m.err = err
					return m, nil
				}
			}
			ctx := m.context
			return m, func() tea.Msg {
				return resultMsg(Result{Text: text, Context: ctx})
			}

		case tea.KeyTab, tea.KeyShiftTab:
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle().Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle().Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle().Render("Enter: confirm, Esc: cancel"))

	return b.String()
}
