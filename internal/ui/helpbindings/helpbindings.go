// Package helpbindings shows the key bindings of the active contexts in a
// scrollable popup.
package helpbindings

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifdh/internal/keymap"
	"github.com/llehouerou/hifdh/internal/ui"
	"github.com/llehouerou/hifdh/internal/ui/popup"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var contextLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"sequence": "Sequence",
	"page":     "Pages",
	"cursor":   "Verse Selection",
}

// chrome is the rows taken by the title, the footer and the popup border.
const chrome = 10

type Model struct {
	ui.Base
	bindings []keymap.Binding
	view     viewport.Model
}

func New() Model {
	return Model{view: viewport.New(0, 0)}
}

// SetContexts selects the bindings to list. Contexts keep the keymap order
// whatever order they are given in.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range keymap.Contexts {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.view.SetContent(m.content())
	m.view.GotoTop()
	m.fit()
}

func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.fit()
}

// fit sizes the viewport to the content, capped by the screen height.
func (m *Model) fit() {
	content := m.content()
	m.view.Width = lipgloss.Width(content)
	m.view.Height = min(lipgloss.Height(content), max(m.Height()-chrome, 5))
	m.view.SetYOffset(m.view.YOffset)
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return closeMsg() }
	case "j", "down":
		m.view.SetYOffset(m.view.YOffset + 1)
	case "k", "up":
		m.view.SetYOffset(m.view.YOffset - 1)
	case "g", "home":
		m.view.GotoTop()
	case "G", "end":
		m.view.GotoBottom()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	hint := "?/esc close"
	if m.view.TotalLineCount() > m.view.Height {
		hint = "j/k scroll · " + hint
	}
	return t.S().Title.Render("Help") + "\n\n" + m.view.View() + "\n\n" + t.S().Subtle.Render(hint)
}

// content renders one section per context: a header, a rule, then the
// bindings with their keys aligned.
func (m Model) content() string {
	t := styles.T()
	header := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(keyLabel(b.Keys)))
	}
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(keyWidth)
	rule := t.S().Subtle.Render(strings.Repeat("─", keyWidth+15))

	var sections []string
	for i := 0; i < len(m.bindings); {
		ctx := m.bindings[i].Context
		label, ok := contextLabels[ctx]
		if !ok {
			label = ctx
		}
		lines := []string{header.Render(label), rule}
		for ; i < len(m.bindings) && m.bindings[i].Context == ctx; i++ {
			b := m.bindings[i]
			lines = append(lines, keyStyle.Render(keyLabel(b.Keys))+"  "+t.S().Base.Render(b.Description))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// keyLabel joins keys for display, showing the space bar by name.
func keyLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			if slices.Contains(keys, "space") {
				continue
			}
			k = "space"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, ", ")
}
