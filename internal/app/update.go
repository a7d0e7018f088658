// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/ui/action"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case KeySequenceTimeoutMsg:
		m.PendingKeys = ""
		return m, nil

	case action.Msg:
		return m.handleAction(msg)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case PageLoadErrorMsg:
		return m.handlePageLoadError(msg)

	case ChaptersLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("surah names unavailable", "err", msg.Err)
			return m, nil
		}
		m.chapters = msg.Chapters
		return m, nil

	case SurahPageMsg:
		return m.handleSurahPage(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case CompletionRecordedMsg:
		return m.handleCompletionRecorded(msg)

	case DriverStateMsg:
		return m.handleDriverState(msg)

	case DriverPositionMsg:
		return m.handleDriverPosition(msg)

	case DriverDiagnosticMsg:
		return m.handleDriverDiagnostic(msg)

	case DriverClosedMsg:
		m.logger.Debug("playback driver closed")
		return m, nil

	case NotificationClearMsg:
		for i, n := range m.Notifications {
			if n.ID == msg.ID {
				m.Notifications = append(m.Notifications[:i:i], m.Notifications[i+1:]...)
				break
			}
		}
		m.resizeComponents()
		return m, nil
	}

	// Cursor blink and other internal messages of the active popup
	return m, m.Popups.Update(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Popups.SetSize(msg.Width, msg.Height)
	m.resizeComponents()
	return m, nil
}

// addNotification shows message in the notification bar for a few seconds.
func (m *Model) addNotification(message string, warning bool) tea.Cmd {
	m.nextNotifID++
	id := m.nextNotifID
	m.Notifications = append(m.Notifications, Notification{ID: id, Message: message, Warning: warning})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	m.resizeComponents()
	return NotificationClearCmd(id)
}
