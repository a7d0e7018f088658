// internal/app/app.go
package app

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifdh/internal/app/popupctl"
	"github.com/llehouerou/hifdh/internal/config"
	"github.com/llehouerou/hifdh/internal/errmsg"
	"github.com/llehouerou/hifdh/internal/keymap"
	"github.com/llehouerou/hifdh/internal/notify"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/playerbar"
	"github.com/llehouerou/hifdh/internal/ui/versepanel"
)

// PageSource loads mushaf pages and surah metadata.
type PageSource interface {
	LoadPage(ctx context.Context, number, reciter int) (*quran.Page, error)
	ChapterStartPage(ctx context.Context, n int) (int, error)
	Chapters(ctx context.Context) ([]quran.Chapter, error)
}

// AudioControl is the output level of the audio player.
type AudioControl interface {
	Volume() float64
	SetVolume(level float64)
	Muted() bool
	SetMuted(muted bool)
}

// Deps are the services the application drives.
type Deps struct {
	Config   *config.Config
	Pages    PageSource
	Driver   playback.Service
	Audio    AudioControl
	State    state.Interface
	Notifier notify.Notifier // nil disables desktop notifications
	Logger   *log.Logger

	// StartPage overrides the saved session page when non-zero.
	StartPage int
	// KeepConfig ignores the saved mode, repetitions and reciter.
	KeepConfig bool
	// LoadTimeout bounds fetching a page; zero means 45s.
	LoadTimeout time.Duration
}

// Model is the root application model containing all state.
type Model struct {
	cfg      *config.Config
	pages    PageSource
	driver   playback.Service
	audio    AudioControl
	stateMgr state.Interface
	notifier notify.Notifier
	logger   *log.Logger
	sub      *playback.Subscription
	keys     *keymap.Resolver
	timeout  time.Duration

	Popups     *popupctl.Manager
	VersePanel versepanel.Model

	page      *quran.Page
	memorized bool // the shown page is marked memorized
	chapters  []quran.Chapter
	playback  playback.State

	// Page loading; results carrying an older seq are dropped.
	startPage int
	restore   *sequence.Position
	loading   int
	loadSeq   int

	PendingKeys       string
	Notifications     []Notification
	nextNotifID       int64
	PlayerDisplayMode playerbar.DisplayMode
	Width             int
	Height            int
}

// New creates the application model and restores the saved session.
func New(deps Deps) (Model, error) {
	if deps.Driver == nil || deps.Pages == nil || deps.State == nil {
		return Model{}, errors.New("app: driver, pages and state are required")
	}
	if deps.Config == nil {
		deps.Config = &config.Config{StartPage: 1}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.LoadTimeout <= 0 {
		deps.LoadTimeout = defaultLoadTimeout
	}

	m := Model{
		cfg:               deps.Config,
		pages:             deps.Pages,
		driver:            deps.Driver,
		audio:             deps.Audio,
		stateMgr:          deps.State,
		notifier:          deps.Notifier,
		logger:            deps.Logger,
		keys:              keymap.NewResolver(keymap.Bindings),
		timeout:           deps.LoadTimeout,
		Popups:            popupctl.New(),
		VersePanel:        versepanel.New(),
		startPage:         deps.Config.GetStartPage(),
		PlayerDisplayMode: playerbar.ModeExpanded,
	}
	if m.audio == nil {
		m.audio = &fixedVolume{level: 1}
	}
	m.audio.SetVolume(deps.Config.GetPlaybackConfig().Volume)

	if err := m.restoreSession(deps.KeepConfig); err != nil {
		m.logger.Warn("session not restored", "err", err)
		m.Popups.ShowError(errmsg.Format(errmsg.OpSessionRestore, err))
	}
	if deps.StartPage != 0 {
		m.startPage = quran.ClampPage(deps.StartPage)
		m.restore = nil
	}

	m.VersePanel.SetFocused(true)
	m.sub = m.driver.Subscribe()
	m.playback = m.driver.State()
	m.loading = m.startPage
	m.loadSeq = 1
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.WatchDriverEvents(),
		m.loadPageCmd(m.startPage, m.playback.Reciter, pageLoadOptions{restore: m.restore}, m.loadSeq),
		loadChaptersCmd(m.pages, m.timeout),
	)
}

// Page returns the page shown, nil until the first load completes.
func (m Model) Page() *quran.Page {
	return m.page
}

// fixedVolume stands in when no audio control is available.
type fixedVolume struct {
	level float64
	muted bool
}

func (v *fixedVolume) Volume() float64 { return v.level }

func (v *fixedVolume) SetVolume(level float64) { v.level = level }

func (v *fixedVolume) Muted() bool { return v.muted }

func (v *fixedVolume) SetMuted(muted bool) { v.muted = muted }

// defaultLoadTimeout bounds fetching the verses and recitation of a page.
const defaultLoadTimeout = 45 * time.Second
