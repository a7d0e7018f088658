package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/hifdh/internal/sequence"
)

type Config struct {
	StartPage int `koanf:"start_page"` // page opened when no session is saved (default: 1)

	Playback PlaybackConfig `koanf:"playback"`
	Quran    QuranConfig    `koanf:"quran"`
	UI       UIConfig       `koanf:"ui"`
	Log      LogConfig      `koanf:"log"`
}

// PlaybackConfig holds the memorization sequence settings.
type PlaybackConfig struct {
	Mode           string  `koanf:"mode"`            // "hifdh", "verse" or "fullpage" (default: "hifdh")
	Repetitions    int     `koanf:"repetitions"`     // per group, or page passes (1-30, default: 5)
	Reciter        int     `koanf:"reciter"`         // quran.com recitation id (default: 7)
	Volume         float64 `koanf:"volume"`          // 0.0-1.0 (default: 1.0)
	SegmentTimeout string  `koanf:"segment_timeout"` // stall allowance past a clip's length (default: "1m")
	Prefetch       *bool   `koanf:"prefetch"`        // warm the next verse audio (default: true)
}

// QuranConfig holds quran.com API settings.
type QuranConfig struct {
	APIURL            string  `koanf:"api_url"`
	AudioURL          string  `koanf:"audio_url"`
	RequestsPerSecond float64 `koanf:"requests_per_second"` // default: 2
	CachePages        int     `koanf:"cache_pages"`         // pages kept in memory (default: 32)
	CacheAudio        int     `koanf:"cache_audio"`         // verse clips kept in memory (default: 64)
	LoadTimeout       string  `koanf:"load_timeout"`        // per clip download or page fetch (default: "20s")
}

// UIConfig holds terminal interface settings.
type UIConfig struct {
	Icons         string `koanf:"icons"`         // "nerd", "unicode" or "none" (default: "unicode")
	Notifications *bool  `koanf:"notifications"` // desktop notification on page completion (default: true)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // empty means the xdg state dir
}

// Defaults
const (
	DefaultMode           = sequence.ModeHifdh
	DefaultRepetitions    = 5
	DefaultReciter        = 7
	DefaultSegmentTimeout = time.Minute
	DefaultAPIURL         = "https://api.quran.com/api/v4"
	DefaultAudioURL       = "https://verses.quran.com/"
	DefaultLoadTimeout    = 20 * time.Second
)

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; later files override earlier ones.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{StartPage: 1}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Quran.APIURL = strings.TrimSuffix(cfg.Quran.APIURL, "/")
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/hifdh/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "hifdh", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetStartPage returns the start page clamped to the mushaf.
func (c *Config) GetStartPage() int {
	return min(max(c.StartPage, 1), 604)
}

// ResolvedPlayback is PlaybackConfig with defaults applied and values parsed.
type ResolvedPlayback struct {
	Mode           sequence.Mode
	Repetitions    int
	Reciter        int
	Volume         float64
	SegmentTimeout time.Duration
	Prefetch       bool
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
// Unknown modes fall back to hifdh.
func (c *Config) GetPlaybackConfig() ResolvedPlayback {
	p := c.Playback
	cfg := ResolvedPlayback{
		Mode:           DefaultMode,
		Repetitions:    p.Repetitions,
		Reciter:        p.Reciter,
		Volume:         p.Volume,
		SegmentTimeout: parseDuration(p.SegmentTimeout, DefaultSegmentTimeout),
		Prefetch:       p.Prefetch == nil || *p.Prefetch,
	}

	if m, err := sequence.ParseMode(p.Mode); err == nil {
		cfg.Mode = m
	}
	if cfg.Repetitions <= 0 {
		cfg.Repetitions = DefaultRepetitions
	}
	if cfg.Repetitions > sequence.MaxRepetitions {
		cfg.Repetitions = sequence.MaxRepetitions
	}
	if cfg.Reciter <= 0 {
		cfg.Reciter = DefaultReciter
	}
	if cfg.Volume <= 0 || cfg.Volume > 1 {
		cfg.Volume = 1.0
	}

	return cfg
}

// ResolvedQuran is QuranConfig with defaults applied and values parsed.
type ResolvedQuran struct {
	APIURL            string
	AudioURL          string
	RequestsPerSecond float64
	CachePages        int
	CacheAudio        int
	LoadTimeout       time.Duration
}

// GetQuranConfig returns the API configuration with defaults applied.
func (c *Config) GetQuranConfig() ResolvedQuran {
	q := c.Quran
	cfg := ResolvedQuran{
		APIURL:            q.APIURL,
		AudioURL:          q.AudioURL,
		RequestsPerSecond: q.RequestsPerSecond,
		CachePages:        q.CachePages,
		CacheAudio:        q.CacheAudio,
		LoadTimeout:       parseDuration(q.LoadTimeout, DefaultLoadTimeout),
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.AudioURL == "" {
		cfg.AudioURL = DefaultAudioURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.CachePages <= 0 {
		cfg.CachePages = 32
	}
	if cfg.CacheAudio <= 0 {
		cfg.CacheAudio = 64
	}

	return cfg
}

// GetIconStyle returns the icon style, defaulting to "unicode".
func (c *Config) GetIconStyle() string {
	switch s := strings.ToLower(c.UI.Icons); s {
	case "nerd", "none":
		return s
	default:
		return "unicode"
	}
}

// NotificationsEnabled reports whether completion notifications are sent.
func (c *Config) NotificationsEnabled() bool {
	return c.UI.Notifications == nil || *c.UI.Notifications
}

// GetLogLevel returns the configured level name, defaulting to "info".
func (c *Config) GetLogLevel() string {
	switch lvl := strings.ToLower(strings.TrimSpace(c.Log.Level)); lvl {
	case "debug", "info", "warn", "error":
		return lvl
	case "warning":
		return "warn"
	default:
		return "info"
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
