package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/hifdh/internal/app"
	"github.com/llehouerou/hifdh/internal/config"
	"github.com/llehouerou/hifdh/internal/errmsg"
	"github.com/llehouerou/hifdh/internal/icons"
	"github.com/llehouerou/hifdh/internal/logging"
	"github.com/llehouerou/hifdh/internal/mpris"
	"github.com/llehouerou/hifdh/internal/notify"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/player"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/stderr"
)

// runTUI starts the interactive trainer.
func runTUI(ctx context.Context, cmd *cli.Command) error {
	// Capture C library noise before the audio backend starts
	capture, err := stderr.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hifdh: stderr capture: %v\n", err)
	}
	defer capture.Stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	keepConfig, err := applySessionFlags(cfg, cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, logLevel(cfg, cmd))
	capture.Forward(logger)
	defer capture.Stop() // flush captured lines before the log file closes
	logger.Info("starting", "version", version)

	icons.Init(cfg.GetIconStyle())

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	defer func() {
		if err := stateMgr.Close(); err != nil {
			logger.Error("close state", "err", err)
		}
	}()

	library, err := newLibrary(cfg, logger)
	if err != nil {
		return err
	}

	pc := cfg.GetPlaybackConfig()
	qc := cfg.GetQuranConfig()
	loader, err := player.NewLoader(player.LoaderOptions{
		Timeout:   qc.LoadTimeout,
		CacheSize: qc.CacheAudio,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	speaker := player.New(loader, logger)

	var out player.Interface = speaker
	if !pc.Prefetch {
		out = withoutPrefetch{speaker, speaker}
	}
	driver, err := playback.New(playback.Options{
		Player:         out,
		Audio:          library,
		Logger:         logger,
		Mode:           pc.Mode,
		Repetitions:    pc.Repetitions,
		Reciter:        pc.Reciter,
		SegmentTimeout: pc.SegmentTimeout,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	defer driver.Close()

	if adapter, err := mpris.New(mpris.Options{Service: driver, Volume: speaker}); err != nil {
		logger.Warn("media keys unavailable", "err", err)
	} else {
		defer adapter.Close()
	}

	var notifier notify.Notifier
	if cfg.NotificationsEnabled() {
		if desktop, err := notify.New(); err != nil {
			logger.Warn("desktop notifications unavailable", "err", err)
		} else {
			notifier = desktop
		}
	}

	model, err := app.New(app.Deps{
		Config:      cfg,
		Pages:       library,
		Driver:      driver,
		Audio:       speaker,
		State:       stateMgr,
		Notifier:    notifier,
		Logger:      logger,
		StartPage:   int(cmd.Int("page")),
		KeepConfig:  keepConfig,
		LoadTimeout: qc.LoadTimeout,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// withoutPrefetch hides the prefetch capability of a player and keeps the
// clip lengths it reports.
type withoutPrefetch struct {
	player.Interface
	player.Timed
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		return config.LoadFrom(path)
	}
	return config.Load()
}

func logLevel(cfg *config.Config, cmd *cli.Command) string {
	if lvl := cmd.String("log-level"); lvl != "" {
		return lvl
	}
	return cfg.GetLogLevel()
}

// applySessionFlags writes the sequence flags into cfg. It reports whether any
// was set, in which case the saved sequence settings are not restored.
func applySessionFlags(cfg *config.Config, cmd *cli.Command) (bool, error) {
	keep := false

	if cmd.IsSet("page") {
		if err := quran.ValidatePage(int(cmd.Int("page"))); err != nil {
			return false, fmt.Errorf("--page: %w", err)
		}
	}
	if cmd.IsSet("mode") {
		mode, err := sequence.ParseMode(cmd.String("mode"))
		if err != nil {
			return false, fmt.Errorf("--mode: %w", err)
		}
		cfg.Playback.Mode = mode.String()
		keep = true
	}
	if cmd.IsSet("repetitions") {
		n := int(cmd.Int("repetitions"))
		if n < 1 || n > sequence.MaxRepetitions {
			return false, fmt.Errorf("--repetitions: %d not in [1, %d]", n, sequence.MaxRepetitions)
		}
		cfg.Playback.Repetitions = n
		keep = true
	}
	if cmd.IsSet("reciter") {
		id := int(cmd.Int("reciter"))
		if id < 1 {
			return false, fmt.Errorf("--reciter: invalid id %d", id)
		}
		cfg.Playback.Reciter = id
		keep = true
	}
	return keep, nil
}

func newLibrary(cfg *config.Config, logger *log.Logger) (*quran.Library, error) {
	qc := cfg.GetQuranConfig()
	client := quran.NewClient(quran.ClientOptions{
		APIURL:            qc.APIURL,
		AudioURL:          qc.AudioURL,
		RequestsPerSecond: qc.RequestsPerSecond,
		Logger:            logger,
	})
	return quran.NewLibrary(client, qc.CachePages, logger)
}
