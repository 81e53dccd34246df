package cmd

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/config"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/persist"
	"github.com/twiced-technology-gmbh/dayplan/internal/tui"
	"github.com/twiced-technology-gmbh/dayplan/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	return withStore(func(sess *session) error {
		cfg := sess.cfg
		model := tui.NewPlanner(sess.store, tui.Options{
			Levels:     cfg.Grid.ZoomLevels,
			Zoom:       cfg.Grid.DefaultZoom,
			Center:     cfg.Center(),
			View:       cfg.View(),
			WeekStart:  cfg.WeekStart(),
			MovePolicy: cfg.MovePolicy(),
		})
		p := tea.NewProgram(model, tea.WithAltScreen())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go startTUIWatcher(ctx, cfg, sess.logger, p)

		_, err := p.Run()
		return err
	})
}

func startTUIWatcher(ctx context.Context, cfg *config.Config, logger *log.Logger, p *tea.Program) {
	dirs, names := watchTargets(cfg)
	w, err := watcher.New(dirs, names, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Debug("live reload disabled", "err", err)
		return
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		logger.Debug("file watcher", "err", err)
	})
}

// watchTargets returns the directories and file names whose changes mean
// the persisted task list may have moved on: the storage file and the config.
func watchTargets(cfg *config.Config) (dirs, names []string) {
	dirs = []string{cfg.Dir()}
	names = []string{config.ConfigFileName}

	path := cfg.Storage.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Dir(), path)
	}

	switch cfg.Storage.Driver {
	case kv.DriverSQLite:
		if path == "" {
			path = filepath.Join(cfg.Dir(), kv.DefaultSQLiteFile)
		}
		base := filepath.Base(path)
		names = append(names, base, base+"-wal", base+"-journal")
		dirs = appendDir(dirs, filepath.Dir(path))
	case kv.DriverMemory:
	default:
		if path == "" {
			path = cfg.Dir()
		}
		key := cfg.Storage.Key
		if key == "" {
			key = persist.DefaultKey
		}
		names = append(names, key+".json")
		dirs = appendDir(dirs, path)
	}
	return dirs, names
}

func appendDir(dirs []string, dir string) []string {
	for _, d := range dirs {
		if filepath.Clean(d) == filepath.Clean(dir) {
			return dirs
		}
	}
	return append(dirs, dir)
}
